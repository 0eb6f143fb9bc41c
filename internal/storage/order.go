package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOrderField is returned for an Order naming a field that cannot be sorted on.
var ErrUnknownOrderField = errors.New("unknown order field")

// orderBy maps JSON field names to columns so callers never inject raw SQL.
// The id column is always appended as a tiebreaker.
func orderBy(order, fallback []Order, columns map[string]string) (string, error) {
	if len(order) == 0 {
		order = fallback
	}
	parts := make([]string, 0, len(order)+1)
	hasID := false
	for _, o := range order {
		col, ok := columns[o.Field]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownOrderField, o.Field)
		}
		if col == "id" {
			hasID = true
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", "), nil
}
