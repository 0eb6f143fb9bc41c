package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, slog.LevelInfo, FormatJSON)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		logger.Debug("hidden")
		logger.Info("Fee created", "fee_id", 7)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if rec["msg"] != "Fee created" || rec["fee_id"] != float64(7) {
			t.Errorf("unexpected record: %v", rec)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, slog.LevelDebug, FormatText)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		logger.Debug("Recompute failed", "client_id", 3)
		if !strings.Contains(buf.String(), "Recompute failed") {
			t.Errorf("missing message in %q", buf.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := New(&bytes.Buffer{}, slog.LevelInfo, "xml"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
