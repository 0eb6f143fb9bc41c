package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/feeledger/internal/models"
)

// FeeForTotals is the minimal fee information needed to compute client totals.
type FeeForTotals struct {
	Amount decimal.Decimal
	Status models.FeeStatus
}

// ClientTotals holds the derived aggregates for one client.
type ClientTotals struct {
	TotalDue  decimal.Decimal // pending + overdue
	TotalPaid decimal.Decimal // paid
}

// CalculateClientTotals sums a client's complete fee set into its aggregates.
//
// Algorithm:
//   - pending and overdue fees add to TotalDue
//   - paid fees add to TotalPaid
//   - fees in any other status contribute to neither
//
// The result depends only on fees, so computing it twice over the same
// set yields identical totals. An empty set yields zero for both.
func CalculateClientTotals(fees []FeeForTotals) ClientTotals {
	totals := ClientTotals{TotalDue: decimal.Zero, TotalPaid: decimal.Zero}
	for _, fee := range fees {
		switch {
		case fee.Status.Due():
			totals.TotalDue = totals.TotalDue.Add(fee.Amount)
		case fee.Status == models.FeeStatusPaid:
			totals.TotalPaid = totals.TotalPaid.Add(fee.Amount)
		}
	}
	return totals
}

// FeesForTotals converts stored fees into calculator input, dropping nils.
func FeesForTotals(fees []*models.Fee) []FeeForTotals {
	out := make([]FeeForTotals, 0, len(fees))
	for _, fee := range fees {
		if fee == nil {
			continue
		}
		out = append(out, FeeForTotals{Amount: fee.Amount, Status: fee.Status})
	}
	return out
}
