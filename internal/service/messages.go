package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/feeledger/internal/models"
)

// Client messages.

type CreateClientRequest struct {
	Client models.Client `json:"client"`
}

type GetClientRequest struct {
	ID int64 `json:"id"`
}

type ListClientsRequest struct{}

type UpdateClientRequest struct {
	ID    int64              `json:"id"`
	Patch models.ClientPatch `json:"patch"`
}

type DeleteClientRequest struct {
	ID int64 `json:"id"`
}

type ClientResponse struct {
	Client *models.Client `json:"client"`
}

type ListClientsResponse struct {
	Clients []*models.Client `json:"clients"`
}

// Fee messages.

type CreateFeeRequest struct {
	Fee models.Fee `json:"fee"`
}

type GetFeeRequest struct {
	ID int64 `json:"id"`
}

// ListFeesRequest lists every fee, or only one client's fees when ClientID is set.
type ListFeesRequest struct {
	ClientID int64 `json:"clientId,omitempty"`
}

type UpdateFeeRequest struct {
	ID    int64           `json:"id"`
	Patch models.FeePatch `json:"patch"`
}

type DeleteFeeRequest struct {
	ID int64 `json:"id"`
}

type FeeResponse struct {
	Fee *models.Fee `json:"fee"`
}

type ListFeesResponse struct {
	Fees []*models.Fee `json:"fees"`
}

// Payment messages.

type CreatePaymentRequest struct {
	Payment models.Payment `json:"payment"`
}

type GetPaymentRequest struct {
	ID int64 `json:"id"`
}

// ListPaymentsRequest lists every payment, or only one fee's payments when FeeID is set.
type ListPaymentsRequest struct {
	FeeID int64 `json:"feeId,omitempty"`
}

type UpdatePaymentRequest struct {
	ID    int64               `json:"id"`
	Patch models.PaymentPatch `json:"patch"`
}

type DeletePaymentRequest struct {
	ID int64 `json:"id"`
}

type PaymentResponse struct {
	Payment *models.Payment `json:"payment"`
}

type ListPaymentsResponse struct {
	Payments []*models.Payment `json:"payments"`
}

// DeleteResponse is returned by every Delete procedure.
type DeleteResponse struct{}

// Ledger messages.

type RecomputeRequest struct {
	ClientID int64 `json:"clientId"`
}

type RecomputeResponse struct {
	ClientID  int64           `json:"clientId"`
	TotalDue  decimal.Decimal `json:"totalDue"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
}

// ReconcileRequest recomputes the listed clients, or all clients when empty.
type ReconcileRequest struct {
	ClientIDs []int64 `json:"clientIds,omitempty"`
}

type ReconcileResponse struct {
	Clients int     `json:"clients"`
	Failed  []int64 `json:"failed"`
}
