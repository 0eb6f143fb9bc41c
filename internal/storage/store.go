// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/feeledger/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Order selects a sort column for Find calls. Field names are the
// JSON names of the record (e.g. "dueDate"); stores reject unknown fields.
type Order struct {
	Field string
	Desc  bool
}

// ClientQuery filters FindClients. The zero value matches every client.
type ClientQuery struct {
	Status string
	Order  []Order
}

// FeeQuery filters FindFees. Zero fields do not filter.
type FeeQuery struct {
	ClientID int64
	Status   models.FeeStatus
	Order    []Order
}

// PaymentQuery filters FindPayments. Zero fields do not filter.
type PaymentQuery struct {
	FeeID int64
	Order []Order
}

// ClientStore persists clients.
type ClientStore interface {
	FindClients(ctx context.Context, q ClientQuery) ([]*models.Client, error)

	// GetClient returns ErrNotFound if the client does not exist.
	GetClient(ctx context.Context, id int64) (*models.Client, error)

	// CreateClient persists a new client. client.ID is populated by the store.
	CreateClient(ctx context.Context, client *models.Client) error

	// UpdateClient applies the non-nil fields of patch in a single write
	// and returns the committed record.
	UpdateClient(ctx context.Context, id int64, patch models.ClientPatch) (*models.Client, error)

	DeleteClient(ctx context.Context, id int64) error
}

// FeeStore persists fees.
type FeeStore interface {
	FindFees(ctx context.Context, q FeeQuery) ([]*models.Fee, error)
	GetFee(ctx context.Context, id int64) (*models.Fee, error)
	CreateFee(ctx context.Context, fee *models.Fee) error
	UpdateFee(ctx context.Context, id int64, patch models.FeePatch) (*models.Fee, error)
	DeleteFee(ctx context.Context, id int64) error
}

// PaymentStore persists payments.
type PaymentStore interface {
	FindPayments(ctx context.Context, q PaymentQuery) ([]*models.Payment, error)
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
}

// Store defines the full record store used by the ledger.
// Each method is atomic for the single record it touches; there are no
// transactions spanning records. This abstraction allows swapping storage
// backends (SQLite, PostgreSQL) without changing the ledger.
type Store interface {
	ClientStore
	FeeStore
	PaymentStore

	// Close releases any resources held by the store.
	Close() error
}

var (
	clientColumns = map[string]string{
		"id": "id", "name": "name", "email": "email", "status": "status",
		"totalDue": "total_due", "totalPaid": "total_paid",
	}
	feeColumns = map[string]string{
		"id": "id", "clientId": "client_id", "amount": "amount", "dueDate": "due_date",
		"category": "category", "status": "status",
	}
	paymentColumns = map[string]string{
		"id": "id", "feeId": "fee_id", "amount": "amount", "paymentDate": "payment_date",
		"method": "method",
	}
)

// Default orderings used when a query carries none.
var (
	DefaultClientOrder  = []Order{{Field: "name"}}
	DefaultFeeOrder     = []Order{{Field: "dueDate", Desc: true}}
	DefaultPaymentOrder = []Order{{Field: "paymentDate", Desc: true}}
)

// ClientOrderBy renders q's ordering as an SQL ORDER BY list.
func ClientOrderBy(q ClientQuery) (string, error) {
	return orderBy(q.Order, DefaultClientOrder, clientColumns)
}

// FeeOrderBy renders q's ordering as an SQL ORDER BY list.
func FeeOrderBy(q FeeQuery) (string, error) {
	return orderBy(q.Order, DefaultFeeOrder, feeColumns)
}

// PaymentOrderBy renders q's ordering as an SQL ORDER BY list.
func PaymentOrderBy(q PaymentQuery) (string, error) {
	return orderBy(q.Order, DefaultPaymentOrder, paymentColumns)
}
