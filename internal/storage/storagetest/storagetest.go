// Package storagetest provides store helpers for tests: a temporary SQLite
// store and a wrapper that injects failures into chosen operations.
package storagetest

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
	"github.com/mmynk/feeledger/internal/storage/sqlite"
)

// ErrInjected is the default error returned by a failing operation.
var ErrInjected = errors.New("injected store failure")

// NewSQLite opens a SQLite store in a temp directory that is removed when t finishes.
func NewSQLite(t testing.TB) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// Op names a store method.
type Op string

const (
	FindClients   Op = "FindClients"
	GetClient     Op = "GetClient"
	CreateClient  Op = "CreateClient"
	UpdateClient  Op = "UpdateClient"
	DeleteClient  Op = "DeleteClient"
	FindFees      Op = "FindFees"
	GetFee        Op = "GetFee"
	CreateFee     Op = "CreateFee"
	UpdateFee     Op = "UpdateFee"
	DeleteFee     Op = "DeleteFee"
	FindPayments  Op = "FindPayments"
	GetPayment    Op = "GetPayment"
	CreatePayment Op = "CreatePayment"
	UpdatePayment Op = "UpdatePayment"
	DeletePayment Op = "DeletePayment"
)

// FaultyStore wraps a store, counting calls and failing the operations it is told to.
type FaultyStore struct {
	storage.Store

	mu     sync.Mutex
	faults map[Op]error
	calls  map[Op]int
}

// Wrap returns a FaultyStore delegating to store.
func Wrap(store storage.Store) *FaultyStore {
	return &FaultyStore{
		Store:  store,
		faults: make(map[Op]error),
		calls:  make(map[Op]int),
	}
}

// Fail makes every later call of op return err (ErrInjected when err is nil).
func (f *FaultyStore) Fail(op Op, err error) {
	if err == nil {
		err = ErrInjected
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op] = err
}

// Heal clears the fault on op.
func (f *FaultyStore) Heal(op Op) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.faults, op)
}

// Calls reports how many times op was invoked, failed or not.
func (f *FaultyStore) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// ResetCalls zeroes every call counter.
func (f *FaultyStore) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.calls)
}

func (f *FaultyStore) enter(op Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.faults[op]
}

func (f *FaultyStore) FindClients(ctx context.Context, q storage.ClientQuery) ([]*models.Client, error) {
	if err := f.enter(FindClients); err != nil {
		return nil, err
	}
	return f.Store.FindClients(ctx, q)
}

func (f *FaultyStore) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	if err := f.enter(GetClient); err != nil {
		return nil, err
	}
	return f.Store.GetClient(ctx, id)
}

func (f *FaultyStore) CreateClient(ctx context.Context, client *models.Client) error {
	if err := f.enter(CreateClient); err != nil {
		return err
	}
	return f.Store.CreateClient(ctx, client)
}

func (f *FaultyStore) UpdateClient(ctx context.Context, id int64, patch models.ClientPatch) (*models.Client, error) {
	if err := f.enter(UpdateClient); err != nil {
		return nil, err
	}
	return f.Store.UpdateClient(ctx, id, patch)
}

func (f *FaultyStore) DeleteClient(ctx context.Context, id int64) error {
	if err := f.enter(DeleteClient); err != nil {
		return err
	}
	return f.Store.DeleteClient(ctx, id)
}

func (f *FaultyStore) FindFees(ctx context.Context, q storage.FeeQuery) ([]*models.Fee, error) {
	if err := f.enter(FindFees); err != nil {
		return nil, err
	}
	return f.Store.FindFees(ctx, q)
}

func (f *FaultyStore) GetFee(ctx context.Context, id int64) (*models.Fee, error) {
	if err := f.enter(GetFee); err != nil {
		return nil, err
	}
	return f.Store.GetFee(ctx, id)
}

func (f *FaultyStore) CreateFee(ctx context.Context, fee *models.Fee) error {
	if err := f.enter(CreateFee); err != nil {
		return err
	}
	return f.Store.CreateFee(ctx, fee)
}

func (f *FaultyStore) UpdateFee(ctx context.Context, id int64, patch models.FeePatch) (*models.Fee, error) {
	if err := f.enter(UpdateFee); err != nil {
		return nil, err
	}
	return f.Store.UpdateFee(ctx, id, patch)
}

func (f *FaultyStore) DeleteFee(ctx context.Context, id int64) error {
	if err := f.enter(DeleteFee); err != nil {
		return err
	}
	return f.Store.DeleteFee(ctx, id)
}

func (f *FaultyStore) FindPayments(ctx context.Context, q storage.PaymentQuery) ([]*models.Payment, error) {
	if err := f.enter(FindPayments); err != nil {
		return nil, err
	}
	return f.Store.FindPayments(ctx, q)
}

func (f *FaultyStore) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	if err := f.enter(GetPayment); err != nil {
		return nil, err
	}
	return f.Store.GetPayment(ctx, id)
}

func (f *FaultyStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if err := f.enter(CreatePayment); err != nil {
		return err
	}
	return f.Store.CreatePayment(ctx, payment)
}

func (f *FaultyStore) UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error) {
	if err := f.enter(UpdatePayment); err != nil {
		return nil, err
	}
	return f.Store.UpdatePayment(ctx, id, patch)
}

func (f *FaultyStore) DeletePayment(ctx context.Context, id int64) error {
	if err := f.enter(DeletePayment); err != nil {
		return err
	}
	return f.Store.DeletePayment(ctx, id)
}
