// Package mockstore provides a configurable mock of the account store for
// testing.
//
// Each method can be customized by setting the corresponding function
// field; nil fields fall back to sensible defaults (empty store).
package mockstore

import (
	"context"

	"github.com/amWRit/TFN-CONNECT-sub001/internal/storage"
)

// MockStorage is a configurable mock implementation of storage.Storage.
type MockStorage struct {
	CreateAccountFunc     func(ctx context.Context, acct *storage.Account) (*storage.Account, error)
	GetAccountByEmailFunc func(ctx context.Context, email string) (*storage.Account, error)
	UpdateAccountRoleFunc func(ctx context.Context, email, role string) error
	ListAccountsFunc      func(ctx context.Context) ([]*storage.Account, error)
	DeleteAccountFunc     func(ctx context.Context, email string) error
	PingFunc              func(ctx context.Context) error
	CloseFunc             func() error
}

// CreateAccount creates a new account.
func (m *MockStorage) CreateAccount(ctx context.Context, acct *storage.Account) (*storage.Account, error) {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, acct)
	}
	created := *acct
	created.ID = 1
	return &created, nil
}

// GetAccountByEmail retrieves an account by email.
func (m *MockStorage) GetAccountByEmail(ctx context.Context, email string) (*storage.Account, error) {
	if m.GetAccountByEmailFunc != nil {
		return m.GetAccountByEmailFunc(ctx, email)
	}
	return nil, storage.ErrNotFound
}

// UpdateAccountRole overwrites an account's role.
func (m *MockStorage) UpdateAccountRole(ctx context.Context, email, role string) error {
	if m.UpdateAccountRoleFunc != nil {
		return m.UpdateAccountRoleFunc(ctx, email, role)
	}
	return nil
}

// ListAccounts returns all accounts.
func (m *MockStorage) ListAccounts(ctx context.Context) ([]*storage.Account, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx)
	}
	return make([]*storage.Account, 0), nil
}

// DeleteAccount deletes an account by email.
func (m *MockStorage) DeleteAccount(ctx context.Context, email string) error {
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(ctx, email)
	}
	return nil
}

// Ping checks connectivity.
func (m *MockStorage) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// Close closes the store.
func (m *MockStorage) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
