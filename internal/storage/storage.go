// Package storage provides types and interfaces for the SQLite account store.
package storage

import (
	"context"
)

// Storage defines the interface for account store operations.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, acct *Account) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	UpdateAccountRole(ctx context.Context, email, role string) error
	ListAccounts(ctx context.Context) ([]*Account, error)
	DeleteAccount(ctx context.Context, email string) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
