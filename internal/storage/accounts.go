package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// CreateAccount inserts a new account and returns it with its assigned ID.
// Returns ErrDuplicate if an account with the same email already exists.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, acct *Account) (*Account, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (email, name, phone, role, password_hash) VALUES (?, ?, ?, ?, ?)",
		acct.Email, acct.Name, acct.Phone, acct.Role, acct.PasswordHash)

	if err != nil {
		// UNIQUE constraint violations surface as sqlite extended error
		// code 2067 or the base constraint code 19.
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.Code() == 2067 || (sqliteErr.Code()&0xFF) == sqlite3.SQLITE_CONSTRAINT {
				return nil, ErrDuplicate
			}
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insert ID: %w", err)
	}

	created := *acct
	created.ID = id
	return &created, nil
}

// GetAccountByEmail retrieves an account by its primary email.
// Returns ErrNotFound if no account matches.
func (s *SQLiteStorage) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account

	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, phone, role, password_hash, created_at, updated_at FROM accounts WHERE email = ?",
		email).
		Scan(&a.ID, &a.Email, &a.Name, &a.Phone, &a.Role, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &a, nil
}

// UpdateAccountRole overwrites the role of the account with the given email.
// The write is idempotent: setting the same role again is not an error.
// Returns ErrNotFound if no account matches.
func (s *SQLiteStorage) UpdateAccountRole(ctx context.Context, email, role string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?",
		role, email)

	if err != nil {
		return fmt.Errorf("failed to update account role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListAccounts returns all accounts, newest first.
// Returns an empty slice if none exist.
func (s *SQLiteStorage) ListAccounts(ctx context.Context) ([]*Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, email, name, phone, role, password_hash, created_at, updated_at FROM accounts ORDER BY created_at DESC, id DESC")

	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var accounts []*Account

	for rows.Next() {
		var a Account
		err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.Phone, &a.Role, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	if accounts == nil {
		accounts = make([]*Account, 0)
	}

	return accounts, nil
}

// DeleteAccount deletes an account by email.
// Returns ErrNotFound if no account matches.
func (s *SQLiteStorage) DeleteAccount(ctx context.Context, email string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM accounts WHERE email = ?",
		email)

	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
