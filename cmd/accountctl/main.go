// Package main provides accountctl, an operator CLI for the account store.
// It seeds and inspects accounts directly in SQLite, which deployments need
// because the membership application normally owning the table is not part
// of this service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/amWRit/TFN-CONNECT-sub001/internal/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "accountctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return usageError()
	}

	command := args[0]
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	dbPath := fs.String("db", envOr("DATABASE_PATH", "/data/accounts.db"), "SQLite account store path")

	var email, name, phone, role, password string
	switch command {
	case "create":
		fs.StringVar(&email, "email", "", "primary email (required)")
		fs.StringVar(&name, "name", "", "display name")
		fs.StringVar(&phone, "phone", "", "contact phone")
		fs.StringVar(&role, "role", storage.RoleAdmin, "account role")
		fs.StringVar(&password, "password", "", "account password (hashed before storage)")
	case "set-role":
		fs.StringVar(&email, "email", "", "primary email (required)")
		fs.StringVar(&role, "role", "", "new role (required)")
	case "delete":
		fs.StringVar(&email, "email", "", "primary email (required)")
	case "list":
	default:
		return usageError()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	store, err := storage.New(*dbPath)
	if err != nil {
		return fmt.Errorf("opening account store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	ctx := context.Background()

	switch command {
	case "create":
		return createAccount(ctx, store, email, name, phone, role, password)
	case "set-role":
		return setRole(ctx, store, email, role)
	case "delete":
		return deleteAccount(ctx, store, email)
	case "list":
		return listAccounts(ctx, store)
	}
	return nil
}

func createAccount(ctx context.Context, store *storage.SQLiteStorage, email, name, phone, role, password string) error {
	if email == "" {
		return fmt.Errorf("create: -email is required")
	}

	var passwordHash string
	if password != "" {
		var err error
		passwordHash, err = storage.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
	}

	acct, err := store.CreateAccount(ctx, &storage.Account{
		Email:        email,
		Name:         name,
		Phone:        phone,
		Role:         role,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created account %d (%s, role %s)\n", acct.ID, acct.Email, acct.Role)
	return nil
}

func setRole(ctx context.Context, store *storage.SQLiteStorage, email, role string) error {
	if email == "" || role == "" {
		return fmt.Errorf("set-role: -email and -role are required")
	}
	if err := store.UpdateAccountRole(ctx, email, role); err != nil {
		return err
	}
	fmt.Printf("set role of %s to %s\n", email, role)
	return nil
}

func deleteAccount(ctx context.Context, store *storage.SQLiteStorage, email string) error {
	if email == "" {
		return fmt.Errorf("delete: -email is required")
	}
	if err := store.DeleteAccount(ctx, email); err != nil {
		return err
	}
	fmt.Printf("deleted account %s\n", email)
	return nil
}

func listAccounts(ctx context.Context, store *storage.SQLiteStorage) error {
	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tCREATED")
	for _, a := range accounts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Email, a.Name, a.Role, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func usageError() error {
	return fmt.Errorf("usage: accountctl <create|set-role|delete|list> [flags]")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
