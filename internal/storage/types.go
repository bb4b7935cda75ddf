package storage

import "time"

// Account roles of interest to the recovery service. The membership
// application defines more roles; this service only ever reads these two
// and writes RoleSuperAdmin.
const (
	// RoleSuperAdmin is the elevated role restored by the recovery protocol.
	RoleSuperAdmin = "super_admin"
	// RoleAdmin is the downgraded role a super administrator is demoted to.
	RoleAdmin = "admin"
)

// Account is a membership account record, keyed by its unique primary email.
type Account struct {
	ID           int64
	Email        string
	Name         string
	Phone        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
