package storage

import "golang.org/x/crypto/bcrypt"

// HashPassword creates a bcrypt hash of an account password for storage.
// Used by provisioning tooling; the recovery protocol itself never reads
// the password_hash column.
func HashPassword(password string) (string, error) {
	// Use bcrypt cost 12
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against a bcrypt hash.
func VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
