package storage

import "testing"

// TestHashPassword verifies hashing produces a verifiable bcrypt hash.
func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if err := VerifyPassword("correct horse battery staple", hash); err != nil {
		t.Errorf("VerifyPassword rejected the correct password: %v", err)
	}

	if err := VerifyPassword("wrong password", hash); err == nil {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

// TestHashPasswordUnique verifies each hash carries its own salt.
func TestHashPasswordUnique(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if h1 == h2 {
		t.Error("expected distinct salted hashes for the same password")
	}
}
