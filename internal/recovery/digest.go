package recovery

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"unicode"
)

// Digest returns the hex-encoded SHA-256 of s. Reference secrets are held
// as these digests; comparison is exact, byte for byte.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// NormalizeAnswer canonicalizes a personal-knowledge answer: lowercase with
// all whitespace removed, so "  Blue " and "blue" digest identically.
// Idempotent.
func NormalizeAnswer(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeLiteral trims leading and trailing whitespace only. Case and
// internal spacing are preserved; the value is expected to be a short
// literal such as a year. Idempotent.
func NormalizeLiteral(s string) string {
	return strings.TrimSpace(s)
}

// digestEqual compares a computed digest against a stored reference in
// constant time.
func digestEqual(computed, reference string) bool {
	return subtle.ConstantTimeCompare([]byte(computed), []byte(reference)) == 1
}

// validDigest reports whether h looks like a hex-encoded SHA-256 digest.
// Malformed reference values are treated the same as missing ones.
func validDigest(h string) bool {
	if len(h) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(h)
	return err == nil
}
