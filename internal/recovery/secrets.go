package recovery

import "strings"

// ReferenceSecrets holds the deployment-supplied reference digests and the
// allow-listed recovery emails. The four digests are independent secrets;
// none is derived from another. Read-only after process start, so it is
// safe to share across concurrent requests without locking.
type ReferenceSecrets struct {
	allowlist     map[string]struct{}
	password1Hash string
	password2Hash string
	answer1Hash   string
	answer2Hash   string
}

// NewReferenceSecrets builds the reference set. Allow-list entries are
// matched case-insensitively on the trimmed email; digests are lowercased
// for the exact hex comparison.
func NewReferenceSecrets(allowedEmails []string, password1Hash, password2Hash, answer1Hash, answer2Hash string) *ReferenceSecrets {
	allowlist := make(map[string]struct{}, len(allowedEmails))
	for _, email := range allowedEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowlist[email] = struct{}{}
		}
	}

	return &ReferenceSecrets{
		allowlist:     allowlist,
		password1Hash: strings.ToLower(strings.TrimSpace(password1Hash)),
		password2Hash: strings.ToLower(strings.TrimSpace(password2Hash)),
		answer1Hash:   strings.ToLower(strings.TrimSpace(answer1Hash)),
		answer2Hash:   strings.ToLower(strings.TrimSpace(answer2Hash)),
	}
}

// Complete reports whether the deployment supplied all four reference
// digests in usable form. An incomplete set degrades the endpoint to
// server-misconfigured responses instead of rejecting every caller as a
// secret mismatch.
func (s *ReferenceSecrets) Complete() bool {
	return validDigest(s.password1Hash) &&
		validDigest(s.password2Hash) &&
		validDigest(s.answer1Hash) &&
		validDigest(s.answer2Hash)
}

// Allowed reports whether email is on the recovery allow-list. An email not
// on the list can never pass phase 1, regardless of any correct secret.
func (s *ReferenceSecrets) Allowed(email string) bool {
	_, ok := s.allowlist[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
