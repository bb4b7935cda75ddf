package recovery

import "errors"

// Verification failure taxonomy. The error messages double as the wire
// reason codes, so they are stable identifiers, not prose.
var (
	// ErrMalformedRequest means the field combination matches no phase.
	ErrMalformedRequest = errors.New("malformed-request")

	// ErrUnauthorizedEmail means the email is not on the allow-list.
	ErrUnauthorizedEmail = errors.New("unauthorized-email")

	// ErrInvalidPassword1 means the first recovery password digest mismatched.
	ErrInvalidPassword1 = errors.New("invalid-password-1")

	// ErrWrongAnswer1 means the first security answer digest mismatched.
	ErrWrongAnswer1 = errors.New("wrong-answer-1")

	// ErrWrongAnswer2 means the second security answer digest mismatched.
	ErrWrongAnswer2 = errors.New("wrong-answer-2")

	// ErrInvalidPassword2 means the second recovery password digest mismatched.
	ErrInvalidPassword2 = errors.New("invalid-password-2")

	// ErrAccountNotFound means all phases passed but no account matches the email.
	ErrAccountNotFound = errors.New("account-not-found")

	// ErrTooManyAttempts means the per-email attempt budget is exhausted.
	ErrTooManyAttempts = errors.New("too-many-attempts")

	// ErrServerMisconfigured means the reference secrets are absent or
	// malformed. This is the only failure that should alarm an operator.
	ErrServerMisconfigured = errors.New("server-misconfigured")
)
