package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amWRit/TFN-CONNECT-sub001/internal/recovery"
)

// Response is the JSON envelope for every recovery endpoint reply.
type Response struct {
	Success  bool   `json:"success"`
	Step     int    `json:"step,omitempty"`
	Restored string `json:"restored,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ReasonInternalError is the reason code for failures outside the
// verification taxonomy. It reveals nothing about the pipeline state.
const ReasonInternalError = "internal-error"

// messages maps wire reason codes to human-readable text. The text never
// says more than the reason itself: no hint about which other secrets
// would have matched.
var messages = map[string]string{
	recovery.ErrMalformedRequest.Error():    "email and password1 are required",
	recovery.ErrUnauthorizedEmail.Error():   "this email is not authorized for recovery",
	recovery.ErrInvalidPassword1.Error():    "first recovery password does not match",
	recovery.ErrWrongAnswer1.Error():        "first security answer does not match",
	recovery.ErrWrongAnswer2.Error():        "second security answer does not match",
	recovery.ErrInvalidPassword2.Error():    "second recovery password does not match",
	recovery.ErrAccountNotFound.Error():     "no account exists for this email",
	recovery.ErrTooManyAttempts.Error():     "too many recovery attempts, try again later",
	recovery.ErrServerMisconfigured.Error(): "recovery is not configured on this server",
	ReasonInternalError:                     "internal error",
}

// statusFor maps a verification failure to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, recovery.ErrMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, recovery.ErrUnauthorizedEmail),
		errors.Is(err, recovery.ErrInvalidPassword1),
		errors.Is(err, recovery.ErrWrongAnswer1),
		errors.Is(err, recovery.ErrWrongAnswer2),
		errors.Is(err, recovery.ErrInvalidPassword2):
		return http.StatusForbidden
	case errors.Is(err, recovery.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, recovery.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, recovery.ErrServerMisconfigured):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// reasonFor extracts the wire reason code for a verification failure.
// Errors outside the taxonomy collapse to internal-error.
func reasonFor(err error) string {
	for _, sentinel := range []error{
		recovery.ErrMalformedRequest,
		recovery.ErrUnauthorizedEmail,
		recovery.ErrInvalidPassword1,
		recovery.ErrWrongAnswer1,
		recovery.ErrWrongAnswer2,
		recovery.ErrInvalidPassword2,
		recovery.ErrAccountNotFound,
		recovery.ErrTooManyAttempts,
		recovery.ErrServerMisconfigured,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ReasonInternalError
}

// WriteError writes the JSON failure envelope for a reason code.
func WriteError(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := Response{
		Success: false,
		Error:   reason,
		Message: messages[reason],
	}
	// Encoding errors are not recoverable once headers are sent
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a success envelope.
func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
