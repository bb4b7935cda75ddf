// Package recovery implements the super-administrator privilege-restoration
// protocol: a stateless pipeline of three cryptographic challenges that ends
// in a single role promotion.
//
// The pipeline keeps no state between calls. Every request is classified
// into a phase from the fields it carries and re-verified from the first
// check onward, so a caller can never rely on an earlier call's result.
package recovery

// UnsetSentinel is the legacy wire value meaning "field not yet supplied".
// Older clients send it in place of omitting the field.
const UnsetSentinel = "___"

// Request is the inbound recovery payload. It is transient and never
// persisted or logged in full.
type Request struct {
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Answer1   string `json:"answer1,omitempty"`
	Answer2   string `json:"answer2,omitempty"`
	Password2 string `json:"password2,omitempty"`
}

// provided reports whether an optional field carries a real value. Absent
// JSON fields decode to the empty string, and legacy clients send the
// sentinel, so both mean unset.
func provided(v string) bool {
	return v != "" && v != UnsetSentinel
}

// Phase identifies which verification step a request is attempting.
type Phase int

const (
	// PhaseMalformed means the field combination matches no phase.
	PhaseMalformed Phase = iota
	// Phase1 verifies the email allow-list and the first recovery password.
	Phase1
	// Phase2 additionally verifies both security answers.
	Phase2
	// Phase3 additionally verifies the second recovery password and promotes.
	Phase3
)

func (p Phase) String() string {
	switch p {
	case Phase1:
		return "phase1"
	case Phase2:
		return "phase2"
	case Phase3:
		return "phase3"
	default:
		return "malformed"
	}
}

// Classify maps field presence onto exactly one phase. It never touches the
// reference secrets.
//
// A request with password2 set is always Phase3: the answers are implicitly
// required there and re-checked by the verifier, so their absence surfaces
// as a wrong-answer rejection rather than a classification error.
func Classify(req *Request) Phase {
	if !provided(req.Email) || !provided(req.Password1) {
		return PhaseMalformed
	}

	hasAnswer1 := provided(req.Answer1)
	hasAnswer2 := provided(req.Answer2)
	hasPassword2 := provided(req.Password2)

	switch {
	case hasPassword2:
		return Phase3
	case hasAnswer1 && hasAnswer2:
		return Phase2
	case !hasAnswer1 && !hasAnswer2:
		return Phase1
	default:
		// One answer without the other and no password2 matches no phase.
		return PhaseMalformed
	}
}
