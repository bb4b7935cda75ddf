// Package logging provides utilities for secure logging with data masking.
// Recovery requests carry plaintext secrets, so debug logs redact every
// field that is not explicitly allow-listed.
package logging

import (
	"encoding/json"
	"strings"
)

// Redacted replaces masked values in log output.
const Redacted = "[REDACTED]"

// MaskHeader redacts sensitive header values based on header name.
// Password/secret-bearing headers are fully redacted; token-style headers
// keep their last four characters for correlation; the rest pass through.
func MaskHeader(name, value string) string {
	lowerName := strings.ToLower(name)

	if strings.Contains(lowerName, "password") ||
		strings.Contains(lowerName, "secret") ||
		strings.Contains(lowerName, "cookie") {
		return Redacted
	}

	if lowerName == "authorization" || lowerName == "x-api-key" {
		if len(value) < 4 {
			return "****"
		}
		return "****" + value[len(value)-4:]
	}

	return value
}

// MaskJSONBody redacts non-allowlisted fields in a JSON body. Only fields
// named in allowlist keep their values; every other primitive is replaced
// with Redacted. A nil allowlist returns the body unchanged. Bodies that
// fail to parse are returned as-is.
func MaskJSONBody(body []byte, allowlist []string) []byte {
	if allowlist == nil || len(body) == 0 {
		return body
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return body
	}

	allowed := make(map[string]bool, len(allowlist))
	for _, field := range allowlist {
		allowed[field] = true
	}

	result, err := json.Marshal(maskValue(data, allowed))
	if err != nil {
		return body
	}
	return result
}

// maskValue recursively masks primitives under non-allowlisted keys while
// keeping the document structure intact.
func maskValue(value any, allowed map[string]bool) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			switch val.(type) {
			case map[string]any, []any:
				out[key] = maskValue(val, allowed)
			default:
				if allowed[key] {
					out[key] = val
				} else {
					out[key] = Redacted
				}
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = maskValue(item, allowed)
		}
		return out
	default:
		return value
	}
}
