package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// decodeInto unmarshals an admin response into a schema-typed value.
// Ad-hoc text extraction is deliberately not offered; every response goes
// through structured decoding.
func decodeInto(body []byte, target any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return internalError("admin response is not valid JSON", err)
	}
	return nil
}

func classifyStatusError(statusCode int, body []byte) error {
	message := fmt.Sprintf("admin request failed with status %d: %s", statusCode, summarizeBody(body))

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return authError(message, nil)
	case http.StatusNotFound:
		return notFoundError(message, nil)
	}

	if statusCode >= 400 && statusCode < 500 {
		return validationError(message, nil)
	}
	return transportError(message, nil)
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "<empty>"
	}
	if len(trimmed) > 512 {
		// Back up to a rune boundary so a multi-byte character is never
		// split mid-sequence.
		cut := 512
		for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
			cut--
		}
		return trimmed[:cut] + "..."
	}
	return trimmed
}
