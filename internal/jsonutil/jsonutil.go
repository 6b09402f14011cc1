package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes a leading ```json or ``` marker and a trailing ```
// from LLM output. Models in JSON mode occasionally wrap the payload in a
// code fence anyway.
func StripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	lower := strings.ToLower(cleaned)
	if strings.HasPrefix(lower, "```json") {
		cleaned = strings.TrimSpace(cleaned[len("```json"):])
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(cleaned[len("```"):])
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// Unmarshal strips any code fences from raw and decodes the remainder
// into v.
func Unmarshal(raw string, v any) error {
	cleaned := StripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("decoding model output: %w", err)
	}
	return nil
}

// MarshalNoEscape encodes v into JSON without escaping <, >, & into
// < etc. Assembled prompts embed JSON inside angle-bracket tags, so
// the default HTML escaping would garble the delimiters.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Remove trailing newline from json.Encoder.Encode
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
