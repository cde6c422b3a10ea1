package crypto

import (
	"bytes"
	"encoding/json"
)

// CanonicalJSON encodes v deterministically: struct fields in declaration
// order, map keys sorted, no HTML escaping and no trailing newline. Signed
// payloads are always produced by this function.
func CanonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
