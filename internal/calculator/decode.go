package calculator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// maxBodyBytes caps request bodies at 100 KiB.
const maxBodyBytes = 100 << 10

type validator interface {
	Validate() error
}

// decodeBody reads an application/json body into dst and validates it.
// Every failure is reported as ErrInvalidInput.
func decodeBody(w http.ResponseWriter, r *http.Request, dst validator) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: content type %q is not application/json", ErrInvalidInput, r.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Unmarshal rejects anything after the top-level value.
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return dst.Validate()
}

// unmarshalFields decodes a JSON object into targets keyed by field name.
// Keys must match exactly; encoding/json would fold case on struct fields.
func unmarshalFields(data []byte, targets map[string]any) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		target, ok := targets[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}

	return nil
}
