package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes caps the size of JSON request bodies
const MaxBodyBytes = 1 << 20

// ErrInvalidBody is returned for malformed, empty or oversized JSON bodies
var ErrInvalidBody = errors.New("invalid request body")

// DecodeJSON decodes a single JSON value from the request body into v
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()

	decoder := json.NewDecoder(body)
	if err := decoder.Decode(v); err != nil {
		return ErrInvalidBody
	}

	// Reject trailing data after the first value
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return ErrInvalidBody
	}

	return nil
}
