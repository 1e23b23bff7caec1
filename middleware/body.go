package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"noteful/pkg/response"
)

const maxBodyBytes = 1 << 20

type bodyKey struct{}

// Body is a parsed JSON object request body. Fields drives presence checks;
// Raw is decoded again into typed request structs afterwards.
type Body struct {
	Raw    []byte
	Fields map[string]any
}

// Decode unmarshals the raw body into v.
func (b *Body) Decode(v any) error {
	return json.Unmarshal(b.Raw, v)
}

// JSONBody reads and parses the request body as a JSON object. An empty body
// is treated as {}.
func JSONBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			response.Error(w, http.StatusBadRequest, "Could not read request body")
			return
		}

		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			raw = []byte("{}")
		}

		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}

		ctx := context.WithValue(r.Context(), bodyKey{}, &Body{Raw: raw, Fields: fields})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestBody returns the body parsed by JSONBody, or an empty body when the
// middleware did not run.
func RequestBody(r *http.Request) *Body {
	if b, ok := r.Context().Value(bodyKey{}).(*Body); ok {
		return b
	}
	return &Body{Raw: []byte("{}"), Fields: map[string]any{}}
}
