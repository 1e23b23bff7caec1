package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	ID   int64
	Name string
}

func findThing(ctx context.Context, id int64) (*thing, error) {
	switch id {
	case 2147483648:
		return nil, errors.New("value out of range for type integer")
	case 1:
		return &thing{ID: 1, Name: "one"}, nil
	case 500:
		return nil, errors.New("db down")
	default:
		return nil, nil
	}
}

func serveExists(t *testing.T, path string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.Handle("GET /things/{id}", Exists[thing](findThing, "Thing doesn't exist")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		item := Resource[thing](r)
		require.NotNil(t, item)
		w.Write([]byte(item.Name))
	})))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestExists(t *testing.T) {
	w := serveExists(t, "/things/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "one", w.Body.String())

	for _, path := range []string{"/things/2", "/things/abc", "/things/2147483648", "/things/-2147483649"} {
		w = serveExists(t, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":{"message":"Thing doesn't exist"}}`, w.Body.String())
	}

	w = serveExists(t, "/things/500")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"message":"server error"}}`, w.Body.String())
}

func TestJSONBody(t *testing.T) {
	var got *Body
	h := JSONBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestBody(r)
	}))

	cases := []struct {
		name   string
		body   string
		status int
		fields map[string]any
	}{
		{"object", `{"name":"a","folder":2}`, http.StatusOK, map[string]any{"name": "a", "folder": float64(2)}},
		{"empty body", ``, http.StatusOK, map[string]any{}},
		{"malformed", `{"name":`, http.StatusBadRequest, nil},
		{"array", `[1,2]`, http.StatusBadRequest, nil},
		{"null", `null`, http.StatusBadRequest, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got = nil
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body)))

			assert.Equal(t, tc.status, w.Code)
			if tc.status != http.StatusOK {
				assert.JSONEq(t, `{"error":{"message":"Invalid JSON in request body"}}`, w.Body.String())
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.fields, got.Fields)
		})
	}
}

func TestRequestIDAndAccessLog(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, GetRequestID(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	}), RequestID, AccessLog)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"message":"server error"}}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORSMiddleware("*")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/notes", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}
