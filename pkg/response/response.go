package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"noteful/pkg/logger"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type ErrorBody struct {
	Error ErrorMessage `json:"error"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

// Error writes {"error":{"message":msg}}.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: ErrorMessage{Message: msg}})
}

// NoContent writes a bodiless 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ServerError logs err and answers with an opaque 500.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		fields = append(fields,
			zap.String("sqlstate", code),
			zap.Bool("integrity_violation", pgerrcode.IsIntegrityConstraintViolation(code)),
			zap.Bool("connection_exception", pgerrcode.IsConnectionException(code)),
		)
	}
	logger.Log.Error("request failed", fields...)
	Error(w, http.StatusInternalServerError, "server error")
}
