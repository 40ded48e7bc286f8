package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Encode response error", "error", err)
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	respondJSON(ctx, w, status, map[string]string{"error": message})
}

func respondMessage(ctx context.Context, w http.ResponseWriter, status int, message string) {
	respondJSON(ctx, w, status, map[string]string{"message": message})
}

// respondStoreError maps storage failures onto the error taxonomy: a scoped
// miss is 404, anything else is an unhandled 500.
func respondStoreError(ctx context.Context, w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, core.ErrNotFound) {
		respondError(ctx, w, http.StatusNotFound, "Record not found")
		return
	}
	slog.ErrorContext(ctx, "Store error", "error", err, "operation", operation)
	respondError(ctx, w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
