package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
)

// errBadBody marks a request whose body was not decodable JSON.
var errBadBody = errors.New("malformed request body")

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, msg string) {
	writeJSON(ctx, w, status, errorResponse{Code: code, Error: msg})
}

// writeLedgerError maps store errors onto HTTP statuses and stable codes.
func writeLedgerError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeError(ctx, w, http.StatusNotFound, "not_found", "expense not found")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		writeError(ctx, w, http.StatusUnprocessableEntity, "insufficient_balance", "insufficient balance")
	case errors.Is(err, core.ErrInvalidAmount):
		writeError(ctx, w, http.StatusUnprocessableEntity, "invalid_amount", "amount must be a positive number")
	case errors.Is(err, core.ErrInvalidDate):
		writeError(ctx, w, http.StatusUnprocessableEntity, "invalid_date", "date must be yyyy-mm-dd")
	default:
		// Remaining store errors are field validation failures.
		writeError(ctx, w, http.StatusUnprocessableEntity, "invalid_fields", err.Error())
	}
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
