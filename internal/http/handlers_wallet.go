package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"kharcha/internal/core"
)

type walletResponse struct {
	Balance json.Number `json:"balance"`
}

type incomeRequest struct {
	Amount json.Number `json:"amount"`
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, walletResponse{
		Balance: json.Number(s.ledger.Balance().String()),
	})
}

func (s *Server) handleAddIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Malformed income request", "error", err)
		writeError(r.Context(), w, http.StatusBadRequest, "bad_request", "body must be JSON")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		writeError(r.Context(), w, http.StatusUnprocessableEntity, "invalid_amount", "amount must be a positive number")
		return
	}

	balance, err := s.ledger.AddIncome(r.Context(), core.Money{Cents: cents})
	if err != nil {
		writeLedgerError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, walletResponse{
		Balance: json.Number(balance.String()),
	})
}
