package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
)

type expenseRequest struct {
	Title    string      `json:"title"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

type expenseResponse struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

func toExpenseResponse(rec core.ExpenseRecord) expenseResponse {
	return expenseResponse{
		ID:       rec.ID,
		Title:    rec.Title,
		Amount:   json.Number(rec.Amount.String()),
		Category: rec.Category,
		Date:     rec.Date.String(),
	}
}

// decodeFields turns a request body into ledger fields. The amount and
// date coercions happen here so the store only ever sees typed values.
func decodeFields(r *http.Request) (ledger.Fields, error) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ledger.Fields{}, errBadBody
	}

	f := ledger.Fields{
		Title:    sanitizeInput(req.Title),
		Category: sanitizeInput(req.Category),
	}
	if req.Amount.String() != "" {
		cents, err := core.ParseDecimalToCents(req.Amount.String())
		if err != nil {
			return ledger.Fields{}, err
		}
		f.Amount = core.Money{Cents: cents}
	}
	if strings.TrimSpace(req.Date) != "" {
		date, err := core.ParseDate(req.Date)
		if err != nil {
			return ledger.Fields{}, err
		}
		f.Date = date
	}
	return f, nil
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records := s.ledger.Expenses()
		out := make([]expenseResponse, len(records))
		for i, rec := range records {
			out[i] = toExpenseResponse(rec)
		}
		writeJSON(r.Context(), w, http.StatusOK, out)

	case http.MethodPost:
		fields, err := decodeFields(r)
		if err != nil {
			if err == errBadBody {
				writeError(r.Context(), w, http.StatusBadRequest, "bad_request", "body must be JSON")
				return
			}
			writeLedgerError(r.Context(), w, err)
			return
		}
		rec, err := s.ledger.AddExpense(r.Context(), fields)
		if err != nil {
			writeLedgerError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toExpenseResponse(rec))

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	if id == "" || strings.Contains(id, "/") {
		writeError(r.Context(), w, http.StatusNotFound, "not_found", "expense not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		fields, err := decodeFields(r)
		if err != nil {
			if err == errBadBody {
				writeError(r.Context(), w, http.StatusBadRequest, "bad_request", "body must be JSON")
				return
			}
			writeLedgerError(r.Context(), w, err)
			return
		}
		rec, err := s.ledger.EditExpense(r.Context(), id, fields)
		if err != nil {
			writeLedgerError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toExpenseResponse(rec))

	case http.MethodDelete:
		// Unknown ids are a deliberate no-op at the store level, so a
		// delete is always acknowledged.
		if err := s.ledger.DeleteExpense(r.Context(), id); err != nil {
			writeLedgerError(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "PUT, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
