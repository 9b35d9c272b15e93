package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"kharcha/internal/summary"
)

// maxTopLimit caps the client-supplied N for the top-expenses view.
const maxTopLimit = 50

type categoryTotalResponse struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

type topExpenseResponse struct {
	Title  string      `json:"title"`
	Amount json.Number `json:"amount"`
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Cache keys carry the ledger revision, so any mutation makes the
	// previous entry unreachable and it ages out of the LRU.
	key := fmt.Sprintf("categories:%d", s.ledger.Revision())
	totals, ok := s.categoryCache.Get(key)
	if !ok {
		totals = summary.CategoryTotals(s.ledger.Expenses())
		s.categoryCache.Set(key, totals)
	}

	out := make([]categoryTotalResponse, len(totals))
	for i, ct := range totals {
		out[i] = categoryTotalResponse{
			Category: ct.Category,
			Total:    json.Number(ct.Total.String()),
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, out)
}

func (s *Server) handleTopExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	limit := s.topLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(r.Context(), w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	key := fmt.Sprintf("top:%d:%d", limit, s.ledger.Revision())
	top, ok := s.topCache.Get(key)
	if !ok {
		top = summary.TopExpenses(s.ledger.Expenses(), limit)
		s.topCache.Set(key, top)
	}

	out := make([]topExpenseResponse, len(top))
	for i, te := range top {
		out[i] = topExpenseResponse{
			Title:  te.Title,
			Amount: json.Number(te.Amount.String()),
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, out)
}
