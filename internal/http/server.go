// Package http is the JSON presentation layer over the ledger store. It
// is the sole producer of ledger inputs: amounts are coerced to cents
// and fields sanitized here before any mutation is attempted.
package http

import (
	"net/http"
	"time"

	"kharcha/internal/cache"
	"kharcha/internal/ledger"
	"kharcha/internal/middleware/trace"
	"kharcha/internal/summary"
)

// Options tunes the serving behavior of the summary endpoints.
type Options struct {
	// TopExpensesLimit is the default N for /api/summary/top.
	TopExpensesLimit int

	// SummaryCacheTTL bounds how long memoized summaries may live. The
	// caches are also keyed by ledger revision, so a mutation always
	// invalidates them immediately.
	SummaryCacheTTL time.Duration
}

// Server serves the wallet, expense, and summary endpoints.
type Server struct {
	http.Server

	ledger   *ledger.Ledger
	topLimit int

	tracer        *trace.Middleware
	categoryCache *cache.LRUCache[[]summary.CategoryTotal]
	topCache      *cache.LRUCache[[]summary.TopExpense]
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, ldg *ledger.Ledger, opts Options) *Server {
	if opts.TopExpensesLimit <= 0 {
		opts.TopExpensesLimit = summary.DefaultTopN
	}
	if opts.SummaryCacheTTL <= 0 {
		opts.SummaryCacheTTL = 5 * time.Minute
	}

	mux := http.NewServeMux()

	s := &Server{
		ledger:        ldg,
		topLimit:      opts.TopExpensesLimit,
		tracer:        trace.NewMiddleware(clientIP),
		categoryCache: cache.NewLRUCache[[]summary.CategoryTotal](16, opts.SummaryCacheTTL),
		topCache:      cache.NewLRUCache[[]summary.TopExpense](16, opts.SummaryCacheTTL),
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(mux),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/api/wallet", s.handleWallet)
	mux.HandleFunc("/api/wallet/income", s.handleAddIncome)
	mux.HandleFunc("/api/expenses", s.handleExpenses)
	mux.HandleFunc("/api/expenses/", s.handleExpenseByID)
	mux.HandleFunc("/api/summary/categories", s.handleCategorySummary)
	mux.HandleFunc("/api/summary/top", s.handleTopExpenses)

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
