// Package http serves the petty-cash UI: an htmx front end over the
// services layer, with server-rendered partials for the balance and the
// monthly report.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cajachica/internal/cache"
	"cajachica/internal/core"
	"cajachica/internal/services"
	appweb "cajachica/web"
)

type Server struct {
	http.Server
	templates *template.Template

	expenses *services.ExpenseService
	funds    *services.FundService
	periods  *services.PeriodService
	catalog  *services.CatalogService
	reports  *services.ReportService

	rateLimiter *rateLimiter

	// Partial caches, keyed by "YYYY-MM". Writes invalidate them.
	balanceCache *cache.LRUCache[core.Balance]
	reportCache  *cache.LRUCache[core.GroupedReport]
	caches       *cache.Manager

	shutdownOnce sync.Once
}

// NewServer wires routes, templates, and caches into a ready-to-run server.
func NewServer(addr string,
	expenses *services.ExpenseService,
	funds *services.FundService,
	periods *services.PeriodService,
	catalog *services.CatalogService,
	reports *services.ReportService,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		expenses:     expenses,
		funds:        funds,
		periods:      periods,
		catalog:      catalog,
		reports:      reports,
		rateLimiter:  newRateLimiter(),
		balanceCache: cache.NewLRUCache[core.Balance](16, 2*time.Minute),
		reportCache:  cache.NewLRUCache[core.GroupedReport](100, 2*time.Minute),
		caches:       cache.NewManager(),
	}
	s.caches.Register(s.balanceCache)
	s.caches.Register(s.reportCache)
	s.caches.StartCleanup(10 * time.Minute)

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /{$}", s.withMiddleware(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	// Movements
	mux.HandleFunc("POST /expenses", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("POST /expenses/{id}", s.withMiddleware(s.handleUpdateExpense))
	mux.HandleFunc("POST /expenses/{id}/cancel", s.withMiddleware(s.handleCancelExpense))

	// Funds
	mux.HandleFunc("POST /funds", s.withMiddleware(s.handleCreateFund))
	mux.HandleFunc("POST /funds/{id}", s.withMiddleware(s.handleUpdateFund))
	mux.HandleFunc("POST /funds/{id}/delete", s.withMiddleware(s.handleDeleteFund))

	// Custom periods
	mux.HandleFunc("POST /periods", s.withMiddleware(s.handleCreatePeriod))
	mux.HandleFunc("POST /periods/{id}", s.withMiddleware(s.handleUpdatePeriod))
	mux.HandleFunc("POST /periods/{id}/deactivate", s.withMiddleware(s.handleDeactivatePeriod))

	// Catalog
	mux.HandleFunc("POST /catalog/categories", s.withMiddleware(s.handleCreateCategory))
	mux.HandleFunc("POST /catalog/categories/{id}/delete", s.withMiddleware(s.handleDeleteCategory))
	mux.HandleFunc("POST /catalog/subcategories", s.withMiddleware(s.handleCreateSubcategory))
	mux.HandleFunc("POST /catalog/persons", s.withMiddleware(s.handleCreatePerson))
	mux.HandleFunc("POST /catalog/executors", s.withMiddleware(s.handleCreateExecutor))
	mux.HandleFunc("GET /catalog/identification", s.withMiddleware(s.handleSuggestIdentification))

	// UI partials and report downloads
	mux.HandleFunc("GET /ui/balance", s.withMiddleware(s.handleBalancePartial))
	mux.HandleFunc("GET /ui/month-report", s.withMiddleware(s.handleMonthReportPartial))
	mux.HandleFunc("GET /ui/movements", s.withMiddleware(s.handleMovementsPartial))
	mux.HandleFunc("GET /reports/export", s.withMiddleware(s.handleExportReport))

	return s
}

// Shutdown stops the background cleanup goroutines before closing the HTTP
// listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateMonth drops cached partials after a write. The balance is
// all-time, so it always goes; the report cache only for the touched month.
func (s *Server) invalidateMonth(yearMonth string) {
	s.balanceCache.Delete(balanceKey)
	for _, g := range []core.GroupBy{
		core.GroupByCategory, core.GroupByPersonCategory, core.GroupByPersonCategoryMovement,
	} {
		s.reportCache.Delete(reportKey(yearMonth, g))
	}
}

const balanceKey = "balance"

func reportKey(yearMonth string, groupBy core.GroupBy) string {
	return yearMonth + "|" + string(groupBy)
}
