package http

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"cajachica/internal/core"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":     core.FormatAmount,
		"monthName": core.MonthName,
		"isoDate": func(d core.Date) string {
			return d.ISO()
		},
	}
}

type indexView struct {
	BusinessName string
	CurrentMonth string
	Categories   []core.Category
	Persons      []core.Person
	Executors    []core.Executor
}

type balanceView struct {
	Balance  core.Balance
	Negative bool
}

type monthReportView struct {
	Month      string
	MonthLabel string
	Limits     core.MonthLimits
	GroupBy    core.GroupBy
	Report     core.GroupedReport
}

type movementsView struct {
	Month     string
	Limits    core.MonthLimits
	Movements []core.Expense
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := indexView{
		BusinessName: businessName,
		CurrentMonth: queryMonth(r),
	}

	// Catalog lists feed the form selects; an empty dropdown beats a dead
	// page, so lookup failures only log.
	var err error
	if view.Categories, err = s.catalog.ListCategories(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Listing categories failed", "error", err)
	}
	if view.Persons, err = s.catalog.ListPersons(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Listing persons failed", "error", err)
	}
	if view.Executors, err = s.catalog.ListExecutors(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Listing executors failed", "error", err)
	}

	s.render(w, r, "index.html", view)
}

func (s *Server) handleBalancePartial(w http.ResponseWriter, r *http.Request) {
	balance, ok := s.balanceCache.Get(balanceKey)
	if !ok {
		var err error
		balance, err = s.reports.Balance(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Balance query failed", "error", err)
			InternalServerError("Error al calcular el saldo").Write(w)
			return
		}
		s.balanceCache.Set(balanceKey, balance)
	}

	s.render(w, r, "balance.html", balanceView{
		Balance:  balance,
		Negative: balance.IsNegative(),
	})
}

func (s *Server) handleMonthReportPartial(w http.ResponseWriter, r *http.Request) {
	month := queryMonth(r)
	year, monthNum, err := core.ParseYearMonth(month)
	if err != nil {
		BadRequestError("Mes no válido, use AAAA-MM").Write(w)
		return
	}
	groupBy := parseGroupBy(r)

	key := reportKey(month, groupBy)
	report, ok := s.reportCache.Get(key)
	var limits core.MonthLimits
	if ok {
		// Resolving limits is a single indexed lookup; only the aggregation
		// is worth caching.
		limits, err = s.periods.MonthLimits(r.Context(), month)
	} else {
		report, limits, err = s.reports.MonthlyReport(r.Context(), month, groupBy)
		if err == nil {
			s.reportCache.Set(key, report)
		}
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Month report failed", "error", err, "month", month)
		InternalServerError("Error al generar el reporte mensual").Write(w)
		return
	}

	s.render(w, r, "month_report.html", monthReportView{
		Month:      month,
		MonthLabel: fmt.Sprintf("%s %d", core.MonthName(monthNum), year),
		Limits:     limits,
		GroupBy:    groupBy,
		Report:     report,
	})
}

func (s *Server) handleMovementsPartial(w http.ResponseWriter, r *http.Request) {
	month := queryMonth(r)
	if _, _, err := core.ParseYearMonth(month); err != nil {
		BadRequestError("Mes no válido, use AAAA-MM").Write(w)
		return
	}

	movements, limits, err := s.reports.MonthExpenses(r.Context(), month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Movement listing failed", "error", err, "month", month)
		InternalServerError("Error al listar los movimientos").Write(w)
		return
	}

	s.render(w, r, "movements.html", movementsView{
		Month:     month,
		Limits:    limits,
		Movements: movements,
	})
}

// render executes a template into a buffer first so a mid-render failure
// never leaks a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		InternalServerError("Plantillas no disponibles").Write(w)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template render failed", "error", err, "template", name)
		InternalServerError("Error al generar la página").Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
