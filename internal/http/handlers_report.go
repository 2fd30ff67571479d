package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cajachica/internal/core"
	"cajachica/internal/export"
)

const businessName = "Caja Chica"

// handleExportReport streams the month's report as a downloadable file.
// Exports always hit the services directly; a stale cached report inside a
// file the user keeps would be worse than the extra query.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	yearMonth := queryMonth(r)
	year, month, err := core.ParseYearMonth(yearMonth)
	if err != nil {
		BadRequestError("Mes no válido, use AAAA-MM").Write(w)
		return
	}
	groupBy := parseGroupBy(r)

	report, limits, err := s.reports.MonthlyReport(r.Context(), yearMonth, groupBy)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report export failed", "error", err, "month", yearMonth)
		InternalServerError("Error al generar el reporte").Write(w)
		return
	}

	meta := export.ReportMeta{
		BusinessName: businessName,
		PeriodLabel:  fmt.Sprintf("%s %d", core.MonthName(month), year),
		Limits:       limits,
		GeneratedAt:  time.Now(),
	}

	var buf bytes.Buffer
	var contentType, ext string
	switch r.URL.Query().Get("format") {
	case "pdf":
		contentType = "application/pdf"
		ext = "pdf"
		err = export.WritePDF(&buf, meta, report)
	case "xlsx", "":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
		err = export.WriteXLSX(&buf, meta, report)
	default:
		BadRequestError("Formato no soportado, use xlsx o pdf").Write(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Report rendering failed", "error", err, "month", yearMonth, "format", ext)
		InternalServerError("Error al generar el archivo").Write(w)
		return
	}

	filename := fmt.Sprintf("reporte-%s-%s.%s", yearMonth, string(groupBy), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	_, _ = buf.WriteTo(w)
}
