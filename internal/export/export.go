// Package export renders grouped reports into downloadable files. Both
// formats walk the report in its first-appearance order, so the files read
// the same as the on-screen report.
package export

import (
	"time"

	"cajachica/internal/core"
)

// ReportMeta is the header block shared by every export format.
type ReportMeta struct {
	BusinessName string
	PeriodLabel  string
	Limits       core.MonthLimits
	GeneratedAt  time.Time
}

func groupByTitle(g core.GroupBy) string {
	switch g {
	case core.GroupByCategory:
		return "Resumen por categoría"
	case core.GroupByPersonCategory:
		return "Resumen por persona y categoría"
	case core.GroupByPersonCategoryMovement:
		return "Detalle por persona y categoría"
	}
	return "Reporte"
}
