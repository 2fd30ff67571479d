package core

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// MonthLimits is the effective date range of one accounting month.
type MonthLimits struct {
	StartDate Date
	EndDate   Date
	IsCustom  bool
}

// PeriodLookup finds the active override period for a (year, month), if any.
// Implementations return (nil, nil) when no active override exists.
type PeriodLookup interface {
	ActivePeriod(ctx context.Context, year, month int) (*CustomPeriod, error)
}

// PeriodResolver decides which date range counts as "the month" for a query.
// An active CustomPeriod wins; otherwise the calendar-natural bounds apply.
type PeriodResolver struct {
	lookup PeriodLookup
}

func NewPeriodResolver(lookup PeriodLookup) *PeriodResolver {
	return &PeriodResolver{lookup: lookup}
}

// MonthLimits resolves the bounds for (year, month).
//
// A lookup failure never propagates: reporting must not go down because the
// override table is unreachable, so the resolver logs and degrades to the
// natural month bounds.
func (r *PeriodResolver) MonthLimits(ctx context.Context, year, month int) MonthLimits {
	if r.lookup != nil {
		p, err := r.lookup.ActivePeriod(ctx, year, month)
		if err != nil {
			slog.WarnContext(ctx, "Period lookup failed, using natural bounds",
				"year", year, "month", month, "error", err)
		} else if p != nil {
			return MonthLimits{StartDate: p.StartDate, EndDate: p.EndDate, IsCustom: true}
		}
	}
	return naturalMonthLimits(year, month)
}

// MonthLimitsFromString resolves bounds for a "YYYY-MM" string.
func (r *PeriodResolver) MonthLimitsFromString(ctx context.Context, yearMonth string) (MonthLimits, error) {
	year, month, err := ParseYearMonth(yearMonth)
	if err != nil {
		return MonthLimits{}, err
	}
	return r.MonthLimits(ctx, year, month), nil
}

// HasCustomPeriod reports whether (year, month) has an active override.
// Lookup errors count as "no".
func (r *PeriodResolver) HasCustomPeriod(ctx context.Context, year, month int) bool {
	if r.lookup == nil {
		return false
	}
	p, err := r.lookup.ActivePeriod(ctx, year, month)
	if err != nil {
		slog.WarnContext(ctx, "Period lookup failed", "year", year, "month", month, "error", err)
		return false
	}
	return p != nil
}

// naturalMonthLimits computes the calendar bounds of a month. The end date is
// day 0 of the following month, which handles 28/29/30/31-day months and leap
// years without a lookup table.
func naturalMonthLimits(year, month int) MonthLimits {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return MonthLimits{StartDate: Date{Time: start}, EndDate: Date{Time: end}}
}

// ParseYearMonth splits a "YYYY-MM" key into its parts.
func ParseYearMonth(s string) (year, month int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed year-month %q: want YYYY-MM", s)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed year in %q: %w", s, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed month in %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range in %q: %w", month, s, ErrInvalidMonth)
	}
	return year, month, nil
}

// MonthName returns the Spanish name of a month, or "" when out of range.
func MonthName(month int) string {
	names := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	if month < 1 || month > 12 {
		return ""
	}
	return names[month-1]
}
