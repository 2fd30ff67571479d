package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cajachica/internal/core"
)

// sanitizeInput trims whitespace and strips control characters except tab,
// newline, and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// formValue reads a sanitized form field.
func formValue(r *http.Request, key string) string {
	return sanitizeInput(r.Form.Get(key))
}

// formID reads an optional numeric form field; 0 when absent or invalid.
func formID(r *http.Request, key string) int64 {
	v := strings.TrimSpace(r.Form.Get(key))
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// pathID reads the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// queryMonth reads the "month" query parameter as "YYYY-MM", defaulting to
// the current month.
func queryMonth(r *http.Request) string {
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		return v
	}
	now := time.Now()
	return fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
}

// monthKeyOf formats a date's "YYYY-MM" key, used for cache invalidation and
// htmx triggers.
func monthKeyOf(d core.Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}

// parseGroupBy maps the query parameter to a grouping, defaulting to the
// category summary.
func parseGroupBy(r *http.Request) core.GroupBy {
	switch r.URL.Query().Get("group_by") {
	case string(core.GroupByPersonCategory):
		return core.GroupByPersonCategory
	case string(core.GroupByPersonCategoryMovement):
		return core.GroupByPersonCategoryMovement
	default:
		return core.GroupByCategory
	}
}
