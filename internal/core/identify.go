package core

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// SuggestIdentification builds a human-readable identification code from a
// name, e.g. "EXE-JPG482913" for "Juan Pablo García".
//
// This is a best-effort default the UI offers when creating a person or
// executor, not an identifier: initials plus a time-based suffix can collide.
// True uniqueness comes only from the store's primary key.
func SuggestIdentification(prefix, name string, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var initials strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		initials.WriteRune(unicode.ToUpper(r))
		count++
		if count >= 3 {
			break
		}
	}

	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return prefix + "-" + initials.String() + millis
}

// SuggestVoucherNumber proposes a receipt reference from a date and a serial,
// e.g. "CC-20260115-0042". Same caveat as SuggestIdentification: non-unique
// convenience default.
func SuggestVoucherNumber(date Date, serial int64) string {
	return "CC-" + date.Format("20060102") + "-" + pad4(serial)
}

func pad4(n int64) string {
	s := strconv.FormatInt(n, 10)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
