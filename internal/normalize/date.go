// Package normalize converts loosely formatted date and time text into
// canonical representations. Both entry points are pure and total:
// malformed input yields (_, false), never an error.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ordinalRe = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)
	monthRe   = regexp.MustCompile(`[a-z]+`)
	looseDate = regexp.MustCompile(`(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{4})`)
)

// dateLayouts are tried in order; first parse wins. The order is
// deliberate: it decides how ambiguous numeric dates like 01-02-2025
// resolve (day-month before month-day), so do not reorder.
var dateLayouts = []string{
	"2-Jan-2006",
	"2-January-2006",
	"2-1-2006",
	"2006-1-2",
	"2-1-06",
	"2 Jan 2006",
	"Jan 2 2006",
	"January 2 2006",
}

// Date normalizes free-form date text to an ISO 8601 calendar date
// (YYYY-MM-DD). Ordinal suffixes are stripped ("1st" -> "1") and "/"
// separators unified to "-" before the layout list is tried. As a last
// resort a "D Mon YYYY"-shaped token is pulled out of the text and
// parsed on its own.
func Date(raw string) (string, bool) {
	dt := strings.ToLower(strings.TrimSpace(raw))
	if dt == "" {
		return "", false
	}

	dt = ordinalRe.ReplaceAllString(dt, "$1")
	dt = strings.ReplaceAll(dt, "/", "-")
	dt = strings.ReplaceAll(dt, ",", "")

	// Go month layouts are case-sensitive; "jan" never parses as "Jan"
	titled := monthRe.ReplaceAllStringFunc(dt, func(w string) string {
		return strings.ToUpper(w[:1]) + w[1:]
	})

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, titled); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	if m := looseDate.FindStringSubmatch(dt); m != nil {
		mon := strings.ToUpper(m[2][:1]) + m[2][1:]
		if t, err := time.Parse("2 Jan 2006", fmt.Sprintf("%s %s %s", m[1], mon, m[3])); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}
