package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts seen in club tracker exports. Tried in order; the first
// hit wins.
var monthLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02/01/2006",
	"01/02/06",
	"Jan-06",
	"Jan 2006",
	"January 2006",
	"2-Jan-06",
	"02 Jan 2006",
}

// MonthKey derives the canonical "YYYY-MM" key from a raw month cell.
// If the cell parses as a calendar date (including an Excel serial
// number, which excelize hands back for unstyled date cells) the key
// is formatted from it; otherwise the trimmed string itself is the
// key. An empty cell yields "".
func MonthKey(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if t, ok := parseDate(s); ok {
		return t.Format("2006-01")
	}
	return s
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Excel serial date: days since 1899-12-30. Only plausible
	// serials are treated as dates; small numbers stay numeric.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= 20000 && serial < 80000 {
			epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
			return epoch.AddDate(0, 0, int(serial)), true
		}
	}
	return time.Time{}, false
}

// ParseNumeric coerces a raw cell to a float. It tolerates currency
// symbols, thousands separators and a trailing percent sign (divided
// through by 100). Anything else returns nil, never an error.
func ParseNumeric(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	// Accounting-style negatives: (1,234.56)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if percent {
		v /= 100
	}
	return &v
}
