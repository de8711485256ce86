package adapt

import (
	"strings"
	"time"
)

// Generic layouts tried after the upstream's native DD/MM/YYYY form.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate converts an upstream date value into a time.Time. The upstream
// emits "DD/MM/YYYY" or "DD/MM/YYYY HH:mm"; that form is tried first (the
// time-of-day part is ignored, matching upstream day granularity), then the
// generic layouts above. The boolean is false when nothing parses; callers
// substitute the current instant so a badly-dated sale still counts in
// totals, just not in recency ordering.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case string:
		return parseDateString(d)
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Native form: take the date part before any time-of-day suffix.
	datePart, _, _ := strings.Cut(s, " ")
	if t, ok := parseSlashDate(datePart); ok {
		return t, true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseSlashDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, okD := atoi(parts[0])
	month, okM := atoi(parts[1])
	year, okY := atoi(parts[2])
	if !okD || !okM || !okY {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

func atoi(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
