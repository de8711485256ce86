// Package period maps period identifiers to concrete time windows.
//
// Resolve is pure: the current instant is always passed in explicitly so the
// calendar math stays deterministic and testable. Unknown keys deliberately
// fall back to today's window rather than erroring.
package period

import (
	"time"

	"github.com/placarvendas/placar/internal/domain/model"
)

// Recognized period keys.
const (
	KeyAll           = "all"
	KeyOverdue       = "overdue"
	KeyPreviousMonth = "previous-month"
	KeyYesterday     = "yesterday"
	KeyToday         = "today"
	KeyTomorrow      = "tomorrow"
	KeyThisWeek      = "this-week"
	KeyNextWeek      = "next-week"
	KeyThisMonth     = "this-month"
	KeyNextMonth     = "next-month"
	KeyCustomRange   = "custom-range"
)

// Keys lists all recognized period keys in display order.
func Keys() []string {
	return []string{
		KeyAll, KeyOverdue, KeyPreviousMonth, KeyYesterday, KeyToday,
		KeyTomorrow, KeyThisWeek, KeyNextWeek, KeyThisMonth, KeyNextMonth,
		KeyCustomRange,
	}
}

// Resolve maps a period key to an inclusive [start, end] window relative to
// now, using now's location for all calendar arithmetic.
func Resolve(key string, now time.Time) model.TimeWindow {
	loc := now.Location()
	todayStart := startOfDay(now)
	todayEnd := endOfDay(now)

	switch key {
	case KeyAll:
		return model.TimeWindow{Start: time.Date(1970, time.January, 1, 0, 0, 0, 0, loc), End: todayEnd}
	case KeyOverdue:
		return model.TimeWindow{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), End: todayEnd}
	case KeyPreviousMonth:
		first := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, loc)
		return model.TimeWindow{Start: first, End: endOfMonth(first)}
	case KeyYesterday:
		d := todayStart.AddDate(0, 0, -1)
		return model.TimeWindow{Start: d, End: endOfDay(d)}
	case KeyToday:
		return model.TimeWindow{Start: todayStart, End: todayEnd}
	case KeyTomorrow:
		d := todayStart.AddDate(0, 0, 1)
		return model.TimeWindow{Start: d, End: endOfDay(d)}
	case KeyThisWeek:
		return model.TimeWindow{Start: startOfWeek(now), End: todayEnd}
	case KeyNextWeek:
		start := startOfWeek(now).AddDate(0, 0, 7)
		return model.TimeWindow{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
	case KeyThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return model.TimeWindow{Start: first, End: endOfMonth(first)}
	case KeyNextMonth:
		first := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, loc)
		return model.TimeWindow{Start: first, End: endOfMonth(first)}
	default:
		// Includes KeyCustomRange and anything unrecognized.
		return model.TimeWindow{Start: todayStart, End: todayEnd}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// startOfWeek returns Monday 00:00 of t's week; Sunday counts as the last
// day of the previous-started week (offset 6).
func startOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return startOfDay(t).AddDate(0, 0, -offset)
}

// endOfMonth returns the last instant of the month containing first, where
// first must be the month's first day at 00:00.
func endOfMonth(first time.Time) time.Time {
	return endOfDay(first.AddDate(0, 1, -1))
}
