package period_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/placarvendas/placar/internal/domain/period"
)

func TestResolve(t *testing.T) {
	// Wednesday, 15 April 2026, mid-afternoon.
	now := time.Date(2026, time.April, 15, 14, 30, 45, 0, time.Local)

	Convey("Given a fixed reference instant", t, func() {
		Convey("Every period key yields start <= end", func() {
			for _, key := range period.Keys() {
				w := period.Resolve(key, now)
				So(w.Start.After(w.End), ShouldBeFalse)
			}
		})

		Convey("today spans midnight to the last millisecond of the day", func() {
			w := period.Resolve(period.KeyToday, now)
			So(w.Start.Hour(), ShouldEqual, 0)
			So(w.Start.Minute(), ShouldEqual, 0)
			So(w.Start.Second(), ShouldEqual, 0)
			So(w.Start.Nanosecond(), ShouldEqual, 0)
			So(w.End.Hour(), ShouldEqual, 23)
			So(w.End.Minute(), ShouldEqual, 59)
			So(w.End.Second(), ShouldEqual, 59)
			So(w.End.Nanosecond(), ShouldEqual, int(999*time.Millisecond))
			So(w.Start.Day(), ShouldEqual, 15)
			So(w.End.Day(), ShouldEqual, 15)
		})

		Convey("yesterday and tomorrow shift the day window by one", func() {
			So(period.Resolve(period.KeyYesterday, now).Start.Day(), ShouldEqual, 14)
			So(period.Resolve(period.KeyTomorrow, now).Start.Day(), ShouldEqual, 16)
		})

		Convey("all starts at the epoch and ends today", func() {
			w := period.Resolve(period.KeyAll, now)
			So(w.Start.Year(), ShouldEqual, 1970)
			So(w.End.Day(), ShouldEqual, 15)
		})

		Convey("overdue starts on January 1st of the current year", func() {
			w := period.Resolve(period.KeyOverdue, now)
			So(w.Start.Year(), ShouldEqual, 2026)
			So(w.Start.Month(), ShouldEqual, time.January)
			So(w.Start.Day(), ShouldEqual, 1)
		})

		Convey("previous-month covers March in full", func() {
			w := period.Resolve(period.KeyPreviousMonth, now)
			So(w.Start.Month(), ShouldEqual, time.March)
			So(w.Start.Day(), ShouldEqual, 1)
			So(w.End.Month(), ShouldEqual, time.March)
			So(w.End.Day(), ShouldEqual, 31)
		})

		Convey("this-week starts on Monday and ends today", func() {
			w := period.Resolve(period.KeyThisWeek, now)
			So(w.Start.Weekday(), ShouldEqual, time.Monday)
			So(w.Start.Day(), ShouldEqual, 13)
			So(w.End.Day(), ShouldEqual, 15)
		})

		Convey("next-week spans Monday through Sunday", func() {
			w := period.Resolve(period.KeyNextWeek, now)
			So(w.Start.Weekday(), ShouldEqual, time.Monday)
			So(w.Start.Day(), ShouldEqual, 20)
			So(w.End.Weekday(), ShouldEqual, time.Sunday)
			So(w.End.Day(), ShouldEqual, 26)
		})

		Convey("this-month and next-month cover whole calendar months", func() {
			this := period.Resolve(period.KeyThisMonth, now)
			So(this.Start.Day(), ShouldEqual, 1)
			So(this.End.Day(), ShouldEqual, 30) // April

			next := period.Resolve(period.KeyNextMonth, now)
			So(next.Start.Month(), ShouldEqual, time.May)
			So(next.End.Day(), ShouldEqual, 31)
		})

		Convey("unknown keys fall back to today's window", func() {
			fallback := period.Resolve("not-a-period", now)
			So(fallback, ShouldResemble, period.Resolve(period.KeyToday, now))

			custom := period.Resolve(period.KeyCustomRange, now)
			So(custom, ShouldResemble, period.Resolve(period.KeyToday, now))
		})
	})

	Convey("Given a Sunday reference instant", t, func() {
		sunday := time.Date(2026, time.April, 19, 10, 0, 0, 0, time.Local)

		Convey("this-week still starts on the preceding Monday", func() {
			w := period.Resolve(period.KeyThisWeek, sunday)
			So(w.Start.Weekday(), ShouldEqual, time.Monday)
			So(w.Start.Day(), ShouldEqual, 13)
		})
	})

	Convey("Given a January reference instant", t, func() {
		january := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.Local)

		Convey("previous-month wraps into December of the prior year", func() {
			w := period.Resolve(period.KeyPreviousMonth, january)
			So(w.Start.Year(), ShouldEqual, 2025)
			So(w.Start.Month(), ShouldEqual, time.December)
			So(w.End.Day(), ShouldEqual, 31)
		})
	})
}
