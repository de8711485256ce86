package model_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/placarvendas/placar/internal/domain/model"
)

func TestNames(t *testing.T) {
	Convey("NormalizeName lowercases and trims", t, func() {
		So(model.NormalizeName("  Lauanda Azara  "), ShouldEqual, "lauanda azara")
		So(model.NormalizeName("MARCIO ADRIANO"), ShouldEqual, "marcio adriano")
		So(model.NormalizeName(""), ShouldBeEmpty)
	})

	Convey("SlugifyName collapses whitespace into hyphens", t, func() {
		So(model.SlugifyName("Lauanda Azara"), ShouldEqual, "lauanda-azara")
		So(model.SlugifyName("  João   Pablo  Telles "), ShouldEqual, "joão-pablo-telles")
		So(model.SlugifyName(""), ShouldBeEmpty)

		Convey("Two spellings differing only in case and spacing collide", func() {
			So(model.SlugifyName("ana  SOUZA"), ShouldEqual, model.SlugifyName("Ana Souza"))
		})
	})
}

func TestTimeWindow(t *testing.T) {
	Convey("Given an inclusive window", t, func() {
		w := model.TimeWindow{
			Start: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.Local),
			End:   time.Date(2026, time.April, 30, 23, 59, 59, 0, time.Local),
		}

		Convey("Both bounds are contained", func() {
			So(w.Contains(w.Start), ShouldBeTrue)
			So(w.Contains(w.End), ShouldBeTrue)
			So(w.Contains(w.Start.Add(time.Hour)), ShouldBeTrue)
		})

		Convey("Instants outside the bounds are not", func() {
			So(w.Contains(w.Start.Add(-time.Nanosecond)), ShouldBeFalse)
			So(w.Contains(w.End.Add(time.Nanosecond)), ShouldBeFalse)
		})

		Convey("The key identifies the window and nothing else", func() {
			So(w.Key(), ShouldEqual, w.Key())

			other := model.TimeWindow{Start: w.Start, End: w.End.Add(time.Second)}
			So(other.Key(), ShouldNotEqual, w.Key())
		})
	})
}
