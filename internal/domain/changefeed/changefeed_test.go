package changefeed_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/placarvendas/placar/internal/domain/changefeed"
	"github.com/placarvendas/placar/internal/domain/model"
)

func brokers() []model.Broker {
	return []model.Broker{
		{ID: "ana", Name: "Ana Souza"},
		{ID: "bruno", Name: "Bruno Dias"},
	}
}

func sales(ids ...string) []model.Sale {
	out := make([]model.Sale, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Sale{ID: id, BrokerID: "ana", Amount: 100000})
	}
	return out
}

func TestDetector(t *testing.T) {
	Convey("Given a fresh detector", t, func() {
		d := changefeed.NewDetector()

		Convey("The first observation records the snapshot without an event", func() {
			_, ok := d.Observe(sales("s1", "s2"), brokers())
			So(ok, ShouldBeFalse)
		})

		Convey("Exactly one new sale id yields an event", func() {
			d.Observe(sales("s1"), brokers())
			ev, ok := d.Observe(sales("s1", "s2"), brokers())
			So(ok, ShouldBeTrue)
			So(ev.Sale.ID, ShouldEqual, "s2")
			So(ev.BrokerID, ShouldEqual, "ana")
			So(ev.BrokerName, ShouldEqual, "Ana Souza")
		})

		Convey("An unchanged snapshot is silent", func() {
			d.Observe(sales("s1"), brokers())
			_, ok := d.Observe(sales("s1"), brokers())
			So(ok, ShouldBeFalse)
		})

		Convey("Reordered ids are still the same snapshot", func() {
			d.Observe(sales("s1", "s2"), brokers())
			_, ok := d.Observe(sales("s2", "s1"), brokers())
			So(ok, ShouldBeFalse)
		})

		Convey("Several new ids at once are coalesced into silence", func() {
			d.Observe(sales("s1"), brokers())
			_, ok := d.Observe(sales("s1", "s2", "s3"), brokers())
			So(ok, ShouldBeFalse)

			Convey("But the fingerprint moved forward regardless", func() {
				_, ok := d.Observe(sales("s1", "s2", "s3"), brokers())
				So(ok, ShouldBeFalse)
			})
		})

		Convey("A removed id alone produces no event", func() {
			d.Observe(sales("s1", "s2"), brokers())
			_, ok := d.Observe(sales("s1"), brokers())
			So(ok, ShouldBeFalse)
		})

		Convey("A removal paired with a single addition still announces the addition", func() {
			d.Observe(sales("s1", "s2"), brokers())
			ev, ok := d.Observe(sales("s1", "s3"), brokers())
			So(ok, ShouldBeTrue)
			So(ev.Sale.ID, ShouldEqual, "s3")
		})

		Convey("A new sale from a broker outside the roster is not announced", func() {
			d.Observe(sales("s1"), brokers())
			next := append(sales("s1"), model.Sale{ID: "s2", BrokerID: "ghost", Amount: 50})
			_, ok := d.Observe(next, brokers())
			So(ok, ShouldBeFalse)
		})

		Convey("Reset forgets the snapshot so the next observation only records", func() {
			d.Observe(sales("s1"), brokers())
			d.Reset()
			_, ok := d.Observe(sales("s1", "s2"), brokers())
			So(ok, ShouldBeFalse)

			Convey("Detection resumes on the observation after that", func() {
				ev, ok := d.Observe(sales("s1", "s2", "s3"), brokers())
				So(ok, ShouldBeTrue)
				So(ev.Sale.ID, ShouldEqual, "s3")
			})
		})
	})
}
