package ranking_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/placarvendas/placar/internal/domain/model"
	"github.com/placarvendas/placar/internal/domain/ranking"
)

func roster() []model.Broker {
	return []model.Broker{
		{ID: "ana", Name: "Ana Souza", PhotoURL: "/p.png"},
		{ID: "bruno", Name: "Bruno Dias", PhotoURL: "/p.png"},
		{ID: "clara", Name: "Clara Nunes", PhotoURL: "/p.png"},
	}
}

func sale(id, brokerID string, amount float64) model.Sale {
	return model.Sale{
		ID:        id,
		BrokerID:  brokerID,
		Amount:    amount,
		ItemCount: 1,
		OccurredAt: time.Now(),
	}
}

func TestAggregate(t *testing.T) {
	Convey("Given a broker roster and a sale set", t, func() {
		Convey("An empty sale set yields one zero entry per broker in roster order", func() {
			entries := ranking.Aggregate(roster(), nil)
			So(entries, ShouldHaveLength, 3)
			for i, e := range entries {
				So(e.TotalAmount, ShouldEqual, 0)
				So(e.SaleCount, ShouldEqual, 0)
				So(e.Rank, ShouldEqual, i+1)
			}
			So(entries[0].Broker.ID, ShouldEqual, "ana")
			So(entries[1].Broker.ID, ShouldEqual, "bruno")
			So(entries[2].Broker.ID, ShouldEqual, "clara")
		})

		Convey("Sales group per broker and order the leaderboard", func() {
			sales := []model.Sale{
				sale("s1", "bruno", 500000),
				sale("s2", "clara", 300000),
				sale("s3", "bruno", 200000),
				{ID: "s4", BrokerID: "clara", Amount: 100000, ItemCount: 2, VisitCount: 3, ProposalCount: 1},
			}
			entries := ranking.Aggregate(roster(), sales)

			So(entries[0].Broker.ID, ShouldEqual, "bruno")
			So(entries[0].TotalAmount, ShouldEqual, 700000)
			So(entries[0].SaleCount, ShouldEqual, 2)

			So(entries[1].Broker.ID, ShouldEqual, "clara")
			So(entries[1].TotalAmount, ShouldEqual, 400000)
			So(entries[1].SaleCount, ShouldEqual, 3)
			So(entries[1].VisitCount, ShouldEqual, 3)
			So(entries[1].ProposalCount, ShouldEqual, 1)

			So(entries[2].Broker.ID, ShouldEqual, "ana")
			So(entries[2].TotalAmount, ShouldEqual, 0)
		})

		Convey("Ranks are dense and respect the amount ordering", func() {
			entries := ranking.Aggregate(roster(), []model.Sale{sale("s1", "clara", 10)})
			for i := 1; i < len(entries); i++ {
				So(entries[i-1].Rank, ShouldEqual, i)
				So(entries[i-1].TotalAmount, ShouldBeGreaterThanOrEqualTo, entries[i].TotalAmount)
			}
		})

		Convey("Ties keep the roster order", func() {
			sales := []model.Sale{
				sale("s1", "ana", 100),
				sale("s2", "clara", 100),
			}
			entries := ranking.Aggregate(roster(), sales)
			So(entries[0].Broker.ID, ShouldEqual, "ana")
			So(entries[1].Broker.ID, ShouldEqual, "clara")
			So(entries[2].Broker.ID, ShouldEqual, "bruno")
		})

		Convey("Aggregation is idempotent and does not mutate its inputs", func() {
			brokers := roster()
			sales := []model.Sale{sale("s1", "bruno", 42)}

			first := ranking.Aggregate(brokers, sales)
			second := ranking.Aggregate(brokers, sales)

			So(second, ShouldResemble, first)
			So(brokers, ShouldResemble, roster())
			So(sales[0].Amount, ShouldEqual, 42)
		})

		Convey("Sales for unknown brokers do not create entries", func() {
			entries := ranking.Aggregate(roster(), []model.Sale{sale("s1", "ghost", 999)})
			So(entries, ShouldHaveLength, 3)
			for _, e := range entries {
				So(e.Broker.ID, ShouldNotEqual, "ghost")
			}
		})
	})
}

func TestApplyPhotos(t *testing.T) {
	Convey("Given a photo lookup keyed by normalized name", t, func() {
		photos := map[string]string{"ana souza": "/brokers/ana.jpg"}

		Convey("Matching brokers are enriched, others untouched", func() {
			out := ranking.ApplyPhotos(roster(), photos)
			So(out[0].PhotoURL, ShouldEqual, "/brokers/ana.jpg")
			So(out[1].PhotoURL, ShouldEqual, "/p.png")
		})

		Convey("The input slice is not mutated", func() {
			in := roster()
			_ = ranking.ApplyPhotos(in, photos)
			So(in[0].PhotoURL, ShouldEqual, "/p.png")
		})

		Convey("Identity and roster composition never change", func() {
			out := ranking.ApplyPhotos(roster(), photos)
			So(out, ShouldHaveLength, 3)
			So(out[0].ID, ShouldEqual, "ana")
		})
	})
}

func TestFilterTeam(t *testing.T) {
	teams := map[string][]string{
		"litoral": {"Ana Souza", "Clara Nunes"},
		"vazio":   {},
	}

	Convey("Given a computed leaderboard", t, func() {
		entries := ranking.Aggregate(roster(), nil)

		Convey("A configured team keeps only exact name matches", func() {
			out := ranking.FilterTeam(entries, "litoral", teams)
			So(out, ShouldHaveLength, 2)
			So(out[0].Broker.Name, ShouldEqual, "Ana Souza")
			So(out[1].Broker.Name, ShouldEqual, "Clara Nunes")
		})

		Convey("An unknown team key returns the input unchanged", func() {
			So(ranking.FilterTeam(entries, "nope", teams), ShouldResemble, entries)
		})

		Convey("A team with an empty roster returns the input unchanged", func() {
			So(ranking.FilterTeam(entries, "vazio", teams), ShouldResemble, entries)
		})

		Convey("An empty team key returns the input unchanged", func() {
			So(ranking.FilterTeam(entries, "", teams), ShouldResemble, entries)
		})
	})
}
