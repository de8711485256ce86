package fakecrm_test

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/placarvendas/placar/internal/adapters/upstream"
	"github.com/placarvendas/placar/internal/domain/adapt"
	"github.com/placarvendas/placar/internal/fakecrm"
)

func TestServer(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fake CRM with a seeded dataset", t, func() {
		mux := http.NewServeMux()
		fakecrm.NewServer(5, rand.New(rand.NewSource(42))).Register(mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		client := upstream.NewClient(srv.URL, "dev-key")

		Convey("Pages slice the dataset like the real endpoint", func() {
			page1, err := client.ListEngagements(ctx, 1, 2, "", "")
			So(err, ShouldBeNil)
			So(page1, ShouldHaveLength, 2)

			page3, err := client.ListEngagements(ctx, 3, 2, "", "")
			So(err, ShouldBeNil)
			So(page3, ShouldHaveLength, 1)

			past, err := client.ListEngagements(ctx, 10, 2, "", "")
			So(err, ShouldBeNil)
			So(past, ShouldBeEmpty)
		})

		Convey("Pages are stable across requests", func() {
			first, err := client.ListEngagements(ctx, 1, 5, "", "")
			So(err, ShouldBeNil)
			second, err := client.ListEngagements(ctx, 1, 5, "", "")
			So(err, ShouldBeNil)
			So(second, ShouldResemble, first)
		})

		Convey("Every generated row survives the adapter", func() {
			rows, err := client.ListEngagements(ctx, 1, 5, "", "")
			So(err, ShouldBeNil)

			adapter := adapt.New()
			for _, row := range rows {
				sale := adapter.EngagementSale(row)
				So(sale.ID, ShouldNotBeEmpty)
				So(sale.BrokerID, ShouldNotBeEmpty)
				So(sale.Amount, ShouldBeGreaterThan, 0)
				So(sale.ItemCount, ShouldBeGreaterThanOrEqualTo, 1)
				So(sale.OccurredAt.IsZero(), ShouldBeFalse)
			}
		})
	})
}
