package repository_test

import (
	"context"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/placarvendas/placar/internal/adapters/repository"
	"github.com/placarvendas/placar/internal/domain/model"
)

func TestSnapshotStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty snapshot store", t, func() {
		store := repository.NewSnapshotStore()

		Convey("Reads on the fresh store return empty snapshots", func() {
			So(store.Brokers(ctx), ShouldBeEmpty)
			So(store.Sales(ctx), ShouldBeEmpty)
			So(store.Entries(ctx), ShouldBeEmpty)
			So(store.ActiveWindow(ctx), ShouldBeEmpty)
		})

		Convey("The active window round-trips", func() {
			store.SetActiveWindow(ctx, "w1")
			So(store.ActiveWindow(ctx), ShouldEqual, "w1")
		})

		Convey("ApplyBrokers replaces the roster regardless of window", func() {
			store.ApplyBrokers(ctx, []model.Broker{{ID: "ana", Name: "Ana Souza"}})
			So(store.Brokers(ctx), ShouldHaveLength, 1)
			So(store.Brokers(ctx)[0].ID, ShouldEqual, "ana")
		})

		Convey("ApplySales accepts results for the active window only", func() {
			store.SetActiveWindow(ctx, "w1")

			So(store.ApplySales(ctx, "w1", []model.Sale{{ID: "s1"}}), ShouldBeTrue)
			So(store.Sales(ctx), ShouldHaveLength, 1)

			Convey("A result for a superseded window is dropped", func() {
				store.SetActiveWindow(ctx, "w2")
				So(store.ApplySales(ctx, "w1", []model.Sale{{ID: "stale"}}), ShouldBeFalse)
				So(store.Sales(ctx)[0].ID, ShouldEqual, "s1")
			})
		})

		Convey("ApplyEntries guards on the active window the same way", func() {
			store.SetActiveWindow(ctx, "w1")
			entries := []model.Entry{{Broker: model.Broker{ID: "ana"}, TotalAmount: 100, Rank: 1}}

			So(store.ApplyEntries(ctx, "w2", entries), ShouldBeFalse)
			So(store.Entries(ctx), ShouldBeEmpty)

			So(store.ApplyEntries(ctx, "w1", entries), ShouldBeTrue)
			So(store.Entries(ctx), ShouldResemble, entries)
		})

		Convey("Returned snapshots are copies", func() {
			store.SetActiveWindow(ctx, "w1")
			store.ApplySales(ctx, "w1", []model.Sale{{ID: "s1", Amount: 100}})

			got := store.Sales(ctx)
			got[0].Amount = 999

			So(store.Sales(ctx)[0].Amount, ShouldEqual, 100)
		})

		Convey("Concurrent readers and writers do not trip the race detector", func() {
			store.SetActiveWindow(ctx, "w1")
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					store.ApplySales(ctx, "w1", []model.Sale{{ID: "s1"}})
				}()
				go func() {
					defer wg.Done()
					_ = store.Sales(ctx)
				}()
			}
			wg.Wait()
			So(store.Sales(ctx), ShouldHaveLength, 1)
		})
	})
}
