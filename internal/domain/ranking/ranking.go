// Package ranking joins the broker roster and the sale set into an ordered
// leaderboard.
package ranking

import (
	"sort"

	"github.com/placarvendas/placar/internal/domain/model"
)

// totals accumulates per-broker sums during grouping.
type totals struct {
	amount    float64
	items     int
	visits    int
	proposals int
}

// Aggregate computes the leaderboard for the given roster and sales. Every
// roster broker yields exactly one entry, zero-filled when it has no sales
// (left-join semantics; inactivity never drops a broker). Entries are
// ordered by total amount descending, stable on the roster order for ties,
// with dense 1-based ranks. Inputs are not mutated.
func Aggregate(brokers []model.Broker, sales []model.Sale) []model.Entry {
	grouped := make(map[string]totals, len(brokers))
	for _, sale := range sales {
		t := grouped[sale.BrokerID]
		t.amount += sale.Amount
		t.items += sale.ItemCount
		t.visits += sale.VisitCount
		t.proposals += sale.ProposalCount
		grouped[sale.BrokerID] = t
	}

	entries := make([]model.Entry, 0, len(brokers))
	for _, broker := range brokers {
		t := grouped[broker.ID]
		entries = append(entries, model.Entry{
			Broker:        broker,
			TotalAmount:   t.amount,
			SaleCount:     t.items,
			VisitCount:    t.visits,
			ProposalCount: t.proposals,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalAmount > entries[j].TotalAmount
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// ApplyPhotos returns a copy of brokers with photos from the configured
// lookup (keyed by normalized display name) when a match exists. Identity
// and roster composition are untouched; only PhotoURL is enriched.
func ApplyPhotos(brokers []model.Broker, photos map[string]string) []model.Broker {
	out := make([]model.Broker, len(brokers))
	copy(out, brokers)
	if len(photos) == 0 {
		return out
	}
	for i := range out {
		if photo, ok := photos[model.NormalizeName(out[i].Name)]; ok && photo != "" {
			out[i].PhotoURL = photo
		}
	}
	return out
}

// FilterTeam keeps entries whose broker name exactly matches a configured
// member of the team. An unknown team key or an empty configured roster
// returns the input unchanged; an empty leaderboard beats a wrongly empty
// one when the configuration drifts.
func FilterTeam(entries []model.Entry, teamKey string, teams map[string][]string) []model.Entry {
	members := teams[teamKey]
	if len(members) == 0 {
		return entries
	}
	allowed := make(map[string]struct{}, len(members))
	for _, name := range members {
		allowed[name] = struct{}{}
	}
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := allowed[e.Broker.Name]; ok {
			out = append(out, e)
		}
	}
	return out
}
