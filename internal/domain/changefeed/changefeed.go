// Package changefeed detects newly-appeared sales across polling cycles.
//
// The detector keeps a fingerprint of the previous snapshot: the sorted sale
// ids joined into one comparable key. Exactly one new id between snapshots
// means a single new sale arrived and is worth announcing; zero or several
// new ids at once are coalesced into silence, an accepted limitation of
// fingerprint diffing rather than an error.
package changefeed

import (
	"sort"
	"strings"

	"github.com/placarvendas/placar/internal/domain/model"
)

// Event describes one detected new sale.
type Event struct {
	Sale       model.Sale
	BrokerID   string
	BrokerName string
}

// Detector holds the fingerprint of the most recently observed snapshot.
// It is not safe for concurrent use; access must stay confined to the
// single polling goroutine.
type Detector struct {
	initialized bool
	fingerprint string
}

// NewDetector creates a Detector with no recorded snapshot.
func NewDetector() *Detector {
	return &Detector{}
}

// Observe compares the sale snapshot against the previous one. The first
// observation only records the fingerprint. On later observations, exactly
// one new sale id yields an Event resolving the sale to its owning broker;
// the stored fingerprint is replaced unconditionally either way.
func (d *Detector) Observe(sales []model.Sale, brokers []model.Broker) (Event, bool) {
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	next := strings.Join(ids, ",")

	prev, wasInitialized := d.fingerprint, d.initialized
	d.fingerprint = next
	d.initialized = true

	if !wasInitialized || prev == next {
		return Event{}, false
	}

	added := newIDs(prev, next)
	if len(added) != 1 {
		return Event{}, false
	}

	sale, ok := findSale(sales, added[0])
	if !ok {
		return Event{}, false
	}
	ev := Event{Sale: sale, BrokerID: sale.BrokerID}
	for _, b := range brokers {
		if b.ID == sale.BrokerID {
			ev.BrokerName = b.Name
			return ev, true
		}
	}
	// Sale from a broker the roster does not know; nothing to announce.
	return Event{}, false
}

// Reset clears the stored fingerprint, e.g. when the observed window
// changes and a wholesale id turnover is expected.
func (d *Detector) Reset() {
	d.initialized = false
	d.fingerprint = ""
}

func newIDs(prev, next string) []string {
	seen := make(map[string]struct{})
	for _, id := range strings.Split(prev, ",") {
		if id != "" {
			seen[id] = struct{}{}
		}
	}
	var added []string
	for _, id := range strings.Split(next, ",") {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}

func findSale(sales []model.Sale, id string) (model.Sale, bool) {
	for _, s := range sales {
		if s.ID == id {
			return s, true
		}
	}
	return model.Sale{}, false
}
