// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Broker represents a salesperson tracked in the ranking. Instances are
// rebuilt wholesale on every fetch cycle and never persisted.
type Broker struct {
	ID       string `json:"id"`        // stable id; upstream-supplied or derived via SlugifyName
	Name     string `json:"name"`      // display name as reported upstream
	Email    string `json:"email"`     // may be empty
	PhotoURL string `json:"photo_url"` // never empty downstream; placeholder applied at adaptation
}

// Sale is one closed deal attributed to a broker.
type Sale struct {
	ID              string    `json:"id"`       // unique within a fetch; change detection compares by this
	BrokerID        string    `json:"broker_id"`
	Amount          float64   `json:"amount"` // currency units, finite and non-negative
	ItemCount       int       `json:"item_count"`
	VisitCount      int       `json:"visit_count"`
	ProposalCount   int       `json:"proposal_count"`
	OccurredAt      time.Time `json:"occurred_at"`
	PropertyID      string    `json:"property_id,omitempty"`
	PropertyAddress string    `json:"property_address,omitempty"`
}

// Entry is one row of the computed leaderboard.
type Entry struct {
	Broker        Broker  `json:"broker"`
	TotalAmount   float64 `json:"total_amount"`
	SaleCount     int     `json:"sale_count"`
	VisitCount    int     `json:"visit_count"`
	ProposalCount int     `json:"proposal_count"`
	Rank          int     `json:"rank"` // dense, 1-based
}

// TimeWindow is an inclusive [Start, End] instant range used to filter sales.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the window, bounds included.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Key returns a comparable identity for the window, used to guard
// last-applied-wins result application.
func (w TimeWindow) Key() string {
	return w.Start.Format(time.RFC3339Nano) + "/" + w.End.Format(time.RFC3339Nano)
}

// NormalizeName lowercases and trims a broker display name. Photo and team
// lookups are keyed by this form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SlugifyName derives a stable broker id from a display name: normalized,
// with whitespace runs collapsed to single hyphens. Two brokers slugifying
// to the same id are the same entity.
func SlugifyName(name string) string {
	return strings.Join(strings.Fields(NormalizeName(name)), "-")
}
