// Package repository holds the current ranking snapshot state.
package repository

import (
	"context"

	"github.com/placarvendas/placar/internal/domain/model"
)

// Store provides read/write access to the latest fetched collections and
// the computed ranking. Writes carry the window key that was active when
// the fetch was issued; stale results are rejected so result application is
// last-applied-wins rather than last-issued-wins.
type Store interface {
	// SetActiveWindow records the window key currently selected by the
	// consumer. Subsequent applies for other keys are rejected.
	SetActiveWindow(ctx context.Context, key string)

	// ActiveWindow returns the currently selected window key.
	ActiveWindow(ctx context.Context) string

	// ApplyBrokers replaces the broker roster snapshot.
	ApplyBrokers(ctx context.Context, brokers []model.Broker)

	// ApplySales replaces the sale snapshot if windowKey is still active.
	// Returns false when the result arrived for a superseded window.
	ApplySales(ctx context.Context, windowKey string, sales []model.Sale) bool

	// ApplyEntries replaces the ranking snapshot if windowKey is still active.
	ApplyEntries(ctx context.Context, windowKey string, entries []model.Entry) bool

	// Brokers, Sales and Entries return copies of the current snapshots.
	Brokers(ctx context.Context) []model.Broker
	Sales(ctx context.Context) []model.Sale
	Entries(ctx context.Context) []model.Entry
}
