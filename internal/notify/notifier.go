// Package notify delivers new-sale announcements to side-effect sinks. The
// pipeline treats delivery as fire-and-forget; a failed sink never blocks
// or degrades the ranking itself.
package notify

import (
	"context"

	"github.com/placarvendas/placar/pkg/logger"
	"github.com/placarvendas/placar/pkg/metrics"
)

// Sender is the interface each notification channel must implement.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name returns a human-readable identifier for the sender.
	Name() string
}

// Notifier dispatches notifications to all registered senders.
type Notifier struct {
	senders []Sender
	log     logger.Logger
}

// NewNotifier creates a Notifier delivering to the given senders.
func NewNotifier(senders []Sender, log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Named("notify")
	}
	return &Notifier{senders: senders, log: log}
}

// Notify sends to every sender. Failures are logged and counted, never
// returned: by the time a notification fires the ranking is already
// updated, and a broken sink must not affect it.
func (n *Notifier) Notify(ctx context.Context, title, message string) {
	for _, sender := range n.senders {
		if err := sender.Send(ctx, title, message); err != nil {
			metrics.RecordNotifyError()
			n.log.Warn(ctx, "notification delivery failed",
				logger.String("sender", sender.Name()),
				logger.Error(err))
		}
	}
}
