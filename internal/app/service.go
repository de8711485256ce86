// Package app provides the core service that runs the data pipeline and
// implements the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/placarvendas/placar/internal/adapters/repository"
	"github.com/placarvendas/placar/internal/adapters/upstream"
	"github.com/placarvendas/placar/internal/domain/changefeed"
	"github.com/placarvendas/placar/internal/domain/model"
	"github.com/placarvendas/placar/internal/domain/period"
	"github.com/placarvendas/placar/internal/domain/ranking"
	"github.com/placarvendas/placar/internal/notify"
	"github.com/placarvendas/placar/pkg/logger"
	"github.com/placarvendas/placar/pkg/metrics"
)

const defaultPollInterval = 60 * time.Second

// Service orchestrates the ranking pipeline: it polls the upstream source
// on independent broker and sale cadences, recomputes the leaderboard when
// either side refreshes, and announces newly-detected sales.
type Service struct {
	mu sync.RWMutex

	// Core components
	source   upstream.Source
	store    repository.Store
	detector *changefeed.Detector
	notifier *notify.Notifier

	// Configuration
	teams        map[string][]string
	photos       map[string]string
	pollInterval time.Duration
	now          func() time.Time

	// Consumer selections
	periodKey string
	teamKey   string

	// State
	started     bool
	haveBrokers bool
	haveSales   bool
	stopCh      chan struct{}
	refreshCh   chan struct{}
	wg          sync.WaitGroup

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the data source.
func WithSource(source upstream.Source) Option {
	return func(s *Service) { s.source = source }
}

// WithStore sets the snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithNotifier sets the new-sale notification sink.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithTeams sets the static name-to-team configuration.
func WithTeams(teams map[string][]string) Option {
	return func(s *Service) {
		if teams != nil {
			s.teams = teams
		}
	}
}

// WithPhotos sets the normalized-name-to-photo configuration.
func WithPhotos(photos map[string]string) Option {
	return func(s *Service) {
		if photos != nil {
			s.photos = photos
		}
	}
}

// WithPollInterval sets the refresh cadence for both pollers.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithDefaultPeriod sets the initial period selection.
func WithDefaultPeriod(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.periodKey = key
		}
	}
}

// WithNow overrides the clock used for window resolution.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:        repository.NewSnapshotStore(),
		detector:     changefeed.NewDetector(),
		teams:        map[string][]string{},
		photos:       map[string]string{},
		pollInterval: defaultPollInterval,
		now:          time.Now,
		periodKey:    period.KeyThisMonth,
		stopCh:       make(chan struct{}),
		refreshCh:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the broker and sale pollers. Both run independently on
// the configured interval; each kicks off an immediate first fetch.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.source == nil {
		return fmt.Errorf("app: no data source configured")
	}
	if s.log == nil {
		s.log = logger.Named("app")
	}

	window := period.Resolve(s.periodKey, s.now())
	s.store.SetActiveWindow(ctx, window.Key())

	s.started = true
	s.wg.Add(2)
	go s.pollBrokers(ctx)
	go s.pollSales(ctx)

	s.log.Info(ctx, "pipeline started",
		logger.String("period", s.periodKey),
		logger.Duration("pollInterval", s.pollInterval))
	return nil
}

// Stop terminates the pollers and waits for them to drain.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	close(s.stopCh)
	s.mu.Unlock()
	s.wg.Wait()
}

// SetPeriod switches the active window. The in-flight fetch for the old
// window, if any, has its result dropped when it lands (last-applied-wins),
// and an immediate refetch is requested.
func (s *Service) SetPeriod(ctx context.Context, key string) {
	s.mu.Lock()
	s.periodKey = key
	now := s.now()
	s.mu.Unlock()

	window := period.Resolve(key, now)
	s.store.SetActiveWindow(ctx, window.Key())

	select {
	case s.refreshCh <- struct{}{}:
	default: // refresh already pending
	}
}

// Period returns the current period selection.
func (s *Service) Period(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.periodKey
}

// SetTeam switches the team filter applied to reads.
func (s *Service) SetTeam(_ context.Context, key string) {
	s.mu.Lock()
	s.teamKey = key
	s.mu.Unlock()
}

// Ranking returns the current leaderboard with the team filter applied.
// The team filter may also be overridden per-read with teamKey.
func (s *Service) Ranking(ctx context.Context, teamKey string) []model.Entry {
	if teamKey == "" {
		s.mu.RLock()
		teamKey = s.teamKey
		s.mu.RUnlock()
	}
	return ranking.FilterTeam(s.store.Entries(ctx), teamKey, s.teams)
}

// GetStats returns service statistics for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	s.mu.RLock()
	periodKey, teamKey := s.periodKey, s.teamKey
	s.mu.RUnlock()
	return map[string]interface{}{
		"period":       periodKey,
		"team":         teamKey,
		"activeWindow": s.store.ActiveWindow(ctx),
		"brokers":      len(s.store.Brokers(ctx)),
		"sales":        len(s.store.Sales(ctx)),
		"entries":      len(s.store.Entries(ctx)),
	}
}

// pollBrokers refreshes the roster on the configured cadence.
func (s *Service) pollBrokers(ctx context.Context) {
	defer s.wg.Done()

	s.refreshBrokers(ctx)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.refreshBrokers(ctx)
		}
	}
}

// pollSales refreshes the sale window on the configured cadence and on
// explicit refresh requests. It is the single goroutine touching the
// change detector.
func (s *Service) pollSales(ctx context.Context) {
	defer s.wg.Done()

	s.refreshSales(ctx)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.refreshSales(ctx)
		case <-s.refreshCh:
			s.refreshSales(ctx)
		}
	}
}

func (s *Service) refreshBrokers(ctx context.Context) {
	brokers, err := s.source.FetchBrokers(ctx)
	if err != nil {
		// The gateway degrades internally; an error here means even the
		// static roster was unavailable, so the old snapshot stands.
		s.log.Warn(ctx, "broker refresh failed", logger.Error(err))
		return
	}
	s.store.ApplyBrokers(ctx, brokers)
	metrics.UpdateRosterSize(len(brokers))

	s.mu.Lock()
	s.haveBrokers = true
	s.mu.Unlock()

	s.recompute(ctx, s.store.ActiveWindow(ctx))
}

func (s *Service) refreshSales(ctx context.Context) {
	s.mu.RLock()
	periodKey := s.periodKey
	s.mu.RUnlock()

	window := period.Resolve(periodKey, s.now())
	windowKey := window.Key()
	s.store.SetActiveWindow(ctx, windowKey)

	sales, err := s.source.FetchSales(ctx, &window)
	if err != nil {
		s.log.Warn(ctx, "sale refresh failed", logger.Error(err))
		return
	}
	if !s.store.ApplySales(ctx, windowKey, sales) {
		s.log.Debug(ctx, "sale result superseded by newer window", logger.String("window", windowKey))
		return
	}
	metrics.UpdateSalesFetched(len(sales))

	s.mu.Lock()
	s.haveSales = true
	s.mu.Unlock()

	if event, ok := s.detector.Observe(sales, s.store.Brokers(ctx)); ok {
		s.announce(ctx, event)
	}

	s.recompute(ctx, windowKey)
}

// recompute rebuilds the ranking from the current snapshots once both data
// kinds have arrived at least once.
func (s *Service) recompute(ctx context.Context, windowKey string) {
	s.mu.RLock()
	ready := s.haveBrokers && s.haveSales
	s.mu.RUnlock()
	if !ready {
		return
	}

	brokers := ranking.ApplyPhotos(s.store.Brokers(ctx), s.photos)
	entries := ranking.Aggregate(brokers, s.store.Sales(ctx))
	if !s.store.ApplyEntries(ctx, windowKey, entries) {
		return
	}
	metrics.RecordRankingRebuild()
	metrics.UpdateRankingEntries(len(entries))
}

func (s *Service) announce(ctx context.Context, event changefeed.Event) {
	metrics.RecordNewSaleEvent()
	s.log.Info(ctx, "new sale detected",
		logger.String("saleID", event.Sale.ID),
		logger.String("broker", event.BrokerName),
		logger.Float64("amount", event.Sale.Amount))
	if s.notifier != nil {
		s.notifier.Notify(ctx, "🎉 Nova Venda Detectada!", fmt.Sprintf("Parabéns %s!", event.BrokerName))
	}
}
