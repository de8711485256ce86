package upstream

import (
	"context"
	"sort"
	"time"

	"github.com/placarvendas/placar/internal/domain/adapt"
	"github.com/placarvendas/placar/internal/domain/model"
	"github.com/placarvendas/placar/pkg/logger"
	"github.com/placarvendas/placar/pkg/metrics"
)

// Source provides broker and sale collections for the pipeline. A nil
// window on FetchSales means no date filtering.
type Source interface {
	FetchBrokers(ctx context.Context) ([]model.Broker, error)
	FetchSales(ctx context.Context, window *model.TimeWindow) ([]model.Sale, error)
}

// Metric label values used by the gateway.
const (
	kindBrokers = "brokers"
	kindSales   = "sales"

	modeLive      = "live"
	modeSynthetic = "synthetic"

	outcomeOK       = "ok"
	outcomeFallback = "fallback"
)

// Gateway implements Source against the live CRM API with a synthetic
// fallback. The mode is fixed at construction: with no access key (or with
// the synthetic flag set) every call serves synthetic data; otherwise live
// fetches are attempted first and any failure degrades to synthetic data
// for that call. The dashboard must always have something to render.
type Gateway struct {
	client    *Client
	adapter   *adapt.Adapter
	synthetic *Synthetic

	teams           map[string][]string
	defaultPhotoURL string
	pageSize        int
	maxPages        int
	syntheticOnly   bool

	log logger.Logger
}

// Option applies a configuration option to the Gateway.
type Option func(*Gateway)

// WithClient sets the live CRM client. Without one the gateway is
// synthetic-only.
func WithClient(client *Client) Option {
	return func(g *Gateway) { g.client = client }
}

// WithSyntheticOnly forces synthetic mode regardless of client presence.
func WithSyntheticOnly(on bool) Option {
	return func(g *Gateway) { g.syntheticOnly = g.syntheticOnly || on }
}

// WithTeams sets the static name-to-team roster configuration.
func WithTeams(teams map[string][]string) Option {
	return func(g *Gateway) {
		if teams != nil {
			g.teams = teams
		}
	}
}

// WithDefaultPhotoURL sets the placeholder photo for roster brokers.
func WithDefaultPhotoURL(url string) Option {
	return func(g *Gateway) {
		if url != "" {
			g.defaultPhotoURL = url
		}
	}
}

// WithPageSize sets the upstream listing page size.
func WithPageSize(n int) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.pageSize = n
		}
	}
}

// WithMaxPages caps pagination depth.
func WithMaxPages(n int) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.maxPages = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// WithSynthetic injects a preconfigured synthetic source, e.g. one without
// the simulated delay.
func WithSynthetic(s *Synthetic) Option {
	return func(g *Gateway) {
		if s != nil {
			g.synthetic = s
		}
	}
}

// New constructs a Gateway.
func New(opts ...Option) *Gateway {
	g := &Gateway{
		teams:           map[string][]string{},
		defaultPhotoURL: "/avatar-placeholder.png",
		pageSize:        20,
		maxPages:        500,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		g.syntheticOnly = true
	}
	if g.log == nil {
		g.log = logger.Named("upstream")
	}
	g.adapter = adapt.New(adapt.WithDefaultPhotoURL(g.defaultPhotoURL))
	if g.synthetic == nil {
		g.synthetic = NewSynthetic(g.adapter)
	}
	return g
}

// FetchBrokers returns the full known roster: the statically configured
// team members plus any broker discovered in recent sales. The static part
// guarantees every known broker appears even with zero activity. Discovery
// failure degrades to the static roster alone, never to an error.
func (g *Gateway) FetchBrokers(ctx context.Context) ([]model.Broker, error) {
	roster := g.rosterBrokers()

	if g.syntheticOnly {
		extras, err := g.synthetic.Brokers(ctx)
		if err != nil {
			return roster, nil
		}
		metrics.RecordFetch(kindBrokers, modeSynthetic, outcomeOK)
		return mergeBrokers(roster, extras), nil
	}

	rows, err := g.fetchRows(ctx, nil)
	if err != nil {
		g.log.Warn(ctx, "broker discovery failed; using static roster only", logger.Error(err))
		metrics.RecordFetch(kindBrokers, modeLive, outcomeFallback)
		return roster, nil
	}
	metrics.RecordFetch(kindBrokers, modeLive, outcomeOK)

	extras := make([]model.Broker, 0)
	for _, row := range rows {
		name := adapt.EngagementBrokerName(row)
		if name == "" {
			continue
		}
		extras = append(extras, model.Broker{
			ID:       model.SlugifyName(name),
			Name:     name,
			PhotoURL: g.defaultPhotoURL,
		})
	}
	return mergeBrokers(roster, extras), nil
}

// FetchSales returns the sales within the window. Live failures of any
// kind, including a zero-row result, fall back to synthetic data with the
// same window filter applied.
func (g *Gateway) FetchSales(ctx context.Context, window *model.TimeWindow) ([]model.Sale, error) {
	if g.syntheticOnly {
		sales, err := g.synthetic.Sales(ctx, window)
		if err != nil {
			return nil, err
		}
		metrics.RecordFetch(kindSales, modeSynthetic, outcomeOK)
		return sales, nil
	}

	start := time.Now()
	sales, err := g.fetchLiveSales(ctx, window)
	metrics.RecordFetchDuration(kindSales, float64(time.Since(start).Milliseconds()))
	if err != nil {
		return g.fallbackSales(ctx, window, err)
	}
	metrics.RecordFetch(kindSales, modeLive, outcomeOK)
	return sales, nil
}

// fallbackSales is the visible second stage of the fetch strategy: the live
// attempt failed, so the same window is served from the synthetic source.
func (g *Gateway) fallbackSales(ctx context.Context, window *model.TimeWindow, cause error) ([]model.Sale, error) {
	g.log.Warn(ctx, "live sale fetch failed; serving synthetic data", logger.Error(cause))
	metrics.RecordFetch(kindSales, modeLive, outcomeFallback)
	metrics.RecordFetchFallback(kindSales)
	return g.synthetic.Sales(ctx, window)
}

func (g *Gateway) fetchLiveSales(ctx context.Context, window *model.TimeWindow) ([]model.Sale, error) {
	rows, err := g.fetchRows(ctx, window)
	if err != nil {
		return nil, err
	}

	sales := make([]model.Sale, 0, len(rows))
	for _, row := range rows {
		sale := g.adapter.EngagementSale(row)
		// Defensive re-filter: upstream date bounds may be unreliable.
		if window != nil && !window.Contains(sale.OccurredAt) {
			continue
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

// fetchRows pages through the listing endpoint sequentially. A page shorter
// than the page size signals the last page; the page ceiling is a soft stop
// that keeps whatever was gathered. Zero rows overall is treated as a
// failure per the empty-result policy.
func (g *Gateway) fetchRows(ctx context.Context, window *model.TimeWindow) ([]adapt.Raw, error) {
	var startDate, endDate string
	if window != nil {
		startDate = window.Start.Format("2006-01-02")
		endDate = window.End.Format("2006-01-02")
	}

	var rows []adapt.Raw
	for page := 1; page <= g.maxPages; page++ {
		pageRows, err := g.client.ListEngagements(ctx, page, g.pageSize, startDate, endDate)
		if err != nil {
			return nil, err
		}
		metrics.RecordPageFetched()
		rows = append(rows, pageRows...)
		if len(pageRows) < g.pageSize {
			break
		}
		if page == g.maxPages {
			g.log.Warn(ctx, "pagination ceiling reached; returning partial data",
				logger.Int("maxPages", g.maxPages),
				logger.Int("rows", len(rows)))
		}
	}

	if len(rows) == 0 {
		return nil, ErrEmptyResult
	}
	return rows, nil
}

// rosterBrokers builds broker skeletons from the static team configuration,
// in deterministic order (sorted team keys, configured member order) so the
// ranking tiebreak stays stable across fetches.
func (g *Gateway) rosterBrokers() []model.Broker {
	keys := make([]string, 0, len(g.teams))
	for key := range g.teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]struct{})
	var roster []model.Broker
	for _, key := range keys {
		for _, name := range g.teams[key] {
			id := model.SlugifyName(name)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			roster = append(roster, model.Broker{
				ID:       id,
				Name:     name,
				PhotoURL: g.defaultPhotoURL,
			})
		}
	}
	return roster
}

// mergeBrokers unions two broker lists by id, first-seen wins for non-empty
// fields. Duplicate ids never survive the merge.
func mergeBrokers(base, extras []model.Broker) []model.Broker {
	out := make([]model.Broker, 0, len(base)+len(extras))
	index := make(map[string]int, len(base)+len(extras))

	add := func(b model.Broker) {
		if b.ID == "" {
			b.ID = model.SlugifyName(b.Name)
		}
		if i, ok := index[b.ID]; ok {
			merged := out[i]
			if merged.Name == "" {
				merged.Name = b.Name
			}
			if merged.Email == "" {
				merged.Email = b.Email
			}
			if merged.PhotoURL == "" {
				merged.PhotoURL = b.PhotoURL
			}
			out[i] = merged
			return
		}
		index[b.ID] = len(out)
		out = append(out, b)
	}

	for _, b := range base {
		add(b)
	}
	for _, b := range extras {
		add(b)
	}
	return out
}
