package upstream

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/placarvendas/placar/internal/domain/adapt"
	"github.com/placarvendas/placar/internal/domain/model"
)

// Synthetic dataset shape constants. The distribution is deliberately
// top-heavy so the demo leaderboard has a clear podium.
const (
	topOneSales   = 12
	topTwoSales   = 10
	topThreeSales = 8
	longTailSales = 20

	syntheticDelay = 300 * time.Millisecond
)

// Synthetic generates a sample dataset when no live upstream is available.
// The shape is deterministic (same brokers, same weighting) while the
// individual values are randomized per call. Records are produced as raw
// maps and run through the same adapter as live data.
type Synthetic struct {
	adapter *adapt.Adapter
	delay   time.Duration
	rng     *rand.Rand
}

// SyntheticOption applies a configuration option to the Synthetic source.
type SyntheticOption func(*Synthetic)

// WithDelay overrides the simulated network delay. Zero disables it.
func WithDelay(d time.Duration) SyntheticOption {
	return func(s *Synthetic) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithRand sets a custom random source for reproducible datasets.
func WithRand(rng *rand.Rand) SyntheticOption {
	return func(s *Synthetic) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewSynthetic creates a Synthetic source adapting records through adapter.
func NewSynthetic(adapter *adapt.Adapter, opts ...SyntheticOption) *Synthetic {
	s := &Synthetic{
		adapter: adapter,
		delay:   syntheticDelay,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // demo data, not security sensitive
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// syntheticBrokers is the fixed demo roster. The first three dominate the
// generated sales.
var syntheticBrokers = []adapt.Raw{
	{"Id": "1", "Nome": "Marcio Adriano", "Email": "marcio.adriano@example.com.br"},
	{"Id": "2", "Nome": "Lorena Fernandes", "Email": "lorena.fernandes@example.com.br"},
	{"Id": "3", "Nome": "Lauanda Azara", "Email": "lauanda.azara@example.com.br"},
	{"Id": "4", "Nome": "Carlos Oliveira", "Email": "carlos.oliveira@example.com.br"},
	{"Id": "5", "Nome": "Patricia Lima", "Email": "patricia.lima@example.com.br"},
	{"Id": "6", "Nome": "Roberto Alves", "Email": "roberto.alves@example.com.br"},
	{"Id": "7", "Nome": "Fernanda Souza", "Email": "fernanda.souza@example.com.br"},
	{"Id": "8", "Nome": "Lucas Ferreira", "Email": "lucas.ferreira@example.com.br"},
}

// Brokers returns the demo roster.
func (s *Synthetic) Brokers(ctx context.Context) ([]model.Broker, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	brokers := make([]model.Broker, 0, len(syntheticBrokers))
	for _, raw := range syntheticBrokers {
		brokers = append(brokers, s.adapter.Broker(raw))
	}
	return brokers, nil
}

// Sales returns a freshly generated sale set, window-filtered with the same
// semantics as the live path.
func (s *Synthetic) Sales(ctx context.Context, window *model.TimeWindow) ([]model.Sale, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	raws := make([]adapt.Raw, 0, topOneSales+topTwoSales+topThreeSales+longTailSales)

	podium := []struct {
		brokerID string
		tag      string
		count    int
		baseMin  float64
		spread   float64
	}{
		{"1", "top1", topOneSales, 1_200_000, 800_000},
		{"2", "top2", topTwoSales, 1_000_000, 600_000},
		{"3", "top3", topThreeSales, 800_000, 500_000},
	}
	for _, p := range podium {
		for i := 0; i < p.count; i++ {
			raws = append(raws, s.rawSale(
				fmt.Sprintf("venda-%s-%d", p.tag, i+1),
				p.brokerID,
				p.baseMin+s.rng.Float64()*p.spread,
				now.AddDate(0, 0, -s.rng.Intn(90)),
			))
		}
	}

	for i := 0; i < longTailSales; i++ {
		brokerID := syntheticBrokers[s.rng.Intn(len(syntheticBrokers))]["Id"].(string)
		if brokerID == "1" || brokerID == "2" || brokerID == "3" {
			continue // keep the podium uncontested
		}
		raws = append(raws, s.rawSale(
			uuid.NewString(),
			brokerID,
			200_000+s.rng.Float64()*600_000,
			now.AddDate(0, 0, -s.rng.Intn(180)),
		))
	}

	sales := make([]model.Sale, 0, len(raws))
	for _, raw := range raws {
		sale := s.adapter.Sale(raw)
		if window != nil && !window.Contains(sale.OccurredAt) {
			continue
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

func (s *Synthetic) rawSale(id, brokerID string, amount float64, date time.Time) adapt.Raw {
	return adapt.Raw{
		"Id":         id,
		"CorretorId": brokerID,
		"valor":      amount,
		"DataVenda":  date.Format(time.RFC3339),
		"Status":     "Vendido",
	}
}

func (s *Synthetic) sleep(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("synthetic source: %w", ctx.Err())
	case <-time.After(s.delay):
		return nil
	}
}
