// Package adapt normalizes raw upstream CRM records into the canonical
// domain shapes. The upstream is loosely typed: field names drift between
// casings and aliases, monetary values arrive as pt-BR formatted strings,
// and dates come in more than one format. Everything loose stops at this
// package boundary; only strict model types leave it.
package adapt

import (
	"fmt"
	"time"

	"github.com/placarvendas/placar/internal/domain/model"
)

// Raw is one untyped upstream record, as decoded from JSON.
type Raw = map[string]any

// amountFields is the fixed priority order for monetary extraction. The
// first candidate that parses to a positive value wins; single-field
// coupling would break on upstream schema drift.
var amountFields = []string{
	"valor_venda",
	"valor_total",
	"valor_fechamento",
	"valor",
	"valorNegocio",
	"valornegocio",
	"valor_proposta",
	"valorProposta",
	"valorFechamento",
	"valor_fechar",
}

// amountSubObjects are nested records probed after the flat candidates.
var amountSubObjects = []struct {
	object string
	fields []string
}{
	{"imovel", []string{"valor", "Valor"}},
	{"proposta", []string{"valor", "Valor"}},
}

var brokerNameFields = []string{"corretor", "nomecorretor", "corretorNome", "nomeCorretor"}

var saleDateFields = []string{
	"datanegocio", "datafechamento", "data", "datahora", "dataHora", "dataVenda", "DataVenda",
}

// Adapter converts raw upstream records into domain types.
type Adapter struct {
	defaultPhotoURL string
	now             func() time.Time
}

// Option applies a configuration option to the Adapter.
type Option func(*Adapter)

// WithDefaultPhotoURL sets the placeholder photo applied when a broker
// record carries no usable photo field.
func WithDefaultPhotoURL(url string) Option {
	return func(a *Adapter) {
		if url != "" {
			a.defaultPhotoURL = url
		}
	}
}

// WithNow overrides the clock used when a sale date fails to parse.
func WithNow(now func() time.Time) Option {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Adapter with the given options.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		defaultPhotoURL: "/avatar-placeholder.png",
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Broker normalizes one raw broker record. Identity falls back to the
// slugified display name when no id field is present; the photo is never
// left empty.
func (a *Adapter) Broker(raw Raw) model.Broker {
	name := stringField(raw, "Nome", "nome")
	id := stringField(raw, "Id", "id")
	if id == "" {
		id = model.SlugifyName(name)
	}
	photo := stringField(raw, "Foto", "foto", "FotoUrl", "fotoUrl")
	if photo == "" {
		photo = a.defaultPhotoURL
	}
	return model.Broker{
		ID:       id,
		Name:     name,
		Email:    stringField(raw, "Email", "email"),
		PhotoURL: photo,
	}
}

// Sale normalizes one flat raw sale record (the shape the synthetic source
// and simple upstream listings emit). The amount goes through the full
// candidate chain; an unparseable date resolves to the current instant.
func (a *Adapter) Sale(raw Raw) model.Sale {
	occurredAt, ok := ParseDate(firstPresent(raw, saleDateFields))
	if !ok {
		occurredAt = a.now()
	}
	return model.Sale{
		ID:              stringField(raw, "Id", "id"),
		BrokerID:        stringField(raw, "CorretorId", "corretorId"),
		Amount:          ExtractAmount(raw),
		ItemCount:       1,
		OccurredAt:      occurredAt,
		PropertyID:      stringField(raw, "ImovelId", "imovelId"),
		PropertyAddress: stringField(raw, "ImovelEndereco", "imovelEndereco"),
	}
}

// EngagementSale maps one raw "atendimento" row from the live listing
// endpoint into a Sale. The row bundles nested deal, visit and proposal
// collections; the sale amount is the sum of every nested deal that parses
// to a positive amount (one item-count unit each). When no nested deal
// yields anything, the top-level amount fields are the fallback and the row
// counts as a single item.
func (a *Adapter) EngagementSale(raw Raw) model.Sale {
	deals := listField(raw, "imoveisnegocio")
	visits := listField(raw, "imoveisvisita")
	proposals := listField(raw, "imoveisproposta")

	var amount float64
	var items int
	for _, deal := range deals {
		if v := ExtractAmount(deal); v > 0 {
			amount += v
			items++
		}
	}
	if amount == 0 {
		if v := ExtractAmount(raw); v > 0 {
			amount = v
			if items == 0 {
				items = 1
			}
		}
	}

	brokerName := firstString(raw, brokerNameFields)
	brokerID := "corretor"
	if brokerName != "" {
		brokerID = model.SlugifyName(brokerName)
	}

	occurredAt, ok := ParseDate(firstPresent(raw, saleDateFields))
	if !ok {
		occurredAt = a.now()
	}

	id := stringField(raw, "codigonegocio", "codigo", "id")
	if id == "" {
		id = fmt.Sprintf("%s-%s", brokerID, firstString(raw, []string{"datanegocio", "datafechamento", "data"}))
	}

	return model.Sale{
		ID:              id,
		BrokerID:        brokerID,
		Amount:          amount,
		ItemCount:       items,
		VisitCount:      len(visits),
		ProposalCount:   len(proposals),
		OccurredAt:      occurredAt,
		PropertyID:      stringField(raw, "codigoimovel", "imovelcodigo"),
		PropertyAddress: stringField(raw, "endereco", "imovelendereco"),
	}
}

// EngagementBrokerName exposes the broker display name buried in a raw
// listing row, for roster discovery.
func EngagementBrokerName(raw Raw) string {
	return firstString(raw, brokerNameFields)
}

// ExtractAmount walks the amount candidate fields in priority order and
// returns the first positive parse, or 0 when none qualifies.
func ExtractAmount(raw Raw) float64 {
	for _, field := range amountFields {
		if v, ok := raw[field]; ok {
			if parsed := ParseCurrency(v); parsed > 0 {
				return parsed
			}
		}
	}
	for _, sub := range amountSubObjects {
		nested, ok := raw[sub.object].(map[string]any)
		if !ok {
			continue
		}
		for _, field := range sub.fields {
			if v, ok := nested[field]; ok {
				if parsed := ParseCurrency(v); parsed > 0 {
					return parsed
				}
			}
		}
	}
	return 0
}

// stringField returns the first alias present with a non-empty string value.
func stringField(raw Raw, aliases ...string) string {
	for _, key := range aliases {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			// Numeric ids arrive as JSON numbers; render integers plainly.
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprint(v)
		}
	}
	return ""
}

func firstString(raw Raw, aliases []string) string {
	return stringField(raw, aliases...)
}

// firstPresent returns the first alias whose value is present and non-empty.
func firstPresent(raw Raw, aliases []string) any {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return nil
}

// listField returns the named nested collection, tolerating absence and
// non-list values.
func listField(raw Raw, key string) []Raw {
	items, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Raw, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
