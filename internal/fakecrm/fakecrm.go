// Package fakecrm serves a fake CRM listing endpoint for local development
// of the live fetch path. It speaks the upstream wire shape: paginated
// "atendimento" rows with nested deal, visit and proposal collections,
// pt-BR formatted currency strings and DD/MM/YYYY dates.
package fakecrm

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Dataset size defaults.
const (
	defaultRows = 75
)

var brokerNames = []string{
	"Marcio Adriano",
	"Lorena Fernandes",
	"Lauanda Azara",
	"Pedro Tito Prata",
	"Nayara Santiago",
	"Carla Cardinale",
	"Mariane Soares Rodrigues",
}

// Server holds a generated dataset and serves it page by page.
type Server struct {
	rows []map[string]any
}

// NewServer generates numRows listing rows. Zero or negative uses the
// default size.
func NewServer(numRows int, rng *rand.Rand) *Server {
	if numRows <= 0 {
		numRows = defaultRows
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // fake data
	}
	rows := make([]map[string]any, 0, numRows)
	for i := 0; i < numRows; i++ {
		rows = append(rows, generateRow(rng))
	}
	return &Server{rows: rows}
}

// Register attaches the listing route to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/Atendimento/RetornarAtendimentos", s.handleList)
}

// handleList serves one page of rows wrapped under "lista", mirroring the
// real endpoint's envelope.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("numeroPagina"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("numeroRegistros"))
	if size < 1 {
		size = 20
	}

	start := (page - 1) * size
	if start > len(s.rows) {
		start = len(s.rows)
	}
	end := start + size
	if end > len(s.rows) {
		end = len(s.rows)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"lista": s.rows[start:end]})
}

// generateRow builds one raw atendimento row. Roughly a third of the rows
// carry multiple nested deals; a few have none and only a top-level amount,
// exercising the adapter's fallback.
func generateRow(rng *rand.Rand) map[string]any {
	broker := brokerNames[rng.Intn(len(brokerNames))]
	date := time.Now().AddDate(0, 0, -rng.Intn(120))

	row := map[string]any{
		"codigonegocio": uuid.NewString(),
		"corretor":      broker,
		"datanegocio":   date.Format("02/01/2006 15:04"),
		"codigoimovel":  fmt.Sprintf("IMV-%04d", rng.Intn(10000)),
		"endereco":      fmt.Sprintf("Rua %d, nº %d", rng.Intn(200)+1, rng.Intn(900)+100),
	}

	switch rng.Intn(3) {
	case 0: // multiple nested deals
		deals := make([]map[string]any, rng.Intn(2)+2)
		for i := range deals {
			deals[i] = map[string]any{"valor": formatBRL(randomAmount(rng))}
		}
		row["imoveisnegocio"] = deals
	case 1: // single nested deal
		row["imoveisnegocio"] = []map[string]any{
			{"valornegocio": formatBRL(randomAmount(rng))},
		}
	default: // top-level amount only
		row["valor_venda"] = formatBRL(randomAmount(rng))
	}

	row["imoveisvisita"] = emptyObjects(rng.Intn(4))
	row["imoveisproposta"] = emptyObjects(rng.Intn(3))
	return row
}

func randomAmount(rng *rand.Rand) float64 {
	return 200_000 + rng.Float64()*1_800_000
}

func emptyObjects(n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{}
	}
	return out
}

// formatBRL renders an amount in the upstream's pt-BR currency convention.
func formatBRL(v float64) string {
	cents := int64(v * 100)
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	return fmt.Sprintf("R$ %s,%02d", grouped, frac)
}
