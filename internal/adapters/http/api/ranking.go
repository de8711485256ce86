package api

import (
	"net/http"
)

// RankingHandler handles leaderboard reads.
type RankingHandler struct {
	deps Dependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps Dependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// rankingResponse is the payload for GET /ranking.
type rankingResponse struct {
	Period  string  `json:"period"`
	Team    string  `json:"team,omitempty"`
	Entries []Entry `json:"entries"`
}

// HandleGetRanking handles GET /ranking?period=K&team=T requests. A period
// parameter switches the active window (the dashboard's period dropdown);
// a team parameter filters the returned entries without changing state.
// Unknown period and team keys are safe: the resolver defaults to today and
// an unconfigured team means no filter.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	if key := r.URL.Query().Get("period"); key != "" && key != h.deps.Period(ctx) {
		h.deps.SetPeriod(ctx, key)
	}
	team := r.URL.Query().Get("team")

	entries := h.deps.Ranking(ctx, team)
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, rankingResponse{
		Period:  h.deps.Period(ctx),
		Team:    team,
		Entries: entries,
	})
}
