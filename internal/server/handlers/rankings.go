package handlers

import (
	"net/http"

	"github.com/agentstation/utc"

	"github.com/StreamMUSE/streammuse/internal/server/response"
	"github.com/StreamMUSE/streammuse/pkg/rankings"
)

// RankingsMeta accompanies the leaderboard.
type RankingsMeta struct {
	TotalComparisons int      `json:"total_comparisons"`
	LastUpdated      utc.Time `json:"last_updated"`
}

// HandleRankings handles GET /api/rankings.
// @Summary Model leaderboard
// @Tags rankings
// @Produce json
// @Success 200 {object} response.Response{data=[]rankings.Entry,meta=RankingsMeta}
// @Router /api/rankings [get].
func (h *Handlers) HandleRankings(w http.ResponseWriter, _ *http.Request) {
	entries := rankings.All()
	response.JSON(w, http.StatusOK, response.WithMeta(entries, RankingsMeta{
		TotalComparisons: rankings.TotalVotes(entries),
		LastUpdated:      utc.Now(),
	}))
}
