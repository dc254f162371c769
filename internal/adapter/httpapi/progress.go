package httpapi

import (
	"net/http"

	"github.com/atlaslingo/darlingo/internal/adapter/mapping"
)

func (h *Handler) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := h.progress.GetSummary(r.Context(), userID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, mapping.FromSummary(summary))
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseInt32(r.URL.Query().Get("limit"), 0)
	rows, err := h.progress.Leaderboard(r.Context(), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	out := make([]mapping.LeaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapping.FromLeaderboardRow(row))
	}
	respondJSON(w, http.StatusOK, map[string]any{"leaderboard": out})
}
