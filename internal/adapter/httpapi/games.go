package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlaslingo/darlingo/internal/adapter/mapping"
	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/usecase"
)

type sessionResponse struct {
	Level      string              `json:"level"`
	LevelLabel string              `json:"level_label"`
	Games      []entity.GameConfig `json:"games"`
}

func (h *Handler) handleGenerateSession(w http.ResponseWriter, r *http.Request) {
	level := entity.NormalizeLevel(entity.Level(r.URL.Query().Get("level")))
	games, err := h.games.GenerateSession(r.Context(), userID(r.Context()), level)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{
		Level:      string(level),
		LevelLabel: level.Label(),
		Games:      games,
	})
}

type submitGameRequest struct {
	Score   float64 `json:"score"`
	Answers []struct {
		Correct bool `json:"correct"`
	} `json:"answers"`
}

func (h *Handler) handleSubmitGame(w http.ResponseWriter, r *http.Request) {
	gameType := entity.GameType(chi.URLParam(r, "type"))

	var req submitGameRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: errBadBody.Error()})
		return
	}
	answers := make([]usecase.GameAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, usecase.GameAnswer{Correct: a.Correct})
	}

	reward, err := h.progress.SubmitGame(r.Context(), userID(r.Context()), gameType, req.Score, answers)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, mapping.FromReward(reward))
}

func (h *Handler) handleListWeaknesses(w http.ResponseWriter, r *http.Request) {
	records, err := h.games.ListWeaknesses(r.Context(), userID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	out := make([]mapping.WeaknessDTO, 0, len(records))
	for _, record := range records {
		out = append(out, mapping.FromWeakness(record))
	}
	respondJSON(w, http.StatusOK, map[string]any{"weaknesses": out})
}
