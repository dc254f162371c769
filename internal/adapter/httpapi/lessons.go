package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atlaslingo/darlingo/internal/adapter/mapping"
	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
)

type lessonListResponse struct {
	Lessons []mapping.LessonDTO `json:"lessons"`
	Total   int64               `json:"total"`
}

func (h *Handler) handleListLessons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := &repository.ListLessonQuery{
		Pagination: repository.Pagination{
			PageNo:   parseInt32(q.Get("page"), 1),
			PageSize: parseInt32(q.Get("page_size"), 0),
		},
		FilterOrder: repository.FilterOrder{
			Filter:  q.Get("filter"),
			OrderBy: q.Get("order_by"),
		},
	}

	lessons, total, err := h.lessons.List(r.Context(), query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	out := make([]mapping.LessonDTO, 0, len(lessons))
	for i := range lessons {
		out = append(out, mapping.FromLesson(&lessons[i], false))
	}
	respondJSON(w, http.StatusOK, lessonListResponse{Lessons: out, Total: total})
}

func (h *Handler) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, r, entity.ErrLessonNotFound)
		return
	}
	lesson, err := h.lessons.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, mapping.FromLesson(lesson, true))
}

type completeLessonRequest struct {
	Score float64 `json:"score"`
}

func (h *Handler) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, r, entity.ErrLessonNotFound)
		return
	}
	var req completeLessonRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: errBadBody.Error()})
		return
	}
	reward, err := h.progress.CompleteLesson(r.Context(), userID(r.Context()), id, req.Score)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, mapping.FromReward(reward))
}

func parseInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(n)
}
