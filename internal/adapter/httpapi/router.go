// Package httpapi exposes the application over a JSON HTTP API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/atlaslingo/darlingo/internal/usecase"
	"github.com/atlaslingo/darlingo/internal/usecase/adaptive"
)

// Handler bundles the usecases behind the HTTP routes.
type Handler struct {
	auth         usecase.AuthUsecase
	lessons      usecase.LessonUsecase
	games        adaptive.Service
	progress     usecase.ProgressUsecase
	conversation usecase.ConversationUsecase

	logger *logrus.Logger
}

// NewHandler wires the usecases into an HTTP handler set.
func NewHandler(
	auth usecase.AuthUsecase,
	lessons usecase.LessonUsecase,
	games adaptive.Service,
	progress usecase.ProgressUsecase,
	conversation usecase.ConversationUsecase,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		auth:         auth,
		lessons:      lessons,
		games:        games,
		progress:     progress,
		conversation: conversation,
		logger:       logger,
	}
}

// Router builds the chi router with middleware and all API routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(h.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.handleRegister)
			r.Post("/login", h.handleLogin)
			r.Post("/refresh", h.handleRefresh)
		})

		r.Get("/lessons", h.handleListLessons)
		r.Get("/lessons/{id}", h.handleGetLesson)
		r.Get("/leaderboard", h.handleLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Post("/lessons/{id}/complete", h.handleCompleteLesson)

			r.Route("/games", func(r chi.Router) {
				r.Get("/session", h.handleGenerateSession)
				r.Post("/{type}/submit", h.handleSubmitGame)
				r.Get("/weaknesses", h.handleListWeaknesses)
			})

			r.Get("/progress", h.handleGetProgress)
			r.Post("/conversation/reply", h.handleConversationReply)
		})
	})

	return r
}
