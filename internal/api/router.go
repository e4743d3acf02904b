package api

import (
	"net/http"

	"github.com/dom/scrim-team-builder/internal/api/handlers"
	"github.com/dom/scrim-team-builder/internal/api/middleware"
	"github.com/dom/scrim-team-builder/internal/config"
	"github.com/dom/scrim-team-builder/internal/service"
	"github.com/dom/scrim-team-builder/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config, logger *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	teamHandler := handlers.NewTeamHandler(services.Team, logger)
	memberHandler := handlers.NewMemberHandler(services.Member, logger)
	teamBuilderHandler := handlers.NewTeamBuilderHandler(services.TeamBuilder, logger)
	gameHandler := handlers.NewGameHandler(services.Game, logger)
	draftHandler := handlers.NewDraftHandler(services.Draft, logger)
	eventsHandler := handlers.NewEventsHandler(hub, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/teams", teamHandler.Create)

		r.Route("/teams/{teamId}", func(r chi.Router) {
			r.Use(middleware.TeamScope(services.Team, logger))

			r.Get("/", teamHandler.Get)

			// Roster
			r.Get("/members", memberHandler.List)
			r.Post("/members", memberHandler.Create)
			r.Put("/members/{memberId}", memberHandler.Update)
			r.Delete("/members/{memberId}", memberHandler.Delete)

			// Team builder
			r.Post("/generate", teamBuilderHandler.Generate)
			r.Post("/generate/draft", teamBuilderHandler.GenerateFromDraft)
			r.Get("/generations/{generationId}", teamBuilderHandler.GetGeneration)

			r.Get("/draft", draftHandler.Get)
			r.Put("/draft", draftHandler.Save)

			// Results
			r.Get("/games", gameHandler.List)
			r.Post("/games", gameHandler.Record)
			r.Get("/games/{gameId}", gameHandler.Get)
			r.Delete("/games/{gameId}", gameHandler.Delete)
			r.Get("/stats", gameHandler.Stats)

			// WebSocket change notifications
			r.Get("/events", eventsHandler.Subscribe)
		})
	})

	return r
}
