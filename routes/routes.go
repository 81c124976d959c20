package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-bracket/docs"
	"github.com/Dosada05/tournament-bracket/handlers"
	"github.com/Dosada05/tournament-bracket/metrics"
	"github.com/Dosada05/tournament-bracket/middleware"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Match      *handlers.MatchHandler
	WebSocket  *handlers.WebSocketHandler
	Health     *handlers.HealthHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, auth *middleware.Authenticator, allowedOrigins []string) {
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Healthz)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/api/tournaments", func(r chi.Router) {
		r.With(auth.RequireAdmin).Post("/", h.Tournament.CreateTournament)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.GetTournament)
			r.Get("/bracket", h.Tournament.GetBracket)
			r.Get("/matches/{matchID}", h.Match.GetMatch)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Post("/bracket", h.Tournament.StartBracket)
				r.Post("/end", h.Tournament.EndTournament)

				r.Post("/matches/{matchID}/report", h.Match.ReportMatch)
				r.Put("/matches/{matchID}/scores", h.Match.EditMatchScores)
				r.Post("/matches/{matchID}/override", h.Match.OverrideMatch)
				r.Post("/matches/{matchID}/reset", h.Match.ResetMatch)
			})
		})
	})
}
