package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/bracket-system/docs"
	"github.com/Dosada05/bracket-system/handlers"
	"github.com/Dosada05/bracket-system/metrics"
	"github.com/Dosada05/bracket-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(opts.Metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	moderatorOnly := []func(http.Handler) http.Handler{
		middleware.Authenticate(opts.JWTSecret),
		middleware.RequireModerator,
	}

	router.Handle("/metrics", opts.Metrics.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.With(moderatorOnly...).Post("/", tournamentHandler.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Get("/teams", teamHandler.ListHandler)
			r.Get("/bracket", bracketHandler.GetHandler)
			r.Get("/bracket/image", bracketHandler.ImageHandler)

			r.Group(func(r chi.Router) {
				r.Use(moderatorOnly...)
				r.Post("/teams", teamHandler.RegisterHandler)
				r.Delete("/teams/{teamID}", teamHandler.DeleteHandler)
				r.Post("/bracket", bracketHandler.GenerateHandler)
				r.Post("/bracket/results", bracketHandler.ReportResultHandler)
				r.Post("/bracket/simulate", bracketHandler.SimulateHandler)
			})
		})
	})
}
