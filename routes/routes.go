package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/piotronm/tourney-backend-sub001/handlers"
	"github.com/piotronm/tourney-backend-sub001/middleware"
	"github.com/piotronm/tourney-backend-sub001/models"
)

// SetupRoutes mounts every handler on the router. Read endpoints are
// public; anything that mutates state requires an authenticated
// organizer.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	divisionHandler *handlers.DivisionHandler,
	teamHandler *handlers.TeamHandler,
	scheduleHandler *handlers.ScheduleHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	exportHandler *handlers.ExportHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Post("/auth/register", authHandler.RegisterHandler)
	router.Post("/auth/login", authHandler.LoginHandler)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)

		r.Route("/{tournamentID}/divisions", func(r chi.Router) {
			r.Get("/", divisionHandler.ListHandler)
			r.Get("/{divisionID}", divisionHandler.GetByIDHandler)
			r.Get("/{divisionID}/schedule", scheduleHandler.GetHandler)
			r.Get("/{divisionID}/standings", standingsHandler.GetHandler)
			r.Get("/{divisionID}/schedule/export", exportHandler.ScheduleHandler)
			r.Get("/{divisionID}/standings/export", exportHandler.StandingsHandler)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(middleware.RequireRole(models.RoleOrganizer))

				r.Post("/", divisionHandler.CreateHandler)
				r.Delete("/{divisionID}", divisionHandler.DeleteHandler)
				r.Post("/{divisionID}/schedule", scheduleHandler.GenerateHandler)
				r.Post("/{divisionID}/schedule/export", exportHandler.PublishScheduleHandler)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.RequireRole(models.RoleOrganizer))

			r.Post("/", tournamentHandler.CreateHandler)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatusHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
		})
	})

	router.Route("/divisions/{divisionID}", func(r chi.Router) {
		r.Get("/teams", teamHandler.ListHandler)
		r.Get("/matches", matchHandler.ListByDivisionHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.RequireRole(models.RoleOrganizer))

			r.Post("/teams", teamHandler.CreateHandler)
		})
	})

	router.Route("/teams/{teamID}", func(r chi.Router) {
		r.Get("/", teamHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.RequireRole(models.RoleOrganizer))

			r.Put("/", teamHandler.UpdateHandler)
			r.Delete("/", teamHandler.DeleteHandler)
		})
	})

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Get("/", matchHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.RequireRole(models.RoleOrganizer))

			r.Patch("/result", matchHandler.ReportScoreHandler)
		})
	})

	router.Get("/ws/divisions/{divisionID}", webSocketHandler.ServeWs)
}
