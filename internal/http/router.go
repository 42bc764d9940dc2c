package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/league-stats-service/internal/http/handlers"
	"github.com/preston-bernstein/league-stats-service/internal/http/middleware"
	"github.com/preston-bernstein/league-stats-service/internal/metrics"
)

// NewRouter registers HTTP routes. ws, when non-nil, serves the league event stream.
func NewRouter(handler *handlers.Handler, ws nethttp.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)

	r.HandleFunc("/leagues", handler.ListLeagues).Methods(nethttp.MethodGet)
	r.HandleFunc("/leagues", handler.CreateLeague).Methods(nethttp.MethodPost)
	r.HandleFunc("/leagues/{id}", handler.GetLeague).Methods(nethttp.MethodGet)
	r.HandleFunc("/leagues/{id}", handler.DeleteLeague).Methods(nethttp.MethodDelete)
	r.HandleFunc("/leagues/{id}/complete", handler.CompleteLeague).Methods(nethttp.MethodPost)
	r.HandleFunc("/leagues/{id}/matches", handler.UploadMatches).Methods(nethttp.MethodPost)
	r.HandleFunc("/leagues/{id}/standings", handler.LeagueStandings).Methods(nethttp.MethodGet)
	r.HandleFunc("/leagues/{id}/form", handler.LeagueForm).Methods(nethttp.MethodGet)

	r.HandleFunc("/h2h", handler.HeadToHead).Methods(nethttp.MethodGet)
	r.HandleFunc("/team-stats", handler.TeamStats).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams", handler.Teams).Methods(nethttp.MethodGet)
	r.HandleFunc("/predictions", handler.Predictions).Methods(nethttp.MethodPost)

	if ws != nil {
		r.Handle("/ws/leagues", ws).Methods(nethttp.MethodGet)
	}

	r.NotFoundHandler = nethttp.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(handler.MethodNotAllowed)
	return r
}

// Wrap applies the middleware stack: request logging outermost, then panic recovery and CORS.
func Wrap(next nethttp.Handler, logger *slog.Logger, recorder *metrics.Recorder, corsOrigin string) nethttp.Handler {
	return middleware.LoggingMiddleware(logger, recorder,
		middleware.Recovery(logger,
			middleware.CORS(corsOrigin, next)))
}
