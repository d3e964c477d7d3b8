package app

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/kilianp07/fleetcompute/api/economics"
	"github.com/kilianp07/fleetcompute/api/ercot"
	"github.com/kilianp07/fleetcompute/api/fleet"
	apijobs "github.com/kilianp07/fleetcompute/api/jobs"
	"github.com/kilianp07/fleetcompute/api/middleware"
	"github.com/kilianp07/fleetcompute/api/respond"
	"github.com/kilianp07/fleetcompute/api/session"
	"github.com/kilianp07/fleetcompute/api/stream"
	"github.com/kilianp07/fleetcompute/auth"
	corejobs "github.com/kilianp07/fleetcompute/core/jobs"
	"github.com/kilianp07/fleetcompute/infra/logger"
)

// RouterDeps are the collaborators of the HTTP API.
type RouterDeps struct {
	Jobs           *corejobs.Service
	Users          session.Authenticator
	Tokens         *auth.Issuer
	Now            respond.Clock
	StreamInterval time.Duration
	CORSOrigins    []string
	Metrics        *middleware.HTTPMetrics
	Log            *logger.ZerologLogger
}

// NewRouter builds the API router wrapped in CORS handling.
func NewRouter(d RouterDeps) http.Handler {
	if d.Now == nil {
		d.Now = respond.UTCNow
	}
	r := mux.NewRouter()
	r.NotFoundHandler = respond.NotFound()
	r.MethodNotAllowedHandler = respond.MethodNotAllowed()
	r.Use(middleware.RequestID, middleware.AccessLog(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.Recover(d.Log))

	r.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})).Methods(http.MethodGet)
	r.Handle("/auth/login", session.NewLoginHandler(d.Users, d.Tokens, d.Log)).Methods(http.MethodPost)
	r.Handle("/ercot/current", ercot.NewCurrentHandler(d.Now)).Methods(http.MethodGet)
	r.Handle("/ercot/history", ercot.NewHistoryHandler(d.Now)).Methods(http.MethodGet)
	r.Handle("/ercot/stats", ercot.NewStatsHandler(d.Now)).Methods(http.MethodGet)
	r.Handle("/fleet/vehicles", fleet.NewVehiclesHandler(d.Now)).Methods(http.MethodGet)
	r.Handle("/fleet/hubs", fleet.NewHubsHandler()).Methods(http.MethodGet)
	r.Handle("/economics/summary", economics.NewSummaryHandler(d.Now)).Methods(http.MethodGet)
	r.Handle("/ws/ercot", stream.NewPriceStream(d.Now, d.StreamInterval, d.CORSOrigins, d.Log)).Methods(http.MethodGet)

	secured := r.NewRoute().Subrouter()
	secured.Use(middleware.Bearer(d.Tokens))
	apijobs.NewHandler(d.Jobs, d.Log).Register(secured)

	return handlers.CORS(
		handlers.AllowedOrigins(d.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(r)
}
