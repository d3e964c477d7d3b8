// Package jobs serves compute job submission and tracking.
package jobs

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kilianp07/fleetcompute/api/middleware"
	"github.com/kilianp07/fleetcompute/api/respond"
	corejobs "github.com/kilianp07/fleetcompute/core/jobs"
	"github.com/kilianp07/fleetcompute/core/logger"
)

// Handler exposes the job service. Every route expects middleware.Bearer
// to have run.
type Handler struct {
	svc *corejobs.Service
	log logger.Logger
}

func NewHandler(svc *corejobs.Service, log logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the job routes on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/jobs", h.List).Methods(http.MethodGet)
	r.HandleFunc("/jobs", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/jobs/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
}

func scope(r *http.Request) (corejobs.Scope, bool) {
	c, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return corejobs.Scope{}, false
	}
	return corejobs.Scope{Company: c.Company, Admin: c.Admin()}, true
}

// List handles GET /jobs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := scope(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}
	views, err := h.svc.List(r.Context(), sc)
	if err != nil {
		h.log.Errorf("list jobs: %v", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, views)
}

// Create handles POST /jobs.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sc, ok := scope(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}
	var req corejobs.Request
	if r.Body != nil {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respond.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}
	view, err := h.svc.Create(r.Context(), sc.Company, req)
	switch {
	case errors.Is(err, corejobs.ErrInvalidJob):
		respond.Error(w, http.StatusBadRequest, "name and model_type required")
		return
	case err != nil:
		h.log.Errorf("create job: %v", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusCreated, view)
}

// Get handles GET /jobs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sc, ok := scope(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Job not found")
		return
	}
	view, err := h.svc.Get(r.Context(), id, sc)
	switch {
	case errors.Is(err, corejobs.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "Job not found")
		return
	case err != nil:
		h.log.Errorf("get job %d: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, view)
}
