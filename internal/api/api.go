// Package api provides the HTTP surface of the recovery service.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/amWRit/TFN-CONNECT-sub001/internal/metrics"
	"github.com/amWRit/TFN-CONNECT-sub001/internal/middleware"
	"github.com/amWRit/TFN-CONNECT-sub001/internal/recovery"
)

// maxBodyBytes bounds the recovery request body. The payload is five short
// strings; anything bigger is not a legitimate request.
const maxBodyBytes = 16 << 10

// LogAllowlist names the only request/response fields debug logging may
// show in clear. Everything else in a recovery body is a secret.
var LogAllowlist = []string{"email", "success", "step", "restored", "error", "message"}

// Pinger is the readiness slice of the account store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the recovery endpoint and the operational endpoints.
type Handler struct {
	service *recovery.Service
	store   Pinger
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler around the verification pipeline.
func NewHandler(service *recovery.Service, store Pinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// NewRouter creates the service router with all routes and middleware.
func (h *Handler) NewRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.MaxBodySize(maxBodyBytes))
	r.Use(middleware.HTTPLogging(h.logger, LogAllowlist))

	// Public operational endpoints
	r.Get("/health", h.HandleHealth)
	r.Get("/ready", h.HandleReady)

	// The privilege-restoration endpoint
	r.Post("/api/recovery/super-admin", h.HandleRecover)

	return r
}

// HandleRecover runs one pass of the verification pipeline.
// POST /api/recovery/super-admin
func (h *Handler) HandleRecover(w http.ResponseWriter, r *http.Request) {
	var req recovery.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordAttempt(recovery.PhaseMalformed.String(), recovery.ErrMalformedRequest.Error())
		WriteError(w, http.StatusBadRequest, recovery.ErrMalformedRequest.Error())
		return
	}

	phase := recovery.Classify(&req)

	result, err := h.service.Verify(r.Context(), &req)
	if err != nil {
		reason := reasonFor(err)
		metrics.RecordAttempt(phase.String(), reason)
		if reason == ReasonInternalError {
			// Storage or other unexpected failure; the envelope stays opaque.
			h.logger.Error("recovery_internal_error", "request_id", middleware.GetRequestID(r.Context()), "error", err)
		}
		WriteError(w, statusFor(err), reason)
		return
	}

	metrics.RecordAttempt(phase.String(), "success")

	if result.Restored != "" {
		writeJSON(w, http.StatusOK, Response{Success: true, Restored: result.Restored})
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Step: result.Step})
}
