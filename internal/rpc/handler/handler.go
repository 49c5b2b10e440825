// Package handler is the thin HTTP layer over the method dispatcher. It
// owns JSON decoding, the response envelope and routing; everything with
// design content lives in the rpc package.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scoregate/internal/platform/health"
	"scoregate/internal/platform/metrics"
	"scoregate/internal/platform/middleware"
	"scoregate/internal/rpc"
)

// Handler serves the single RPC endpoint.
type Handler struct {
	service *rpc.Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// New builds a Handler over the dispatcher.
func New(service *rpc.Service, opts ...Option) (*Handler, error) {
	if service == nil {
		return nil, fmt.Errorf("rpc service is required")
	}
	h := &Handler{service: service, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// HandleMethod decodes the request body, dispatches it and writes the
// response envelope. The HTTP status always mirrors the envelope code.
func (h *Handler) HandleMethod(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("malformed request body",
			"error", err,
			"request_id", requestID,
		)
		h.writeEnvelope(w, rpc.StatusBadRequest, rpc.StatusText[rpc.StatusBadRequest])
		h.observe(rpc.StatusBadRequest, start)
		return
	}

	rctx := rpc.RequestContext{RequestID: requestID}
	payload, code := h.service.Dispatch(r.Context(), body, &rctx)

	h.logger.Info("method dispatched",
		"request_id", requestID,
		"code", code,
		"nclients", rctx.NClients,
		"has", rctx.Has,
	)

	h.writeEnvelope(w, code, payload)
	h.observe(code, start)
}

func (h *Handler) writeEnvelope(w http.ResponseWriter, code int, payload any) {
	var envelope map[string]any
	if code == rpc.StatusOK {
		envelope = map[string]any{"response": payload, "code": code}
	} else {
		if payload == nil {
			payload = rpc.StatusText[code]
		}
		envelope = map[string]any{"error": payload, "code": code}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) observe(code int, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.IncrementRequests(strconv.Itoa(code))
	h.metrics.ObserveDispatchLatency(time.Since(start).Seconds())
}

// NewRouter wires the RPC endpoint with middleware, plus health and
// metrics surfaces when provided. Unknown routes return the JSON 404
// envelope.
func NewRouter(h *Handler, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Post("/method", h.HandleMethod)

	if healthHandler != nil {
		healthHandler.Register(r)
		r.Handle("/metrics", promhttp.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		h.writeEnvelope(w, rpc.StatusNotFound, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		h.writeEnvelope(w, rpc.StatusNotFound, nil)
	})

	return r
}
