// Package rpc implements the method dispatcher: envelope validation,
// authentication, per-method argument validation and routing to the
// scoring engine, with the short-circuiting error policy of the API.
package rpc

//go:generate mockgen -source=dispatcher.go -destination=mocks/mocks.go -package=mocks Scorer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"scoregate/internal/platform/metrics"
	"scoregate/internal/scoring"
)

// AdminScore is returned for authenticated admin score requests without
// consulting the engine or its cache.
const AdminScore = 42

// Scorer is the business-operation surface the dispatcher routes to.
type Scorer interface {
	Score(ctx context.Context, p scoring.Person) (float64, error)
	Interests(ctx context.Context, clientID int64) ([]string, error)
}

// Config carries the authentication salts. They are injected rather than
// read from ambient state so the verifier stays a pure function.
type Config struct {
	Salt      string
	AdminSalt string
}

// RequestContext is the per-call observability side channel. The dispatcher
// records the number of requested clients and the provided score fields;
// the transport layer logs them alongside the request id.
type RequestContext struct {
	RequestID string
	NClients  int
	Has       []string
}

// Service dispatches validated envelopes to business operations. Safe for
// concurrent use; all per-call state lives on the stack.
type Service struct {
	engine    Scorer
	salt      string
	adminSalt string
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the wall clock for deterministic auth and birthday
// validation in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTracer overrides the default OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// New builds a dispatcher over the given scoring engine.
func New(engine Scorer, cfg Config, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("scoring engine is required")
	}
	s := &Service{
		engine:    engine,
		salt:      cfg.Salt,
		adminSalt: cfg.AdminSalt,
		logger:    slog.Default(),
		tracer:    otel.Tracer("scoregate/rpc"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dispatch runs one request through the validation/auth/routing pipeline
// and returns the response payload with its code. Field-level failures are
// aggregated into a name→reason map; auth and business-rule failures
// short-circuit with the canonical message. Store failures surface as
// internal errors, never as partial results.
func (s *Service) Dispatch(ctx context.Context, body map[string]any, rctx *RequestContext) (any, int) {
	ctx, span := s.tracer.Start(ctx, "rpc.dispatch")
	defer span.End()

	now := s.now()

	env := NewEnvelope(body, now)
	if !env.IsValid() {
		s.logger.Warn("invalid envelope",
			"errors", env.Errors,
			"request_id", rctx.RequestID,
		)
		if s.metrics != nil {
			s.metrics.IncrementValidationFailures()
		}
		return env.Errors, StatusInvalidRequest
	}

	method := env.Method()
	span.SetAttributes(attribute.String("rpc.method", method))

	if !s.checkAuth(env, now) {
		s.logger.Warn("authentication failed",
			"login", env.Login(),
			"request_id", rctx.RequestID,
		)
		if s.metrics != nil {
			s.metrics.IncrementAuthFailures()
		}
		return StatusText[StatusForbidden], StatusForbidden
	}

	switch method {
	case MethodClientsInterests:
		return s.dispatchInterests(ctx, env, rctx, now)
	case MethodOnlineScore:
		return s.dispatchScore(ctx, env, rctx, now)
	}

	s.logger.Warn("unknown method", "method", method, "request_id", rctx.RequestID)
	return StatusText[StatusInvalidRequest], StatusInvalidRequest
}

func (s *Service) dispatchInterests(ctx context.Context, env *Envelope, rctx *RequestContext, now time.Time) (any, int) {
	args := NewInterestsArgs(env.Arguments(), now)
	if !args.IsValid() {
		if s.metrics != nil {
			s.metrics.IncrementValidationFailures()
		}
		return args.Errors, StatusInvalidRequest
	}

	ids := args.ClientIDs()
	rctx.NClients = len(ids)

	// Lookups fan out per id; results land by index so input order and
	// duplicates survive into the response.
	lists := make([][]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			interests, err := s.engine.Interests(gctx, id)
			if err != nil {
				return err
			}
			lists[i] = interests
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("interests lookup failed",
			"error", err,
			"request_id", rctx.RequestID,
		)
		return StatusText[StatusInternalError], StatusInternalError
	}

	response := make(map[int64][]string, len(ids))
	for i, id := range ids {
		response[id] = lists[i]
	}
	return response, StatusOK
}

func (s *Service) dispatchScore(ctx context.Context, env *Envelope, rctx *RequestContext, now time.Time) (any, int) {
	args := NewScoreArgs(env.Arguments(), now)
	if !args.IsValid() {
		if s.metrics != nil {
			s.metrics.IncrementValidationFailures()
		}
		return args.Errors, StatusInvalidRequest
	}
	if !args.HasValidPair() {
		s.logger.Warn("score request lacks a valid attribute pair",
			"request_id", rctx.RequestID,
		)
		return StatusText[StatusInvalidRequest], StatusInvalidRequest
	}

	rctx.Has = args.Provided()

	if env.IsAdmin() {
		return map[string]float64{"score": AdminScore}, StatusOK
	}

	score, err := s.engine.Score(ctx, args.Person())
	if err != nil {
		s.logger.Error("score computation failed",
			"error", err,
			"request_id", rctx.RequestID,
		)
		return StatusText[StatusInternalError], StatusInternalError
	}
	return map[string]float64{"score": score}, StatusOK
}
