package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

const tracerName = "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoption port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Adopt runs the transactional adoption with instrumentation.
func (s *Service) Adopt(ctx context.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Adopt", trace.WithAttributes(attribute.Int64("pet.id", input.PetID)))
	defer span.End()

	s.logger.LogAttrs(ctx, slog.LevelInfo, "adopting pet", slog.Int64("pet.id", input.PetID))
	receipt, err := s.inner.Adopt(ctx, input)
	if err != nil {
		s.metrics.recordFailed(ctx, failureReason(err))
		return nil, s.handleError(ctx, span, err, "adoption failed", slog.Int64("pet.id", input.PetID))
	}
	span.SetAttributes(attribute.Int64("adoption.id", receipt.AdoptionID))
	s.metrics.recordCompleted(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "pet adopted",
		slog.Int64("pet.id", receipt.PetID),
		slog.Int64("adoption.id", receipt.AdoptionID),
	)
	return receipt, nil
}

// MarkAdopted flips a pet to adopted with instrumentation.
func (s *Service) MarkAdopted(ctx context.Context, input adopttypes.MarkAdoptedInput) error {
	ctx, span := s.tracer.Start(ctx, "Service.MarkAdopted", trace.WithAttributes(attribute.Int64("pet.id", input.PetID)))
	defer span.End()

	if err := s.inner.MarkAdopted(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to mark pet adopted", slog.Int64("pet.id", input.PetID))
	}
	s.metrics.recordMarked(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "pet marked adopted", slog.Int64("pet.id", input.PetID))
	return nil
}

// ListAdopted reads the adoption report.
func (s *Service) ListAdopted(ctx context.Context) ([]*domain.AdoptedPet, error) {
	ctx, span := s.tracer.Start(ctx, "Service.ListAdopted")
	defer span.End()

	rows, err := s.inner.ListAdopted(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adopted pets")
	}
	span.SetAttributes(attribute.Int("adoption.result.count", len(rows)))
	return rows, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, application.ErrPetAlreadyAdopted):
		return "already_adopted"
	case errors.Is(err, application.ErrTransactionFailed):
		return "transaction_failed"
	default:
		return "unknown"
	}
}

type serviceMetrics struct {
	completed metric.Int64Counter
	failed    metric.Int64Counter
	marked    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	completed, _ := m.Int64Counter("adoptions.service.completed", metric.WithDescription("Number of committed adoptions"))
	failed, _ := m.Int64Counter("adoptions.service.failed", metric.WithDescription("Number of adoptions that did not commit"))
	marked, _ := m.Int64Counter("adoptions.service.marked", metric.WithDescription("Number of pets marked adopted without a record"))
	return serviceMetrics{completed: completed, failed: failed, marked: marked}
}

func (m serviceMetrics) recordCompleted(ctx context.Context) {
	if m.completed != nil {
		m.completed.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordFailed(ctx context.Context, reason string) {
	if m.failed != nil {
		m.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func (m serviceMetrics) recordMarked(ctx context.Context) {
	if m.marked != nil {
		m.marked.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
