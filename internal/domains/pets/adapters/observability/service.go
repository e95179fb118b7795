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

	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

const tracerName = "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/observability/service"

// Service instruments the pet catalog. Only writes are logged at info; reads get spans and counters.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics catalogMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

// WithMeter registers the catalog counters on m.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newCatalogMetrics(m) }
}

// New wraps inner. Missing tracer or logger options fall back to no-op implementations.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
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

func (s *Service) AddPet(ctx context.Context, input pettypes.AddPetInput) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.AddPet", trace.WithAttributes(attribute.String("pet.breed", input.Breed)))
	defer span.End()

	id, err := s.inner.AddPet(ctx, input)
	if err != nil {
		return 0, s.fail(ctx, span, err, "pet rejected", slog.String("pet.name", input.Name))
	}
	span.SetAttributes(attribute.Int64("pet.id", id))
	s.metrics.created.add(ctx, attribute.String("pet.breed", input.Breed))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "pet listed for adoption",
		slog.Int64("pet.id", id),
		slog.String("pet.name", input.Name),
	)
	return id, nil
}

func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*domain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.GetByID", trace.WithAttributes(attribute.Int64("pet.id", input.ID)))
	defer span.End()

	pet, err := s.inner.GetByID(ctx, input)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		// A miss is an answer, not a fault; keep the span status clean.
		s.metrics.lookups.add(ctx, attribute.String("result", "miss"))
		return nil, err
	case err != nil:
		return nil, s.fail(ctx, span, err, "pet lookup failed", slog.Int64("pet.id", input.ID))
	}
	s.metrics.lookups.add(ctx, attribute.String("result", "hit"))
	span.SetAttributes(attribute.String("pet.status", string(pet.Status)))
	return pet, nil
}

func (s *Service) ListAvailable(ctx context.Context) ([]*domain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.ListAvailable")
	defer span.End()

	pets, err := s.inner.ListAvailable(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "listing available pets failed")
	}
	span.SetAttributes(attribute.Int("pet.available.count", len(pets)))
	return pets, nil
}

func (s *Service) Delete(ctx context.Context, input pettypes.PetIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "Catalog.Delete", trace.WithAttributes(attribute.Int64("pet.id", input.ID)))
	defer span.End()

	if err := s.inner.Delete(ctx, input); err != nil {
		return s.fail(ctx, span, err, "pet removal failed", slog.Int64("pet.id", input.ID))
	}
	s.metrics.deleted.add(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "pet removed with its adoptions", slog.Int64("pet.id", input.ID))
	return nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

type counter struct {
	c metric.Int64Counter
}

func (c counter) add(ctx context.Context, attrs ...attribute.KeyValue) {
	if c.c != nil {
		c.c.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

type catalogMetrics struct {
	created counter
	deleted counter
	lookups counter
}

func newCatalogMetrics(m metric.Meter) catalogMetrics {
	if m == nil {
		return catalogMetrics{}
	}
	created, _ := m.Int64Counter("pets.service.created", metric.WithDescription("Pets listed for adoption"))
	deleted, _ := m.Int64Counter("pets.service.deleted", metric.WithDescription("Pets removed from the catalog"))
	lookups, _ := m.Int64Counter("pets.service.lookups", metric.WithDescription("Single-pet lookups by result"))
	return catalogMetrics{created: counter{created}, deleted: counter{deleted}, lookups: counter{lookups}}
}

var _ ports.Service = (*Service)(nil)
