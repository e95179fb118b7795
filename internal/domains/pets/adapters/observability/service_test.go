package observability

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application"
	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

type stubCatalog struct {
	pets map[int64]*domain.Pet
	err  error
}

func (s *stubCatalog) AddPet(_ context.Context, in pettypes.AddPetInput) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return 11, nil
}

func (s *stubCatalog) GetByID(_ context.Context, in pettypes.PetIdentifier) (*domain.Pet, error) {
	if s.err != nil {
		return nil, s.err
	}
	if pet, ok := s.pets[in.ID]; ok {
		return pet, nil
	}
	return nil, ports.ErrNotFound
}

func (s *stubCatalog) ListAvailable(context.Context) ([]*domain.Pet, error) {
	return []*domain.Pet{}, s.err
}

func (s *stubCatalog) Delete(context.Context, pettypes.PetIdentifier) error { return s.err }

func sumCounter(t *testing.T, reader *sdkmetric.ManualReader, name, key, value string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if key != "" {
					if v, ok := dp.Attributes.Value(attribute.Key(key)); !ok || v.AsString() != value {
						continue
					}
				}
				total += dp.Value
			}
		}
	}
	return total
}

func TestService_AddPetCountsAndLogs(t *testing.T) {
	var logs bytes.Buffer
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	svc := New(&stubCatalog{},
		WithMeter(mp.Meter("test")),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)

	id, err := svc.AddPet(context.Background(), pettypes.AddPetInput{Name: "Rex", Breed: "Beagle"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, int64(1), sumCounter(t, reader, "pets.service.created", "pet.breed", "Beagle"))
	assert.Contains(t, logs.String(), "pet listed for adoption")
}

func TestService_LookupMissIsNotASpanError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	pet := &domain.Pet{ID: 4, Name: "Rex", Status: domain.StatusAvailable}
	svc := New(&stubCatalog{pets: map[int64]*domain.Pet{4: pet}}, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))

	_, err := svc.GetByID(context.Background(), pettypes.PetIdentifier{ID: 4})
	require.NoError(t, err)
	_, err = svc.GetByID(context.Background(), pettypes.PetIdentifier{ID: 5})
	require.ErrorIs(t, err, ports.ErrNotFound)

	assert.Equal(t, int64(1), sumCounter(t, reader, "pets.service.lookups", "result", "hit"))
	assert.Equal(t, int64(1), sumCounter(t, reader, "pets.service.lookups", "result", "miss"))
	for _, span := range recorder.Ended() {
		assert.NotEqual(t, otelcodes.Error, span.Status().Code, span.Name())
	}
}

func TestService_StoreFailureMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var logs bytes.Buffer
	inner := &stubCatalog{err: fmt.Errorf("%w: %w", application.ErrStoreUnavailable, errors.New("connection reset"))}
	svc := New(inner, WithTracer(tp.Tracer("test")), WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))

	err := svc.Delete(context.Background(), pettypes.PetIdentifier{ID: 3})
	require.ErrorIs(t, err, application.ErrStoreUnavailable)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Catalog.Delete", spans[0].Name())
	assert.Equal(t, otelcodes.Error, spans[0].Status().Code)
	assert.Contains(t, logs.String(), "connection reset")
}

func TestNew_DefaultsAreSafe(t *testing.T) {
	svc := New(&stubCatalog{}, nil)
	pets, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pets)
}
