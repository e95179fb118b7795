package observability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
)

type stubService struct {
	adoptErr error
}

func (s *stubService) Adopt(_ context.Context, in adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error) {
	if s.adoptErr != nil {
		return nil, s.adoptErr
	}
	return &adopttypes.AdoptionReceipt{AdoptionID: 9, PetID: in.PetID}, nil
}

func (s *stubService) MarkAdopted(context.Context, adopttypes.MarkAdoptedInput) error { return nil }

func (s *stubService) ListAdopted(context.Context) ([]*domain.AdoptedPet, error) {
	return []*domain.AdoptedPet{}, nil
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestService_AdoptRecordsSpanAndCounters(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	inner := &stubService{}
	svc := New(inner, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))

	receipt, err := svc.Adopt(context.Background(), adopttypes.AdoptInput{PetID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(9), receipt.AdoptionID)
	assert.Equal(t, int64(1), counterValue(t, reader, "adoptions.service.completed"))

	inner.adoptErr = fmt.Errorf("%w: %w", application.ErrTransactionFailed, errors.New("boom"))
	_, err = svc.Adopt(context.Background(), adopttypes.AdoptInput{PetID: 3})
	require.ErrorIs(t, err, application.ErrTransactionFailed)
	assert.Equal(t, int64(1), counterValue(t, reader, "adoptions.service.failed"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "Service.Adopt", spans[1].Name())
	assert.Equal(t, otelcodes.Error, spans[1].Status().Code)
}

func TestService_MarkAdoptedCounts(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	svc := New(&stubService{}, WithMeter(mp.Meter("test")), WithLogger(nil))

	require.NoError(t, svc.MarkAdopted(context.Background(), adopttypes.MarkAdoptedInput{PetID: 1}))
	assert.Equal(t, int64(1), counterValue(t, reader, "adoptions.service.marked"))
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "invalid_input", failureReason(application.ErrInvalidInput))
	assert.Equal(t, "already_adopted", failureReason(application.ErrPetAlreadyAdopted))
	assert.Equal(t, "unknown", failureReason(errors.New("x")))
}
