package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	adoptactivities "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/activities/adoptions"
	adoptworkflows "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/workflows/adoptions"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalAdoptionWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineAdoptionWorkflows)(nil)
)

// TemporalAdoptionWorkflows runs adoptions on a Temporal cluster.
type TemporalAdoptionWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalAdoptionWorkflows wires a Temporal client into the orchestrator.
func NewTemporalAdoptionWorkflows(c client.Client) *TemporalAdoptionWorkflows {
	return &TemporalAdoptionWorkflows{client: c, taskQueue: adoptworkflows.AdoptionTaskQueue}
}

// Adopt validates locally, then executes the adoption workflow and waits for its result.
func (o *TemporalAdoptionWorkflows) Adopt(ctx context.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal adoption workflows not configured")
	}
	adoption, err := domain.NewAdoption(input.PetID, domain.Contact{
		AdopterName: input.AdopterName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := adoptionWorkflowID(input.PetID, traceComponent, adoption.Contact)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		adoptworkflows.AdoptionWorkflowName,
		adoptworkflows.AdoptionWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		// A retried request inside the same trace reuses the run that is already in flight.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, fmt.Errorf("%w: %w", application.ErrTransactionFailed, err)
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var receipt adopttypes.AdoptionReceipt
	if err := run.Get(ctx, &receipt); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &receipt, nil
}

// mapWorkflowError restores the application sentinels from the activity's error type.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		switch appErr.Type() {
		case adoptactivities.ErrTypeInvalidInput:
			return fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
		case adoptactivities.ErrTypePetAlreadyAdopted:
			return fmt.Errorf("%w: %w", application.ErrPetAlreadyAdopted, err)
		}
	}
	// A timed out activity may have committed before the worker gave up.
	var timeoutErr *temporal.TimeoutError
	if errors.As(err, &timeoutErr) {
		return fmt.Errorf("%w: %w", application.ErrOutcomeUnknown, err)
	}
	return fmt.Errorf("%w: %w", application.ErrTransactionFailed, err)
}

// adoptionWorkflowID keys a run by pet, trace and adopter, so a reused trace
// context only deduplicates identical requests.
func adoptionWorkflowID(petID int64, traceComponent string, contact domain.Contact) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		contact.AdopterName,
		strings.ToLower(contact.Email),
		contact.Phone,
		contact.Address,
	}, "\x00")))
	return fmt.Sprintf("adoption-%d-%s-%s", petID, traceComponent, hex.EncodeToString(sum[:8]))
}

// InlineAdoptionWorkflows executes the service directly without Temporal.
type InlineAdoptionWorkflows struct {
	service ports.Service
}

// NewInlineAdoptionWorkflows wraps the adoption service for synchronous execution.
func NewInlineAdoptionWorkflows(service ports.Service) *InlineAdoptionWorkflows {
	return &InlineAdoptionWorkflows{service: service}
}

// Adopt delegates to the application service.
func (o *InlineAdoptionWorkflows) Adopt(ctx context.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline adoption workflows not configured")
	}
	return o.service.Adopt(ctx, input)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
