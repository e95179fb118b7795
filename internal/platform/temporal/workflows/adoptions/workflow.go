package adoptions

import (
	"go.temporal.io/sdk/workflow"

	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/sequences"
)

const (
	// AdoptionTaskQueue is the task queue served by the adoption worker.
	AdoptionTaskQueue = "PET_ADOPTION"
	// AdoptionWorkflowName is the registered name of AdoptionWorkflow.
	AdoptionWorkflowName = "adoptions.workflows.Adoption"
)

// AdoptionWorkflowInput wraps the command with the trace id of the caller.
type AdoptionWorkflowInput struct {
	Command adopttypes.AdoptInput
	TraceID string
}

// AdoptionWorkflow records one adoption.
func AdoptionWorkflow(ctx workflow.Context, input AdoptionWorkflowInput) (*adopttypes.AdoptionReceipt, error) {
	workflow.GetLogger(ctx).Info("adoption workflow started", "petId", input.Command.PetID, "traceId", input.TraceID)
	return sequences.RunAdoptionSequence(ctx, input.Command)
}
