package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	adoptactivities "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/activities/adoptions"
)

// RunAdoptionSequence executes the adoption activity exactly once.
func RunAdoptionSequence(ctx workflow.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("adoption sequence started", "petId", input.PetID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}

	var receipt adopttypes.AdoptionReceipt
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), adoptactivities.AdoptPetActivityName, input).Get(ctx, &receipt)
	if err != nil {
		logger.Error("adoption sequence failed", "petId", input.PetID, "error", err)
		return nil, err
	}
	logger.Info("adoption sequence committed", "petId", input.PetID, "adoptionId", receipt.AdoptionID)
	return &receipt, nil
}
