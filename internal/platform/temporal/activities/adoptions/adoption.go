package adoptions

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

const (
	// AdoptPetActivityName runs the transactional adoption unit.
	AdoptPetActivityName = "adoptions.activities.AdoptPet"

	// Application error types carried across the workflow boundary.
	ErrTypeInvalidInput      = "InvalidInput"
	ErrTypePetAlreadyAdopted = "PetAlreadyAdopted"
	ErrTypeTransactionFailed = "TransactionFailed"
)

// Activities groups activities that operate on the adoptions bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the adoption service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// AdoptPet records the adoption and marks the pet adopted. Failures are never retried.
func (a *Activities) AdoptPet(ctx context.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("adopt activity not initialized", "petId", input.PetID)
		return nil, temporal.NewNonRetryableApplicationError("adopt activity not initialized", ErrTypeTransactionFailed, nil)
	}
	logger.Info("AdoptPet activity started", "petId", input.PetID)
	receipt, err := a.service.Adopt(ctx, input)
	if err != nil {
		logger.Error("AdoptPet activity failed", "petId", input.PetID, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("AdoptPet activity completed", "petId", input.PetID, "adoptionId", receipt.AdoptionID)
	return receipt, nil
}

func toApplicationError(err error) error {
	errType := ErrTypeTransactionFailed
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		errType = ErrTypeInvalidInput
	case errors.Is(err, application.ErrPetAlreadyAdopted):
		errType = ErrTypePetAlreadyAdopted
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), errType, err)
}
