package ports

import (
	"context"

	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	AddPet(ctx context.Context, input pettypes.AddPetInput) (int64, error)
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*domain.Pet, error)
	ListAvailable(ctx context.Context) ([]*domain.Pet, error)
	Delete(ctx context.Context, input pettypes.PetIdentifier) error
}
