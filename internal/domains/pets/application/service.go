package application

import (
	"context"

	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

// Service orchestrates the pet catalog use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the pets service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// AddPet validates and stores a new available pet, returning its generated id.
func (s *Service) AddPet(ctx context.Context, input pettypes.AddPetInput) (int64, error) {
	if input.Age == nil {
		return 0, mapError(ErrMissingAge)
	}
	pet, err := domain.NewPet(input.Name, input.Breed, *input.Age, input.Description, input.ImageURL)
	if err != nil {
		return 0, mapError(err)
	}
	id, err := s.repo.Insert(ctx, pet)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// GetByID loads a single pet regardless of its status.
func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*domain.Pet, error) {
	if err := domain.ValidateID(input.ID); err != nil {
		return nil, mapError(err)
	}
	pet, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return pet, nil
}

// ListAvailable returns pets still open for adoption, lowest id first.
func (s *Service) ListAvailable(ctx context.Context) ([]*domain.Pet, error) {
	pets, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if pets == nil {
		pets = []*domain.Pet{}
	}
	return pets, nil
}

// Delete removes a pet; its adoptions go with it.
func (s *Service) Delete(ctx context.Context, input pettypes.PetIdentifier) error {
	if err := domain.ValidateID(input.ID); err != nil {
		return mapError(err)
	}
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
