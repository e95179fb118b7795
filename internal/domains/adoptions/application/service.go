package application

import (
	"context"
	"time"

	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

// Service orchestrates the adoption use cases.
type Service struct {
	store  ports.Store
	pets   petports.Repository
	now    func() time.Time
	policy Policy
}

// Option configures the adoption service.
type Option func(*Service)

// WithClock overrides the time source used for adoption dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPolicy selects how adoptions of already adopted pets are handled.
func WithPolicy(p Policy) Option {
	return func(s *Service) {
		if p != "" {
			s.policy = p
		}
	}
}

// NewService wires the adoption service. The pet repository backs MarkAdopted.
func NewService(store ports.Store, pets petports.Repository, opts ...Option) *Service {
	s := &Service{
		store:  store,
		pets:   pets,
		now:    time.Now,
		policy: AllowReadoption,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Adopt records the adoption and marks the pet adopted as one atomic unit.
func (s *Service) Adopt(ctx context.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error) {
	adoption, err := domain.NewAdoption(input.PetID, domain.Contact{
		AdopterName: input.AdopterName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}, s.now())
	if err != nil {
		return nil, mapAdoptError(err)
	}

	err = s.store.WithinTransaction(ctx, func(tx ports.Tx) error {
		if s.policy == RejectAdopted {
			status, err := tx.PetStatus(ctx, adoption.PetID)
			if err != nil {
				return err
			}
			if status == petdomain.StatusAdopted {
				return ErrPetAlreadyAdopted
			}
		}
		id, err := tx.InsertAdoption(ctx, adoption)
		if err != nil {
			return err
		}
		adoption.ID = id
		return tx.SetPetStatus(ctx, adoption.PetID, petdomain.StatusAdopted)
	})
	if err != nil {
		return nil, mapAdoptError(err)
	}

	return &adopttypes.AdoptionReceipt{
		AdoptionID:   adoption.ID,
		PetID:        adoption.PetID,
		AdoptionDate: adoption.AdoptionDate,
	}, nil
}

// MarkAdopted flips the pet status without creating an adoption record.
func (s *Service) MarkAdopted(ctx context.Context, input adopttypes.MarkAdoptedInput) error {
	if err := domain.ValidatePetID(input.PetID); err != nil {
		return mapError(err)
	}
	return mapError(s.pets.SetStatus(ctx, input.PetID, petdomain.StatusAdopted))
}

// ListAdopted returns the adoption report, most recent first.
func (s *Service) ListAdopted(ctx context.Context) ([]*domain.AdoptedPet, error) {
	rows, err := s.store.ListAdopted(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if rows == nil {
		rows = []*domain.AdoptedPet{}
	}
	return rows, nil
}

var _ ports.Service = (*Service)(nil)
