package ports

import (
	"context"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
)

// Tx exposes the writes that make up one adoption unit. All calls share a single transaction.
type Tx interface {
	// PetStatus reads the current status of a pet, locking the row where the backend supports it.
	PetStatus(ctx context.Context, petID int64) (petdomain.Status, error)
	InsertAdoption(ctx context.Context, adoption *domain.Adoption) (int64, error)
	// SetPetStatus returns the catalog's ErrNotFound when no row was updated.
	SetPetStatus(ctx context.Context, petID int64, status petdomain.Status) error
}

// Store persists adoptions and reads the adopted-pets report.
type Store interface {
	// WithinTransaction runs fn in a transaction that commits when fn returns nil
	// and rolls back on error or panic.
	WithinTransaction(ctx context.Context, fn func(tx Tx) error) error
	ListAdopted(ctx context.Context) ([]*domain.AdoptedPet, error)
}
