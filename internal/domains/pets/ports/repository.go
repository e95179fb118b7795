package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
)

var ErrNotFound = errors.New("pet not found")

// Repository is the pet catalog store (driven port).
type Repository interface {
	Insert(ctx context.Context, pet *domain.Pet) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	ListAvailable(ctx context.Context) ([]*domain.Pet, error)
	// SetStatus returns ErrNotFound when no row matched id.
	SetStatus(ctx context.Context, id int64, status domain.Status) error
	// Delete removes the pet together with its adoptions.
	Delete(ctx context.Context, id int64) error
}
