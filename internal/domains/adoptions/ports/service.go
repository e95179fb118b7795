package ports

import (
	"context"

	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
)

// Service exposes the adoption use cases to adapters.
type Service interface {
	Adopt(ctx context.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error)
	MarkAdopted(ctx context.Context, input adopttypes.MarkAdoptedInput) error
	ListAdopted(ctx context.Context) ([]*domain.AdoptedPet, error)
}

// WorkflowOrchestrator runs the adoption unit either inline or on a workflow engine.
type WorkflowOrchestrator interface {
	Adopt(ctx context.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error)
}
