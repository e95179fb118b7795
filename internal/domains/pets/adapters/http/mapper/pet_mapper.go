package mapper

import (
	"time"

	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/jsonnum"
)

// AddPetRequest is the inbound payload of POST /api/add-pet. Age may be a number or a numeric string.
type AddPetRequest struct {
	Name        string          `json:"name"`
	Breed       string          `json:"breed"`
	Age         jsonnum.FlexInt `json:"age"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
}

// AddPetResponse acknowledges a stored pet.
type AddPetResponse struct {
	Success bool  `json:"success"`
	PetID   int64 `json:"pet_id"`
}

// Pet is the HTTP representation of a catalog entry.
type Pet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToAddPetInput maps the transport payload into the application command.
func ToAddPetInput(req AddPetRequest) pettypes.AddPetInput {
	return pettypes.AddPetInput{
		Name:        req.Name,
		Breed:       req.Breed,
		Age:         req.Age.IntPtr(),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}

// FromDomain maps a pet aggregate to its HTTP representation.
func FromDomain(p *domain.Pet) Pet {
	if p == nil {
		return Pet{}
	}
	return Pet{
		ID:          p.ID,
		Name:        p.Name,
		Breed:       p.Breed,
		Age:         p.Age,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

// FromDomainList maps a list of pets; the result is never nil.
func FromDomainList(pets []*domain.Pet) []Pet {
	out := make([]Pet, 0, len(pets))
	for _, p := range pets {
		if p == nil {
			continue
		}
		out = append(out, FromDomain(p))
	}
	return out
}
