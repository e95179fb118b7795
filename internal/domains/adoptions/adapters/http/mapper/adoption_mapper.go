package mapper

import (
	"time"

	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/jsonnum"
)

// AdoptRequest is the inbound payload of POST /api/adopt.
type AdoptRequest struct {
	PetID       jsonnum.FlexInt `json:"pet_id"`
	AdopterName string          `json:"adopter_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
}

// AdoptResponse acknowledges a committed adoption.
type AdoptResponse struct {
	Success    bool  `json:"success"`
	AdoptionID int64 `json:"adoption_id"`
}

// MarkAdoptedRequest is the inbound payload of POST /api/adopt-pet.
type MarkAdoptedRequest struct {
	PetID jsonnum.FlexInt `json:"pet_id"`
}

// SuccessResponse is the bare acknowledgement body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AdoptedPet is one row of the adoption report.
type AdoptedPet struct {
	AdoptionID   int64     `json:"adoption_id"`
	PetID        int64     `json:"pet_id"`
	PetName      string    `json:"pet_name"`
	Breed        string    `json:"breed"`
	Age          int       `json:"age"`
	Description  *string   `json:"description"`
	ImageURL     *string   `json:"image_url"`
	AdopterName  string    `json:"adopter_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	AdoptionDate time.Time `json:"adoption_date"`
}

// ToAdoptInput maps the transport payload into the application command.
// A missing pet id becomes zero and is rejected by validation.
func ToAdoptInput(req AdoptRequest) adopttypes.AdoptInput {
	return adopttypes.AdoptInput{
		PetID:       req.PetID.Value,
		AdopterName: req.AdopterName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	}
}

// ToMarkAdoptedInput maps the status-only payload.
func ToMarkAdoptedInput(req MarkAdoptedRequest) adopttypes.MarkAdoptedInput {
	return adopttypes.MarkAdoptedInput{PetID: req.PetID.Value}
}

// FromAdoptedPets maps the report rows; the result is never nil.
func FromAdoptedPets(rows []*domain.AdoptedPet) []AdoptedPet {
	out := make([]AdoptedPet, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, AdoptedPet{
			AdoptionID:   r.AdoptionID,
			PetID:        r.PetID,
			PetName:      r.PetName,
			Breed:        r.Breed,
			Age:          r.Age,
			Description:  r.Description,
			ImageURL:     r.ImageURL,
			AdopterName:  r.Contact.AdopterName,
			Email:        r.Contact.Email,
			Phone:        r.Contact.Phone,
			Address:      r.Contact.Address,
			AdoptionDate: r.AdoptionDate.UTC(),
		})
	}
	return out
}
