package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidPetID     = errors.New("pet id must be a positive integer")
	ErrEmptyAdopterName = errors.New("adopter name is required")
	ErrEmptyEmail       = errors.New("adopter email is required")
	ErrEmptyPhone       = errors.New("adopter phone is required")
	ErrEmptyAddress     = errors.New("adopter address is required")
)

// Contact holds the adopter details captured with an adoption.
type Contact struct {
	AdopterName string
	Email       string
	Phone       string
	Address     string
}

// Adoption records a completed adoption. It is never mutated after insert.
type Adoption struct {
	ID           int64
	PetID        int64
	Contact      Contact
	AdoptionDate time.Time
}

// NewAdoption validates the request and stamps the adoption date in UTC.
func NewAdoption(petID int64, contact Contact, at time.Time) (*Adoption, error) {
	if petID <= 0 {
		return nil, ErrInvalidPetID
	}
	normalized, err := NormalizeContact(contact)
	if err != nil {
		return nil, err
	}
	return &Adoption{
		PetID:        petID,
		Contact:      normalized,
		AdoptionDate: at.UTC(),
	}, nil
}

// NormalizeContact trims every field and rejects blanks.
func NormalizeContact(c Contact) (Contact, error) {
	c.AdopterName = strings.TrimSpace(c.AdopterName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	switch {
	case c.AdopterName == "":
		return Contact{}, ErrEmptyAdopterName
	case c.Email == "":
		return Contact{}, ErrEmptyEmail
	case c.Phone == "":
		return Contact{}, ErrEmptyPhone
	case c.Address == "":
		return Contact{}, ErrEmptyAddress
	}
	return c, nil
}

// ValidatePetID rejects identifiers that can never reference a stored pet.
func ValidatePetID(id int64) error {
	if id <= 0 {
		return ErrInvalidPetID
	}
	return nil
}

// AdoptedPet is the report row joining an adoption with its pet.
type AdoptedPet struct {
	AdoptionID   int64
	PetID        int64
	PetName      string
	Breed        string
	Age          int
	Description  *string
	ImageURL     *string
	Contact      Contact
	AdoptionDate time.Time
}
