package domain

import (
	"errors"
	"strings"
	"time"
)

// Status represents the lifecycle state of a pet inside the adoption catalog.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
)

// Pet represents the aggregate managed by the pets bounded context.
type Pet struct {
	ID          int64
	Name        string
	Breed       string
	Age         int
	Description *string
	ImageURL    *string
	Status      Status
	CreatedAt   time.Time
}

var (
	ErrEmptyName        = errors.New("pet name is required")
	ErrEmptyBreed       = errors.New("pet breed is required")
	ErrInvalidAge       = errors.New("pet age must be greater or equal to zero")
	ErrInvalidID        = errors.New("pet id must be a positive integer")
	ErrInvalidStatus    = errors.New("pet status is invalid")
	ErrStatusTransition = errors.New("pet status cannot move back to available")
)

// NewPet validates the invariants and builds a new available Pet.
func NewPet(name, breed string, age int, description, imageURL *string) (*Pet, error) {
	p := &Pet{Status: StatusAvailable}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.ChangeBreed(breed); err != nil {
		return nil, err
	}
	if err := p.UpdateAge(age); err != nil {
		return nil, err
	}
	p.Description = copyText(description)
	p.ImageURL = copyText(imageURL)
	return p, nil
}

// Rename mutates the pet name ensuring the invariant. The name is stored as given.
func (p *Pet) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ChangeBreed mutates the pet breed ensuring the invariant.
func (p *Pet) ChangeBreed(breed string) error {
	if strings.TrimSpace(breed) == "" {
		return ErrEmptyBreed
	}
	p.Breed = breed
	return nil
}

// UpdateAge stores a non-negative age.
func (p *Pet) UpdateAge(age int) error {
	if age < 0 {
		return ErrInvalidAge
	}
	p.Age = age
	return nil
}

// ValidateID rejects identifiers that can never reference a stored pet.
func ValidateID(id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}

// ParseStatus validates known lifecycle values.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusAvailable:
		return StatusAvailable, nil
	case StatusAdopted:
		return StatusAdopted, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransition reports whether moving from one status to another is allowed.
// Status only ever moves forward: available pets may be adopted, adopted pets stay adopted.
func CanTransition(from, to Status) error {
	if from == StatusAdopted && to == StatusAvailable {
		return ErrStatusTransition
	}
	if _, err := ParseStatus(string(to)); err != nil {
		return err
	}
	return nil
}

func copyText(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
