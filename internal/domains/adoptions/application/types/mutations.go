package types

import "time"

// AdoptInput carries an adoption request into the application layer.
type AdoptInput struct {
	PetID       int64
	AdopterName string
	Email       string
	Phone       string
	Address     string
}

// MarkAdoptedInput flips a pet to adopted without recording an adoption.
type MarkAdoptedInput struct {
	PetID int64
}

// AdoptionReceipt is returned after a committed adoption.
type AdoptionReceipt struct {
	AdoptionID   int64
	PetID        int64
	AdoptionDate time.Time
}
