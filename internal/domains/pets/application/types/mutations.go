package types

// AddPetInput carries the fields accepted when registering a pet in the catalog.
// Age is a pointer so a missing value can be told apart from zero.
type AddPetInput struct {
	Name        string
	Breed       string
	Age         *int
	Description *string
	ImageURL    *string
}

// PetIdentifier addresses a single pet.
type PetIdentifier struct {
	ID int64
}
