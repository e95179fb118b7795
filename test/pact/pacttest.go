//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pet-adoption-api"
	ConsumerName = "adoption-portal"

	StatePetsBaseline = "pets baseline"
	StatePetExists    = "pet with id 101 exists"
	StatePetMissing   = "no pet with id 404"
	StatePetAdopted   = "pet with id 101 has been adopted"
)

const (
	ExistingPetID int64 = 101
	MissingPetID  int64 = 404
)

const (
	examplePetName     = "Biscuit"
	examplePetBreed    = "Beagle"
	examplePetAge      = 3
	exampleDescription = "Loves long walks"
	exampleImageURL    = "https://example.pact/pets/biscuit.png"
	exampleCreatedAt   = "2024-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleAddPetPayload is the body the portal posts to /api/add-pet.
func ExampleAddPetPayload() map[string]any {
	return map[string]any{
		"name":        examplePetName,
		"breed":       examplePetBreed,
		"age":         examplePetAge,
		"description": exampleDescription,
		"image_url":   exampleImageURL,
	}
}

// ExamplePetPayload is the catalog representation of the seeded pet.
func ExamplePetPayload() map[string]any {
	return map[string]any{
		"id":          ExistingPetID,
		"name":        examplePetName,
		"breed":       examplePetBreed,
		"age":         examplePetAge,
		"description": exampleDescription,
		"image_url":   exampleImageURL,
		"status":      "available",
		"created_at":  exampleCreatedAt,
	}
}

// ExampleAdoptPayload is the adopter contact submitted to /api/adopt.
func ExampleAdoptPayload() map[string]any {
	return map[string]any{
		"pet_id":       ExistingPetID,
		"adopter_name": "Jane Doe",
		"email":        "jane@example.com",
		"phone":        "555-0100",
		"address":      "1 Main St",
	}
}

// SeedPet describes the pet the provider inserts for stateful interactions.
type SeedPet struct {
	ID          int64
	Name        string
	Breed       string
	Age         int
	Description string
	ImageURL    string
}

// ExampleSeedPet returns the provider-side fixture matching ExamplePetPayload.
func ExampleSeedPet() SeedPet {
	return SeedPet{
		ID:          ExistingPetID,
		Name:        examplePetName,
		Breed:       examplePetBreed,
		Age:         examplePetAge,
		Description: exampleDescription,
		ImageURL:    exampleImageURL,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
