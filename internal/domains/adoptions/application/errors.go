package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

var (
	// ErrInvalidInput signals the request failed validation before storage was touched.
	ErrInvalidInput = errors.New("invalid adoption input")
	// ErrTransactionFailed reports that the adoption unit was rolled back.
	ErrTransactionFailed = errors.New("adoption transaction failed")
	// ErrStoreUnavailable wraps persistence failures outside the adoption unit.
	ErrStoreUnavailable = errors.New("adoption store unavailable")
	// ErrPetAlreadyAdopted is returned under the reject policy for pets that were adopted before.
	ErrPetAlreadyAdopted = errors.New("pet already adopted")
	// ErrOutcomeUnknown reports that the unit may or may not have committed, e.g. the worker
	// timed out after the database answered.
	ErrOutcomeUnknown = errors.New("adoption outcome unknown")
)

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidPetID) ||
		errors.Is(err, domain.ErrEmptyAdopterName) ||
		errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrEmptyPhone) ||
		errors.Is(err, domain.ErrEmptyAddress) ||
		errors.Is(err, petdomain.ErrInvalidStatus) ||
		errors.Is(err, petdomain.ErrStatusTransition)
}

// mapAdoptError classifies failures of the transactional adoption unit.
func mapAdoptError(err error) error {
	switch {
	case err == nil:
		return nil
	case isValidationError(err):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ErrPetAlreadyAdopted):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}
}

// mapError classifies failures of the single-statement operations.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case isValidationError(err):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, petports.ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
