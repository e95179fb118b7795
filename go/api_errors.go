package adoptionserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	adoptapp "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	petsapp "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/go-gin-adoption-api/internal/shared/errors"
)

var (
	petProblems = apierrors.NewResponder(mapPetError)
	// Adoption errors are checked first: a rolled-back unit wraps the catalog's not-found cause
	// and must still answer 500.
	adoptionProblems = apierrors.NewResponder(mapAdoptionError).With(mapPetError)
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Write(c, problem)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func respondPetServiceError(c *gin.Context, err error) {
	petProblems.Error(c, err)
}

func respondAdoptionServiceError(c *gin.Context, err error) {
	adoptionProblems.Error(c, err)
}

func mapPetError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, petsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, petsports.ErrNotFound):
		return apierrors.NotFound("pet", nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapAdoptionError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, adoptapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, adoptapp.ErrPetAlreadyAdopted):
		return apierrors.ErrConflict.WithDetail("pet has already been adopted"), true
	case errors.Is(err, adoptapp.ErrOutcomeUnknown):
		return apierrors.ErrUnavailable.WithDetail("adoption outcome unknown, check /api/adopted before retrying"), true
	case errors.Is(err, adoptapp.ErrTransactionFailed), errors.Is(err, adoptapp.ErrStoreUnavailable):
		return apierrors.Internal(), true
	}
	return apierrors.ProblemDetail{}, false
}
