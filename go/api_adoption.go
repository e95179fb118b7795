package adoptionserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	adopthttpmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	adoptports "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

// AdoptionAPI wires HTTP transport with the adoption service and workflows.
type AdoptionAPI struct {
	service   adoptports.Service
	workflows adoptports.WorkflowOrchestrator
}

// NewAdoptionAPI creates an AdoptionAPI. A nil orchestrator runs adoptions on the service directly.
func NewAdoptionAPI(service adoptports.Service, workflows adoptports.WorkflowOrchestrator) AdoptionAPI {
	return AdoptionAPI{service: service, workflows: workflows}
}

// Post /api/adopt
// Record an adoption and mark the pet adopted
func (api *AdoptionAPI) Adopt(c *gin.Context) {
	var payload adopthttpmapper.AdoptRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	receipt, err := api.adopt(c.Request.Context(), adopthttpmapper.ToAdoptInput(payload))
	if err != nil {
		respondAdoptionServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopthttpmapper.AdoptResponse{Success: true, AdoptionID: receipt.AdoptionID})
}

func (api *AdoptionAPI) adopt(ctx context.Context, input adopttypes.AdoptInput) (*adopttypes.AdoptionReceipt, error) {
	if api.workflows != nil {
		return api.workflows.Adopt(ctx, input)
	}
	return api.service.Adopt(ctx, input)
}

// Post /api/adopt-pet
// Mark a pet adopted without recording adopter details
func (api *AdoptionAPI) MarkAdopted(c *gin.Context) {
	var payload adopthttpmapper.MarkAdoptedRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.MarkAdopted(c.Request.Context(), adopthttpmapper.ToMarkAdoptedInput(payload)); err != nil {
		respondAdoptionServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopthttpmapper.SuccessResponse{Success: true})
}

// Get /api/adopted
// List adoptions with their pets, most recent first
func (api *AdoptionAPI) ListAdopted(c *gin.Context) {
	rows, err := api.service.ListAdopted(c.Request.Context())
	if err != nil {
		respondAdoptionServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopthttpmapper.FromAdoptedPets(rows))
}
