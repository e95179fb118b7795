package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	pethttpmapper "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/http/mapper"
	pettypes "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

// PetAPI wires HTTP transport with the pet catalog service.
type PetAPI struct {
	service petsports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service) PetAPI {
	return PetAPI{service: service}
}

// Get /api/pets
// Lists pets available for adoption
func (api *PetAPI) ListPets(c *gin.Context) {
	pets, err := api.service.ListAvailable(c.Request.Context())
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromDomainList(pets))
}

// Get /api/pets/:id
// Find pet by ID
func (api *PetAPI) GetPetById(c *gin.Context) {
	id, ok := bindIDParam(c, "id")
	if !ok {
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), pettypes.PetIdentifier{ID: id})
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromDomain(pet))
}

// Post /api/add-pet
// Add a new pet to the catalog
func (api *PetAPI) AddPet(c *gin.Context) {
	var payload pethttpmapper.AddPetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	id, err := api.service.AddPet(c.Request.Context(), pethttpmapper.ToAddPetInput(payload))
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.AddPetResponse{Success: true, PetID: id})
}

// bindIDParam decodes an integer path parameter, answering 400 when it is not numeric.
func bindIDParam(c *gin.Context, name string) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return id, true
}
