package adoptionserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-adoption-api/internal/shared/errors"
)

// HealthAPI reports whether the process can reach its store.
type HealthAPI struct {
	check func(context.Context) error
}

// NewHealthAPI creates a HealthAPI. A nil check always reports healthy.
func NewHealthAPI(check func(context.Context) error) HealthAPI {
	return HealthAPI{check: check}
}

// Get /health
func (api *HealthAPI) Health(c *gin.Context) {
	if api.check != nil {
		if err := api.check(c.Request.Context()); err != nil {
			respondProblem(c, apierrors.ErrUnavailable.WithDetail("store unreachable"))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
