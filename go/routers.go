package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the handlers served by the router.
type ApiHandleFunctions struct {
	PetAPI      PetAPI
	AdoptionAPI AdoptionAPI
	HealthAPI   HealthAPI
}

// NewRouter returns a new router with recovery, request ids and the given middleware installed.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine registers the routes on an existing engine. Middleware must be
// installed on the engine before calling it.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.GET("/health", handleFunctions.HealthAPI.Health)

	api := router.Group("/api", NoCache())
	for _, route := range getRoutes(handleFunctions) {
		switch route.Method {
		case http.MethodGet:
			api.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			api.POST(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ListPets",
			http.MethodGet,
			"/pets",
			handleFunctions.PetAPI.ListPets,
		},
		{
			"GetPetById",
			http.MethodGet,
			"/pets/:id",
			handleFunctions.PetAPI.GetPetById,
		},
		{
			"AddPet",
			http.MethodPost,
			"/add-pet",
			handleFunctions.PetAPI.AddPet,
		},
		{
			"AdoptPet",
			http.MethodPost,
			"/adopt",
			handleFunctions.AdoptionAPI.Adopt,
		},
		{
			"MarkPetAdopted",
			http.MethodPost,
			"/adopt-pet",
			handleFunctions.AdoptionAPI.MarkAdopted,
		},
		{
			"ListAdoptedPets",
			http.MethodGet,
			"/adopted",
			handleFunctions.AdoptionAPI.ListAdopted,
		},
	}
}
