package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ContentTypeProblemJSON = "application/problem+json"
	GenericInternalDetail  = "an unexpected error occurred"
)

// Mapper turns an application error into a problem. It reports false for errors it does not own.
type Mapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents for one bounded context. Mappers are tried
// in order; an error none of them claims becomes the generic 500.
type Responder struct {
	mappers []Mapper
}

// NewResponder builds a Responder from the context's error mappers.
func NewResponder(mappers ...Mapper) *Responder {
	return &Responder{mappers: mappers}
}

// With returns a Responder that consults extra after r's own mappers.
func (r *Responder) With(extra ...Mapper) *Responder {
	mappers := make([]Mapper, 0, len(r.mappers)+len(extra))
	mappers = append(mappers, r.mappers...)
	mappers = append(mappers, extra...)
	return &Responder{mappers: mappers}
}

// Error aborts the request with the problem that err maps to.
func (r *Responder) Error(c *gin.Context, err error) {
	Write(c, r.Resolve(err))
}

// Resolve picks the problem for err without writing it.
func (r *Responder) Resolve(err error) ProblemDetail {
	if r != nil {
		for _, m := range r.mappers {
			if problem, ok := m(err); ok {
				return sanitize(problem)
			}
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return sanitize(problem)
	}
	return Internal()
}

// Write aborts the request with problem, defaulting Instance to the request path.
func Write(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

func sanitize(problem ProblemDetail) ProblemDetail {
	if problem.Status >= http.StatusInternalServerError && problem.Status != http.StatusServiceUnavailable {
		return Internal()
	}
	return problem
}
