// Package errors renders API failures as RFC 7807 problem documents.
package errors

import (
	"fmt"
	"net/http"
)

// Problem type references. They are relative so the API needs no public base URL.
const (
	TypeValidation  = "/problems/validation-error"
	TypeBadRequest  = "/problems/bad-request"
	TypeNotFound    = "/problems/not-found"
	TypeConflict    = "/problems/conflict"
	TypeInternal    = "/problems/internal-error"
	TypeUnavailable = "/problems/service-unavailable"
)

// ProblemDetail is the body of every non-2xx JSON response.
// See https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return fmt.Sprintf("%d %s", p.Status, p.Title)
	}
	return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
}

// WithDetail returns a copy of p carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

var (
	// ErrValidation: the payload parsed but a field broke a domain rule.
	ErrValidation = ProblemDetail{Type: TypeValidation, Title: "Validation Error", Status: http.StatusBadRequest}
	// ErrBadRequest: the payload or a path parameter could not be decoded.
	ErrBadRequest = ProblemDetail{Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest}
	ErrNotFound   = ProblemDetail{Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound}
	// ErrConflict: the request clashes with the pet's current state.
	ErrConflict = ProblemDetail{Type: TypeConflict, Title: "Conflict", Status: http.StatusConflict}
	// ErrInternal never carries caller-specific detail; see Internal.
	ErrInternal    = ProblemDetail{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
	ErrUnavailable = ProblemDetail{Type: TypeUnavailable, Title: "Service Unavailable", Status: http.StatusServiceUnavailable}
)

// Internal is the only 500 body the API sends. Driver and stack text stays in the logs.
func Internal() ProblemDetail {
	return ErrInternal.WithDetail(GenericInternalDetail)
}

// NotFound describes a missing resource of the given kind.
func NotFound(resource string, id any) ProblemDetail {
	if id == nil {
		return ErrNotFound.WithDetail(resource + " not found")
	}
	return ErrNotFound.WithDetail(fmt.Sprintf("%s %v not found", resource, id))
}
