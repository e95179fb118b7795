package application

import (
	"fmt"
	"strings"
)

// Policy decides whether a pet that is already adopted may be adopted again.
type Policy string

const (
	// AllowReadoption records another adoption and leaves the pet adopted.
	AllowReadoption Policy = "allow"
	// RejectAdopted fails the unit with ErrPetAlreadyAdopted.
	RejectAdopted Policy = "reject"
)

// ParsePolicy accepts the configured policy name; empty selects AllowReadoption.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", AllowReadoption:
		return AllowReadoption, nil
	case RejectAdopted:
		return RejectAdopted, nil
	default:
		return "", fmt.Errorf("unknown adoption policy %q", raw)
	}
}
