package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID tags in-flight requests so late responses can be matched to the
// screen and tab they were issued for.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}
