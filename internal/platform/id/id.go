package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUIDv7 yields time-ordered identifiers; ids produced later in the process
// sort after earlier ones.
type UUIDv7 struct{}

func (UUIDv7) New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}
