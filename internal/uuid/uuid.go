// Package uuid wraps google/uuid so that UUIDs can be bound directly
// from URI and query parameters by gin.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// Parse parses a UUID from its string representation.
func Parse(s string) (UUID, error) {
	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, err
	}

	return UUID{parsed}, nil
}

// UnmarshalParam implements the uuid.Parse method
// from https://pkg.go.dev/github.com/google/uuid#Parse
// for UUID
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
