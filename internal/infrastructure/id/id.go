// Package id issues time-ordered identifiers.
package id

import "github.com/google/uuid"

type Generator struct{}

func NewGenerator() Generator { return Generator{} }

// NewID returns a UUIDv7, falling back to a random UUID if the clock source fails.
func (Generator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
