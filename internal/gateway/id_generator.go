package gateway

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator produces random (version 4) identifiers as 32 hex characters.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh identifier.
func (g *UUIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
