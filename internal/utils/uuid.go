package utils

import "github.com/google/uuid"

// UUIDGenerator issues operation, conflict, device and round ids. Version 7
// ids sort by creation time, so the local queue and the conflict log keep
// insertion order when listed by id.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a v7 id, or a random v4 one if the clock source fails.
func (g *UUIDGenerator) Generate() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}
	return uuid.NewString()
}
