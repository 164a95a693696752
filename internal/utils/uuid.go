package utils

import "github.com/google/uuid"

// UUIDGenerator produces card record identifiers. Generated ids are UUIDv7,
// so creation order is reflected in lexicographic order; on the rare v7
// generation failure a random v4 is used instead.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
