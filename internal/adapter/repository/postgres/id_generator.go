
package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs for registry transactions. ULIDs
// sort by creation time, matching the order transactions are recorded in.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new 26 character ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
