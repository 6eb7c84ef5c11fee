// Package docid encodes and decodes the compound document identifiers the
// indexing write path assigns to entities: the entity id and the indexed
// entity version, joined by a fixed separator. The codec is the only place
// the structure of a backend document id is interpreted.
package docid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kailas-cloud/appindex/internal/domain"
)

const separator = "_"

// Encode builds the compound document id for an entity id and version.
func Encode(entityID, entityVersion uuid.UUID) string {
	return entityID.String() + separator + entityVersion.String()
}

// Decode parses a compound document id back into a candidate result. A raw id
// that does not match the write-path format is a contract violation of the
// indexing format and fails with ErrMalformedHit.
func Decode(rawID string) (domain.CandidateResult, error) {
	parts := strings.Split(rawID, separator)
	if len(parts) != 2 {
		return domain.CandidateResult{}, fmt.Errorf(
			"%w: %q has %d parts, want 2", domain.ErrMalformedHit, rawID, len(parts))
	}

	entityID, err := uuid.Parse(parts[0])
	if err != nil {
		return domain.CandidateResult{}, fmt.Errorf(
			"%w: entity id in %q: %v", domain.ErrMalformedHit, rawID, err)
	}

	entityVersion, err := uuid.Parse(parts[1])
	if err != nil {
		return domain.CandidateResult{}, fmt.Errorf(
			"%w: entity version in %q: %v", domain.ErrMalformedHit, rawID, err)
	}

	return domain.NewCandidateResult(entityID, entityVersion), nil
}
