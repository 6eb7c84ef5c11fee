package domain

import "github.com/google/uuid"

// CandidateResult is a lightweight reference to a matching entity: its id and
// the version that was indexed, not the full entity payload.
type CandidateResult struct {
	entityID      uuid.UUID
	entityVersion uuid.UUID
}

// NewCandidateResult creates a candidate result.
func NewCandidateResult(entityID, entityVersion uuid.UUID) CandidateResult {
	return CandidateResult{entityID: entityID, entityVersion: entityVersion}
}

// EntityID returns the entity identifier.
func (c CandidateResult) EntityID() uuid.UUID { return c.entityID }

// EntityVersion returns the indexed entity version.
func (c CandidateResult) EntityVersion() uuid.UUID { return c.entityVersion }

// CandidateResults is one page of candidates in backend relevance order, the
// select-field mappings of the originating query, and an optional cursor the
// caller passes back to resume the result set.
type CandidateResults struct {
	candidates []CandidateResult
	mappings   []SelectFieldMapping
	cursor     string
}

// NewCandidateResults creates a result page without a cursor.
func NewCandidateResults(candidates []CandidateResult, mappings []SelectFieldMapping) CandidateResults {
	return CandidateResults{candidates: candidates, mappings: mappings}
}

// WithCursor returns a copy of the page carrying the given cursor.
func (r CandidateResults) WithCursor(cursor string) CandidateResults {
	r.cursor = cursor
	return r
}

// Candidates returns the candidates in backend relevance order.
func (r CandidateResults) Candidates() []CandidateResult { return r.candidates }

// SelectFieldMappings returns the field projections of the originating query.
func (r CandidateResults) SelectFieldMappings() []SelectFieldMapping { return r.mappings }

// Cursor returns the resume cursor, empty at end of results.
func (r CandidateResults) Cursor() string { return r.cursor }

// HasCursor reports whether more results can be fetched.
func (r CandidateResults) HasCursor() bool { return r.cursor != "" }

// Size returns the number of candidates on this page.
func (r CandidateResults) Size() int { return len(r.candidates) }
