package domain

// SelectFieldMapping maps a source field in the indexed document to the name
// the caller asked for it to be projected back as.
type SelectFieldMapping struct {
	sourceField string
	targetField string
}

// NewSelectFieldMapping creates a field projection mapping.
func NewSelectFieldMapping(sourceField, targetField string) SelectFieldMapping {
	return SelectFieldMapping{sourceField: sourceField, targetField: targetField}
}

// SourceField returns the field name in the indexed document.
func (m SelectFieldMapping) SourceField() string { return m.sourceField }

// TargetField returns the projected field name returned to the caller.
func (m SelectFieldMapping) TargetField() string { return m.targetField }

// ParsedQuery is the structured form of a query string: the verbatim original
// text, the predicate remainder handed to the backend request compiler, and
// the requested field projections. Only the original text and the select
// mappings survive past request compilation.
type ParsedQuery struct {
	originalQuery string
	predicate     string
	mappings      []SelectFieldMapping
	selectAll     bool
}

// NewParsedQuery creates a parsed query.
func NewParsedQuery(originalQuery, predicate string, mappings []SelectFieldMapping, selectAll bool) ParsedQuery {
	return ParsedQuery{
		originalQuery: originalQuery,
		predicate:     predicate,
		mappings:      mappings,
		selectAll:     selectAll,
	}
}

// OriginalQuery returns the query text verbatim as the caller supplied it.
func (q ParsedQuery) OriginalQuery() string { return q.originalQuery }

// Predicate returns the predicate portion of the query, empty for match-all.
func (q ParsedQuery) Predicate() string { return q.predicate }

// SelectFieldMappings returns the requested field projections.
func (q ParsedQuery) SelectFieldMappings() []SelectFieldMapping { return q.mappings }

// IsSelectAll reports whether the query projects entire entities.
func (q ParsedQuery) IsSelectAll() bool { return q.selectAll }
