// Package query parses query strings into their structured form. The grammar
// covers exactly what result assembly needs back out of a query: the optional
// select clause with its field projections, and the predicate remainder which
// is handed to the backend request compiler as opaque text.
//
// Supported forms:
//
//	color = 'red'                          predicate only, select all
//	select * where color = 'red'           explicit select all
//	select name, age where color = 'red'   projected fields
//	select {name:displayName} where ...    source-to-target projections
//	(empty string)                         match all
//
// Parsing is deterministic: the same text always yields the same ParsedQuery.
// A cursor resume re-parses the original text to recover the projections, so
// this property is load-bearing.
package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/appindex/internal/domain"
)

const (
	selectKeyword = "select"
	whereKeyword  = "where"
)

// Parse builds a ParsedQuery from the given text. The text is retained
// verbatim on the result regardless of how it parses.
func Parse(text string) (domain.ParsedQuery, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.NewParsedQuery(text, "", nil, true), nil
	}

	rest, hasSelect := cutKeyword(trimmed, selectKeyword)
	if !hasSelect {
		// The whole text is the predicate.
		return domain.NewParsedQuery(text, trimmed, nil, true), nil
	}

	fieldsPart := rest
	predicate := ""
	if idx := indexKeyword(rest, whereKeyword); idx >= 0 {
		fieldsPart = strings.TrimSpace(rest[:idx])
		predicate = strings.TrimSpace(rest[idx+len(whereKeyword):])
	}

	mappings, selectAll, err := parseSelectFields(fieldsPart)
	if err != nil {
		return domain.ParsedQuery{}, err
	}

	return domain.NewParsedQuery(text, predicate, mappings, selectAll), nil
}

// parseSelectFields parses the field list between "select" and "where".
func parseSelectFields(fields string) ([]domain.SelectFieldMapping, bool, error) {
	if fields == "" || fields == "*" {
		return nil, true, nil
	}

	// Brace form: select {source:target, ...}
	if strings.HasPrefix(fields, "{") {
		if !strings.HasSuffix(fields, "}") {
			return nil, false, fmt.Errorf("%w: unterminated '{' in select clause", domain.ErrQueryParse)
		}
		fields = strings.TrimSpace(fields[1 : len(fields)-1])
	}

	var mappings []domain.SelectFieldMapping
	for _, part := range strings.Split(fields, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false, fmt.Errorf("%w: empty field in select clause", domain.ErrQueryParse)
		}

		source, target := part, part
		if s, tgt, ok := strings.Cut(part, ":"); ok {
			source = strings.TrimSpace(s)
			target = strings.TrimSpace(tgt)
			if source == "" || target == "" {
				return nil, false, fmt.Errorf(
					"%w: malformed field mapping %q in select clause", domain.ErrQueryParse, part)
			}
		}
		mappings = append(mappings, domain.NewSelectFieldMapping(source, target))
	}

	return mappings, false, nil
}

// cutKeyword strips a leading keyword (case-insensitive, word-bounded) and
// returns the trimmed remainder.
func cutKeyword(s, keyword string) (string, bool) {
	if len(s) < len(keyword) || !strings.EqualFold(s[:len(keyword)], keyword) {
		return s, false
	}
	rest := s[len(keyword):]
	if rest != "" && !isSpace(rest[0]) && rest[0] != '{' && rest[0] != '*' {
		return s, false
	}
	return strings.TrimSpace(rest), true
}

// indexKeyword finds a case-insensitive, word-bounded occurrence of keyword.
func indexKeyword(s, keyword string) int {
	lower := strings.ToLower(s)
	from := 0
	for {
		idx := strings.Index(lower[from:], keyword)
		if idx < 0 {
			return -1
		}
		idx += from
		before := idx == 0 || isSpace(s[idx-1]) || s[idx-1] == '}' || s[idx-1] == '*'
		afterIdx := idx + len(keyword)
		after := afterIdx == len(s) || isSpace(s[afterIdx])
		if before && after {
			return idx
		}
		from = idx + len(keyword)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Parser is the injectable form of Parse, satisfying the search session's
// QueryParser contract.
type Parser struct{}

// NewParser creates a parser.
func NewParser() Parser { return Parser{} }

// Parse builds a ParsedQuery from the given text.
func (Parser) Parse(text string) (domain.ParsedQuery, error) { return Parse(text) }
