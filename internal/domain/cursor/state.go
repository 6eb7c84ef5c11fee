// Package cursor holds the persisted pagination state behind an
// application-level cursor.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/appindex/internal/domain"
)

// storageDelim is the reserved delimiter joining the serialized fields. It is
// not expected to occur in ordinary query text or in backend scroll tokens.
const storageDelim = "_aidelim_"

// QueryState is the pagination record persisted under a minted cursor: the
// original query text, the limit that governed the page, and the backend's
// opaque scroll token. The scroll token is never parsed, only handed back.
type QueryState struct {
	queryText   string
	limit       int
	scrollToken string
}

// NewQueryState creates a query state.
func NewQueryState(queryText string, limit int, scrollToken string) (QueryState, error) {
	if limit <= 0 {
		return QueryState{}, fmt.Errorf("%w: limit must be > 0", domain.ErrInvalidArgument)
	}
	if scrollToken == "" {
		return QueryState{}, fmt.Errorf("%w: scroll token is required", domain.ErrInvalidArgument)
	}
	return QueryState{queryText: queryText, limit: limit, scrollToken: scrollToken}, nil
}

// QueryText returns the original query text.
func (s QueryState) QueryText() string { return s.queryText }

// Limit returns the limit of the originating search.
func (s QueryState) Limit() int { return s.limit }

// ScrollToken returns the backend scroll token.
func (s QueryState) ScrollToken() string { return s.scrollToken }

// Serialize encodes the state into the single string stored in the cursor
// store: queryText, limit and scroll token joined by the reserved delimiter.
func (s QueryState) Serialize() string {
	var b strings.Builder
	b.WriteString(s.queryText)
	b.WriteString(storageDelim)
	b.WriteString(strconv.Itoa(s.limit))
	b.WriteString(storageDelim)
	b.WriteString(s.scrollToken)
	return b.String()
}

// ParseQueryState decodes a serialized state. Anything other than exactly
// three delimiter-separated parts with a positive integer limit and a
// non-empty scroll token indicates storage corruption or a format mismatch
// and is a hard failure.
func ParseQueryState(input string) (QueryState, error) {
	parts := strings.Split(input, storageDelim)
	if len(parts) != 3 {
		return QueryState{}, fmt.Errorf(
			"%w: expected 3 parts, got %d", domain.ErrCorruptCursorState, len(parts))
	}

	limit, err := strconv.Atoi(parts[1])
	if err != nil {
		return QueryState{}, fmt.Errorf(
			"%w: limit %q is not an integer", domain.ErrCorruptCursorState, parts[1])
	}
	if limit <= 0 {
		return QueryState{}, fmt.Errorf(
			"%w: limit must be > 0, got %d", domain.ErrCorruptCursorState, limit)
	}
	if parts[2] == "" {
		return QueryState{}, fmt.Errorf("%w: empty scroll token", domain.ErrCorruptCursorState)
	}

	return QueryState{queryText: parts[0], limit: limit, scrollToken: parts[2]}, nil
}
