package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/appindex/internal/domain"
)

// QueryParser turns query text into its structured form. Parsing must be
// deterministic: the same text is parsed once on the original search and
// again when a cursor resumes, and both must agree.
type QueryParser interface {
	Parse(text string) (domain.ParsedQuery, error)
}

// Backend executes compiled searches against the search backend and resumes
// previously opened scrolls.
type Backend interface {
	Execute(
		ctx context.Context, scope domain.ApplicationScope,
		edge domain.SearchEdge, types domain.SearchTypes,
		parsed domain.ParsedQuery, limit int,
	) (domain.BackendPage, error)

	Resume(ctx context.Context, scrollToken string) (domain.BackendPage, error)
}

// CursorStore persists serialized query state under minted cursor ids with a
// bounded lifetime. Entries expire on their own; no delete is needed.
type CursorStore interface {
	Put(ctx context.Context, cursorID, state string, ttl time.Duration) error
	Get(ctx context.Context, cursorID string) (state string, found bool, err error)
}

// HealthMonitor records the outcome of every backend attempt.
type HealthMonitor interface {
	Fail(contextMsg string, err error)
	Success()
}
