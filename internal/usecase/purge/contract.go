package purge

import (
	"context"

	"github.com/kailas-cloud/appindex/internal/domain"
)

// Backend exposes the bulk delete surface of the search backend.
type Backend interface {
	// PhysicalIndexes enumerates the physical index names behind the logical
	// alias.
	PhysicalIndexes(ctx context.Context) ([]string, error)

	// DeleteApplicationDocuments issues one delete-by-query for every
	// document in the application scope, addressed to the alias's write
	// target. Shard-level failures come back in the result, not as an error.
	DeleteApplicationDocuments(ctx context.Context, scope domain.ApplicationScope) (domain.BulkDeletion, error)
}
