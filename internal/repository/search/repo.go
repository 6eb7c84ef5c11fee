// Package search compiles application-scoped queries into backend-native
// search requests and maps raw responses back to pages. It implements the
// backend contracts of the search and purge usecases.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/appindex/internal/db/elastic"
	"github.com/kailas-cloud/appindex/internal/domain"
)

// Indexed document fields written by the entity indexing path.
const (
	applicationIDField = "applicationId"
	edgeNodeIDField    = "edgeNodeId"
	edgeNameField      = "edgeName"
	entityTypeField    = "entityType"
)

// backendClient is the consumer interface over the Elasticsearch wrapper.
type backendClient interface {
	Search(ctx context.Context, index string, body []byte, keepAlive time.Duration) (*elastic.SearchResult, error)
	Scroll(ctx context.Context, scrollID string, keepAlive time.Duration) (*elastic.SearchResult, error)
	DeleteByQuery(ctx context.Context, index string, body []byte) (*elastic.DeleteByQueryResult, error)
	AliasIndexes(ctx context.Context, alias string) ([]string, error)
}

// Repo implements usecase/search.Backend and usecase/purge.Backend.
type Repo struct {
	client    backendClient
	alias     string
	keepAlive time.Duration
}

// New creates a search repository over the given alias base. keepAlive bounds
// the backend scroll window and matches the cursor timeout.
func New(client backendClient, alias string, keepAlive time.Duration) *Repo {
	return &Repo{client: client, alias: alias, keepAlive: keepAlive}
}

// ReadAlias returns the alias searches read from.
func (r *Repo) ReadAlias() string { return r.alias + "_read" }

// WriteAlias returns the alias deletes and writes address.
func (r *Repo) WriteAlias() string { return r.alias + "_write" }

// Execute compiles and runs a search, opening a scroll context.
func (r *Repo) Execute(
	ctx context.Context, scope domain.ApplicationScope,
	edge domain.SearchEdge, types domain.SearchTypes,
	parsed domain.ParsedQuery, limit int,
) (domain.BackendPage, error) {
	body, err := compileSearchRequest(scope, edge, types, parsed, limit)
	if err != nil {
		return domain.BackendPage{}, fmt.Errorf("compile search request: %w", err)
	}

	res, err := r.client.Search(ctx, r.ReadAlias(), body, r.keepAlive)
	if err != nil {
		return domain.BackendPage{}, err
	}
	return toPage(res), nil
}

// Resume continues a previously opened scroll with the same keep-alive window.
func (r *Repo) Resume(ctx context.Context, scrollToken string) (domain.BackendPage, error) {
	res, err := r.client.Scroll(ctx, scrollToken, r.keepAlive)
	if err != nil {
		return domain.BackendPage{}, err
	}
	return toPage(res), nil
}

// PhysicalIndexes enumerates the physical indexes behind the read alias.
func (r *Repo) PhysicalIndexes(ctx context.Context) ([]string, error) {
	return r.client.AliasIndexes(ctx, r.ReadAlias())
}

// DeleteApplicationDocuments removes every document of the application scope
// via a delete-by-query against the write alias.
func (r *Repo) DeleteApplicationDocuments(
	ctx context.Context, scope domain.ApplicationScope,
) (domain.BulkDeletion, error) {
	body, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"term": map[string]any{
				applicationIDField: scope.ApplicationID().String(),
			},
		},
	})
	if err != nil {
		return domain.BulkDeletion{}, fmt.Errorf("compile delete request: %w", err)
	}

	res, err := r.client.DeleteByQuery(ctx, r.WriteAlias(), body)
	if err != nil {
		return domain.BulkDeletion{}, err
	}

	deletion := domain.BulkDeletion{Deleted: res.Deleted}
	for _, f := range res.Failures {
		deletion.ShardFailures = append(deletion.ShardFailures, domain.ShardFailure{
			Index:  f.Index,
			Shard:  f.Shard,
			Status: f.Status,
			Reason: f.Reason,
		})
	}
	return deletion, nil
}

// compileSearchRequest builds the backend query: the application, edge and
// type constraints as filters, the parsed predicate as a query_string clause.
func compileSearchRequest(
	scope domain.ApplicationScope, edge domain.SearchEdge,
	types domain.SearchTypes, parsed domain.ParsedQuery, limit int,
) ([]byte, error) {
	filters := []map[string]any{
		{"term": map[string]any{applicationIDField: scope.ApplicationID().String()}},
		{"term": map[string]any{edgeNodeIDField: edge.NodeID().String()}},
		{"term": map[string]any{edgeNameField: edge.EdgeName()}},
	}
	if !types.IsAllTypes() {
		filters = append(filters, map[string]any{
			"terms": map[string]any{entityTypeField: types.TypeNames()},
		})
	}

	boolQuery := map[string]any{"filter": filters}
	if parsed.Predicate() != "" {
		boolQuery["must"] = []map[string]any{
			{"query_string": map[string]any{
				"query":            parsed.Predicate(),
				"default_operator": "AND",
			}},
		}
	}

	return json.Marshal(map[string]any{
		"size":  limit,
		"query": map[string]any{"bool": boolQuery},
	})
}

// toPage maps a backend result to the page shape the session consumes,
// preserving backend relevance order.
func toPage(res *elastic.SearchResult) domain.BackendPage {
	page := domain.BackendPage{ScrollToken: res.ScrollID}
	for _, hit := range res.Hits {
		page.HitIDs = append(page.HitIDs, hit.ID)
	}
	return page
}
