package search

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/appindex/internal/db/elastic"
	"github.com/kailas-cloud/appindex/internal/domain"
)

// mockClient implements the consumer interface for tests.
type mockClient struct {
	searchFn  func(ctx context.Context, index string, body []byte, keepAlive time.Duration) (*elastic.SearchResult, error)
	scrollFn  func(ctx context.Context, scrollID string, keepAlive time.Duration) (*elastic.SearchResult, error)
	deleteFn  func(ctx context.Context, index string, body []byte) (*elastic.DeleteByQueryResult, error)
	aliasesFn func(ctx context.Context, alias string) ([]string, error)

	lastIndex     string
	lastBody      []byte
	lastScrollID  string
	lastKeepAlive time.Duration
}

func (m *mockClient) Search(
	ctx context.Context, index string, body []byte, keepAlive time.Duration,
) (*elastic.SearchResult, error) {
	m.lastIndex = index
	m.lastBody = body
	m.lastKeepAlive = keepAlive
	if m.searchFn != nil {
		return m.searchFn(ctx, index, body, keepAlive)
	}
	return &elastic.SearchResult{}, nil
}

func (m *mockClient) Scroll(
	ctx context.Context, scrollID string, keepAlive time.Duration,
) (*elastic.SearchResult, error) {
	m.lastScrollID = scrollID
	m.lastKeepAlive = keepAlive
	if m.scrollFn != nil {
		return m.scrollFn(ctx, scrollID, keepAlive)
	}
	return &elastic.SearchResult{}, nil
}

func (m *mockClient) DeleteByQuery(
	ctx context.Context, index string, body []byte,
) (*elastic.DeleteByQueryResult, error) {
	m.lastIndex = index
	m.lastBody = body
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, body)
	}
	return &elastic.DeleteByQueryResult{}, nil
}

func (m *mockClient) AliasIndexes(ctx context.Context, alias string) ([]string, error) {
	m.lastIndex = alias
	if m.aliasesFn != nil {
		return m.aliasesFn(ctx, alias)
	}
	return nil, nil
}

func newTestRepo() (*Repo, *mockClient) {
	mc := &mockClient{}
	return New(mc, "appindex_entities", 2*time.Minute), mc
}

func testScope(t *testing.T) domain.ApplicationScope {
	t.Helper()
	scope, err := domain.NewApplicationScope(uuid.New())
	if err != nil {
		t.Fatalf("NewApplicationScope: %v", err)
	}
	return scope
}

func testEdge(t *testing.T) domain.SearchEdge {
	t.Helper()
	edge, err := domain.NewSearchEdge(uuid.New(), "owns")
	if err != nil {
		t.Fatalf("NewSearchEdge: %v", err)
	}
	return edge
}
