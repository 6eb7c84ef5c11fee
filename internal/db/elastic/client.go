// Package elastic wraps the Elasticsearch client behind the narrow surface
// the search façade needs: execute a scrolling search, resume a scroll,
// delete by query against an alias, and enumerate the physical indexes behind
// an alias. Backend request and response JSON never leaves this package.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
)

// Config holds connection parameters for the Elasticsearch cluster.
type Config struct {
	Addresses []string
	Username  string
	Password  string
}

// Client wraps the Elasticsearch transport.
type Client struct {
	es *elasticsearch.Client
}

// NewClient creates an Elasticsearch client.
func NewClient(cfg Config) (*Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Client{es: es}, nil
}

// Ping checks cluster connectivity.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("ping: %s", res.Status())
	}
	return nil
}

// Hit is one raw search hit. The document id is an uninterpreted blob here;
// the docid codec owns its structure.
type Hit struct {
	Index string
	ID    string
}

// SearchResult carries one page of hits in backend relevance order plus the
// scroll id, when the backend opened a scroll context.
type SearchResult struct {
	Hits     []Hit
	Total    int64
	ScrollID string
}

// Search executes a search request body against an index or alias, opening a
// scroll context with the given keep-alive.
func (c *Client) Search(ctx context.Context, index string, body []byte, keepAlive time.Duration) (*SearchResult, error) {
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(body)),
		c.es.Search.WithScroll(keepAlive),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	return parseSearchResponse(res, "search "+index)
}

// Scroll resumes a previously opened scroll, extending its keep-alive.
func (c *Client) Scroll(ctx context.Context, scrollID string, keepAlive time.Duration) (*SearchResult, error) {
	res, err := c.es.Scroll(
		c.es.Scroll.WithContext(ctx),
		c.es.Scroll.WithScrollID(scrollID),
		c.es.Scroll.WithScroll(keepAlive),
	)
	if err != nil {
		return nil, fmt.Errorf("scroll: %w", err)
	}
	return parseSearchResponse(res, "scroll")
}

// ShardFailure describes a single failed shard operation inside an otherwise
// accepted delete-by-query response.
type ShardFailure struct {
	Index  string
	Shard  int
	Status int
	Reason string
}

// DeleteByQueryResult is the outcome of one delete-by-query call.
type DeleteByQueryResult struct {
	Deleted  int64
	Failures []ShardFailure
}

// DeleteByQuery deletes every document matching the request body in the given
// index or alias. Shard-level failures are reported, not raised.
func (c *Client) DeleteByQuery(ctx context.Context, index string, body []byte) (*DeleteByQueryResult, error) {
	res, err := c.es.DeleteByQuery(
		[]string{index},
		bytes.NewReader(body),
		c.es.DeleteByQuery.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("delete by query %s: %w", index, err)
	}
	defer drain(res)
	if res.IsError() {
		return nil, fmt.Errorf("delete by query %s: %s", index, res.Status())
	}

	var payload struct {
		Deleted  int64 `json:"deleted"`
		Failures []struct {
			Index  string `json:"index"`
			Shard  int    `json:"shard"`
			Status int    `json:"status"`
			Cause  struct {
				Reason string `json:"reason"`
			} `json:"cause"`
		} `json:"failures"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("delete by query %s: decode response: %w", index, err)
	}

	out := &DeleteByQueryResult{Deleted: payload.Deleted}
	for _, f := range payload.Failures {
		out.Failures = append(out.Failures, ShardFailure{
			Index:  f.Index,
			Shard:  f.Shard,
			Status: f.Status,
			Reason: f.Cause.Reason,
		})
	}
	return out, nil
}

// AliasIndexes returns the physical index names behind an alias, sorted.
func (c *Client) AliasIndexes(ctx context.Context, alias string) ([]string, error) {
	res, err := c.es.Indices.GetAlias(
		c.es.Indices.GetAlias.WithContext(ctx),
		c.es.Indices.GetAlias.WithName(alias),
	)
	if err != nil {
		return nil, fmt.Errorf("get alias %s: %w", alias, err)
	}
	defer drain(res)
	if res.IsError() {
		return nil, fmt.Errorf("get alias %s: %s", alias, res.Status())
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("get alias %s: decode response: %w", alias, err)
	}

	indexes := make([]string, 0, len(payload))
	for name := range payload {
		indexes = append(indexes, name)
	}
	sort.Strings(indexes)
	return indexes, nil
}

// parseSearchResponse decodes the hits and scroll id out of a search or
// scroll response.
func parseSearchResponse(res *esapi.Response, op string) (*SearchResult, error) {
	defer drain(res)
	if res.IsError() {
		return nil, fmt.Errorf("%s: %s", op, res.Status())
	}

	var payload struct {
		ScrollID string `json:"_scroll_id"`
		Hits     struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Index string `json:"_index"`
				ID    string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	out := &SearchResult{
		Total:    payload.Hits.Total.Value,
		ScrollID: payload.ScrollID,
	}
	for _, h := range payload.Hits.Hits {
		out.Hits = append(out.Hits, Hit{Index: h.Index, ID: h.ID})
	}
	return out, nil
}

// drain consumes and closes a response body so the connection can be reused.
func drain(res *esapi.Response) {
	if res != nil && res.Body != nil {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}
}
