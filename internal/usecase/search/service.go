// Package search implements the application-scoped search session: one-shot
// searches, durable resumable cursors, and result assembly.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/appindex/internal/docid"
	"github.com/kailas-cloud/appindex/internal/domain"
	domcursor "github.com/kailas-cloud/appindex/internal/domain/cursor"
	"github.com/kailas-cloud/appindex/internal/metrics"
)

// Session coordinates query parsing, backend execution, health tracking and
// cursor persistence for one logical search backend.
type Session struct {
	parser  QueryParser
	backend Backend
	cursors CursorStore
	monitor HealthMonitor
	logger  *zap.Logger

	cursorTimeout time.Duration
}

// New creates a search session.
func New(
	parser QueryParser, backend Backend, cursors CursorStore,
	monitor HealthMonitor, cursorTimeout time.Duration, logger *zap.Logger,
) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		parser:        parser,
		backend:       backend,
		cursors:       cursors,
		monitor:       monitor,
		logger:        logger,
		cursorTimeout: cursorTimeout,
	}
}

// Search executes a query against the application scope and returns the first
// page of candidates. When the backend reports more data and the page is
// full, the envelope carries a cursor for Continue.
func (s *Session) Search(
	ctx context.Context, scope domain.ApplicationScope,
	edge domain.SearchEdge, types domain.SearchTypes,
	queryText string, limit int,
) (domain.CandidateResults, error) {
	if scope.ApplicationID() == uuid.Nil {
		return domain.CandidateResults{}, fmt.Errorf("%w: application scope is required", domain.ErrInvalidArgument)
	}
	if edge.NodeID() == uuid.Nil || edge.EdgeName() == "" {
		return domain.CandidateResults{}, fmt.Errorf("%w: search edge is required", domain.ErrInvalidArgument)
	}
	if limit <= 0 {
		return domain.CandidateResults{}, fmt.Errorf("%w: limit must be > 0", domain.ErrInvalidArgument)
	}

	parsed, err := s.parser.Parse(queryText)
	if err != nil {
		return domain.CandidateResults{}, fmt.Errorf("parse query: %w", err)
	}

	s.logger.Debug("executing search",
		zap.String("application_id", scope.ApplicationID().String()),
		zap.String("node_id", edge.NodeID().String()),
		zap.String("edge_name", edge.EdgeName()),
		zap.Strings("types", types.TypeNames()),
		zap.Int("limit", limit),
	)

	timer := prometheus.NewTimer(metrics.SearchDuration)
	page, err := s.backend.Execute(ctx, scope, edge, types, parsed, limit)
	timer.ObserveDuration()
	if err != nil {
		s.monitor.Fail("unable to execute search", err)
		return domain.CandidateResults{}, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	s.monitor.Success()

	return s.assemble(ctx, page, parsed, limit)
}

// Continue resumes a result set from a previously minted cursor. The original
// query's limit governs paging decisions; there is no way to change it on
// resume.
func (s *Session) Continue(ctx context.Context, cursor string) (domain.CandidateResults, error) {
	// Some clients hand the cursor back still wrapped in the quotes it was
	// serialized with. Strip one layer, nothing stricter.
	cursor = strings.TrimPrefix(cursor, `"`)
	cursor = strings.TrimSuffix(cursor, `"`)

	if cursor == "" {
		return domain.CandidateResults{}, fmt.Errorf("%w: cursor is required", domain.ErrInvalidArgument)
	}

	serialized, found, err := s.cursors.Get(ctx, cursor)
	if err != nil {
		return domain.CandidateResults{}, fmt.Errorf("read cursor state: %w", err)
	}
	if !found {
		return domain.CandidateResults{}, domain.NewCursorNotFound(cursor)
	}

	state, err := domcursor.ParseQueryState(serialized)
	if err != nil {
		return domain.CandidateResults{}, err
	}

	// Re-parse to recover the select-field projections; they are not
	// persisted directly.
	parsed, err := s.parser.Parse(state.QueryText())
	if err != nil {
		return domain.CandidateResults{}, fmt.Errorf("re-parse query: %w", err)
	}

	s.logger.Debug("resuming search from cursor",
		zap.String("cursor", cursor),
		zap.Int("limit", state.Limit()),
	)

	timer := prometheus.NewTimer(metrics.CursorSearchDuration)
	page, err := s.backend.Resume(ctx, state.ScrollToken())
	timer.ObserveDuration()
	if err != nil {
		s.monitor.Fail("unable to resume search", err)
		return domain.CandidateResults{}, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	s.monitor.Success()

	return s.assemble(ctx, page, parsed, state.Limit())
}

// assemble decodes the raw page into candidates and decides whether to mint a
// cursor for the caller.
func (s *Session) assemble(
	ctx context.Context, page domain.BackendPage,
	parsed domain.ParsedQuery, limit int,
) (domain.CandidateResults, error) {
	candidates := make([]domain.CandidateResult, 0, len(page.HitIDs))
	for _, rawID := range page.HitIDs {
		candidate, err := docid.Decode(rawID)
		if err != nil {
			// A hit that does not decode means the index contains documents
			// written outside the id contract. Fail the page, do not skip.
			return domain.CandidateResults{}, err
		}
		candidates = append(candidates, candidate)
	}

	results := domain.NewCandidateResults(candidates, parsed.SelectFieldMappings())

	// >= rather than ==: a caller may lower the limit on a later call while
	// scrolling, leaving more hits on the page than the new limit. That still
	// means more data is likely available.
	if page.ScrollToken == "" || len(page.HitIDs) < limit {
		return results, nil
	}

	cursorID := uuid.NewString()

	state, err := domcursor.NewQueryState(parsed.OriginalQuery(), limit, page.ScrollToken)
	if err != nil {
		return domain.CandidateResults{}, fmt.Errorf("build query state: %w", err)
	}

	if err := s.cursors.Put(ctx, cursorID, state.Serialize(), s.cursorTimeout); err != nil {
		return domain.CandidateResults{}, fmt.Errorf("persist cursor state: %w", err)
	}
	metrics.CursorsMinted.Inc()

	s.logger.Debug("minted cursor",
		zap.String("cursor", cursorID),
		zap.Int("hits", len(page.HitIDs)),
		zap.Int("limit", limit),
	)

	return results.WithCursor(cursorID), nil
}
