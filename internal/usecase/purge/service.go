// Package purge removes every document of an application scope across the
// physical indexes behind the logical alias.
package purge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/appindex/internal/domain"
	"github.com/kailas-cloud/appindex/internal/metrics"
)

// Outcome is the per-index completion of one fan-out branch. Err is set when
// that branch's delete call failed outright; shard-level failures are
// reported in ShardFailures with the branch still counting as completed.
type Outcome struct {
	Index         string
	Deleted       int64
	ShardFailures []domain.ShardFailure
	Err           error
}

// Service coordinates application bulk deletes.
type Service struct {
	backend Backend
	logger  *zap.Logger
}

// New creates a purge service.
func New(backend Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}

// DeleteApplication deletes all documents of the application scope. One
// delete-by-query runs per physical index, in parallel, each addressed to the
// alias's write target. A failing branch is logged and reported in its
// outcome; it never cancels its siblings. Best effort, not transactional.
func (s *Service) DeleteApplication(ctx context.Context, scope domain.ApplicationScope) ([]Outcome, error) {
	if scope.ApplicationID() == uuid.Nil {
		return nil, fmt.Errorf("%w: application scope is required", domain.ErrInvalidArgument)
	}

	metrics.DeleteApplicationTotal.Inc()
	timer := prometheus.NewTimer(metrics.DeleteApplicationDuration)
	defer timer.ObserveDuration()

	indexes, err := s.backend.PhysicalIndexes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list physical indexes: %w", domain.ErrBackendUnavailable, err)
	}

	outcomes := make([]Outcome, len(indexes))

	var g errgroup.Group
	for i, index := range indexes {
		g.Go(func() error {
			outcomes[i] = s.deleteOne(ctx, scope, index)
			return nil
		})
	}
	// Branches report through their outcome slot, never through the group.
	_ = g.Wait()

	var errored int
	for _, o := range outcomes {
		if o.Err != nil {
			errored++
		}
	}

	s.logger.Info("application delete completed",
		zap.String("application_id", scope.ApplicationID().String()),
		zap.Int("indexes", len(indexes)),
		zap.Int("errored", errored),
	)

	return outcomes, nil
}

// deleteOne runs one fan-out branch and logs its shard-level failures.
func (s *Service) deleteOne(ctx context.Context, scope domain.ApplicationScope, index string) Outcome {
	deletion, err := s.backend.DeleteApplicationDocuments(ctx, scope)
	if err != nil {
		s.logger.Error("failed on delete index",
			zap.String("application_id", scope.ApplicationID().String()),
			zap.String("index", index),
			zap.Error(err),
		)
		return Outcome{Index: index, Err: err}
	}

	for _, f := range deletion.ShardFailures {
		s.logger.Error("delete by query shard failure",
			zap.String("application_id", scope.ApplicationID().String()),
			zap.String("index", f.Index),
			zap.Int("shard", f.Shard),
			zap.Int("status", f.Status),
			zap.String("reason", f.Reason),
		)
	}

	return Outcome{Index: index, Deleted: deletion.Deleted, ShardFailures: deletion.ShardFailures}
}
