package engagement

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/pollboard/pollboard-backend/internal/domain"
)

type userRepo interface {
	ListIDsByStatus(ctx context.Context, status, limit int) ([]int64, error)
}

// Selector picks a synthetic actor for one engagement or creation step.
// A weighted coin-flip chooses between the synthetic-member pool and the
// editor pool, then one id is drawn uniformly from the chosen pool. Pools
// are capped, so selection is a bounded approximation of uniform.
type Selector struct {
	users     userRepo
	poolLimit int
	randInt   func(n int) int
	log       *slog.Logger
}

// NewSelector creates a Selector. poolLimit caps the candidate list per
// pool.
func NewSelector(log *slog.Logger, users userRepo, poolLimit int) *Selector {
	return &Selector{
		users:     users,
		poolLimit: poolLimit,
		randInt:   rand.IntN,
		log:       log.With("service", "actor_selector"),
	}
}

// Select returns one actor id. probability is the percent chance of drawing
// from the synthetic-member pool rather than the editor pool. Fails when the
// chosen pool is empty.
func (s *Selector) Select(ctx context.Context, probability int) (int64, error) {
	status := domain.UserStatusEditor
	if s.randInt(100) < probability {
		status = domain.UserStatusSyntheticMember
	}

	ids, err := s.users.ListIDsByStatus(ctx, status, s.poolLimit)
	if err != nil {
		return 0, fmt.Errorf("list actor pool: %w", err)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("actor pool for status %d is empty: %w", status, domain.ErrNotFound)
	}

	actorID := ids[s.randInt(len(ids))]

	s.log.DebugContext(ctx, "actor selected",
		slog.Int64("actor_id", actorID),
		slog.Int("pool_status", status),
	)

	return actorID, nil
}
