package engagement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pollboard/pollboard-backend/internal/domain"
)

// Result is the outcome of one scheduled tick. Ran is false when a gate
// skipped the tick; Reason then names the gate.
type Result struct {
	Ran     bool
	Reason  string
	Message string
}

// RunScheduled executes one engagement tick: gate checks, then a single
// weighted-random action by a weighted-random actor against a random recent
// published post.
//
// Overlapping ticks are excluded by an advisory lock; the interval gate
// alone is a read-then-act check with a race window.
func (s *Service) RunScheduled(ctx context.Context) (Result, error) {
	release, acquired, err := s.store.AcquireEngagementLock(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("acquire run lock: %w", err)
	}
	if !acquired {
		return Result{Ran: false, Reason: "already running"}, nil
	}
	defer release()

	raw, err := s.store.EngagementSettings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load engagement settings: %w", err)
	}
	settings := domain.ParseEngagementSettings(raw)

	if !settings.Enabled {
		return Result{Ran: false, Reason: "disabled"}, nil
	}

	now := s.now()
	if domain.InBlackout(settings.BlackoutStartHour, settings.BlackoutEndHour, now.Hour()) {
		return Result{Ran: false, Reason: "blackout"}, nil
	}

	last, err := s.store.LastEngagementSuccess(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load last success: %w", err)
	}
	if !domain.IntervalElapsed(last, now, settings.IntervalMinutes, settings.JitterMinutes) {
		return Result{Ran: false, Reason: "interval"}, nil
	}

	posts, err := s.posts.ListRecentPublished(ctx, settings.RecentPostsLimit)
	if err != nil {
		return Result{}, fmt.Errorf("list recent posts: %w", err)
	}
	if len(posts) == 0 {
		s.appendLog(ctx, domain.EngagementLogEntry{
			ExecutionKind: domain.ExecutionKindAuto,
			Status:        domain.ExecutionStatusFailed,
			ErrorMessage:  "no published posts to engage with",
		})
		return Result{Ran: false, Reason: "no posts"}, nil
	}

	post := posts[s.randInt(len(posts))]

	action := domain.ActionVote
	if total := totalWeight(settings.ActionWeights); total > 0 {
		action = pickAction(settings.ActionWeights, s.randInt(total))
	}

	s.log.InfoContext(ctx, "engagement tick",
		slog.Int64("post_id", post.ID),
		slog.String("action", string(action)),
	)

	msg, err := s.execute(ctx, domain.ExecutionKindAuto, settings, post.ID, action)
	if err != nil {
		// Already logged by execute; an action failure is not a tick failure.
		return Result{Ran: true, Reason: "action failed", Message: err.Error()}, nil
	}

	return Result{Ran: true, Reason: "completed", Message: msg}, nil
}
