package domain

import (
	"fmt"
	"time"
)

// ExecutionKind records how an autopilot run was triggered.
type ExecutionKind string

const (
	ExecutionKindAuto   ExecutionKind = "auto"
	ExecutionKindManual ExecutionKind = "manual"
)

// ExecutionStatus is the outcome recorded in an autopilot log row.
type ExecutionStatus string

const (
	// ExecutionStatusSuccess: the attempt produced its intended effect.
	ExecutionStatusSuccess ExecutionStatus = "success"
	// ExecutionStatusFailed: a precondition or per-item step failed.
	ExecutionStatusFailed ExecutionStatus = "failed"
	// ExecutionStatusError: an unexpected error escaped to the top level.
	ExecutionStatusError ExecutionStatus = "error"
)

// CreatorLogEntry is one append-only record of a creation attempt.
// Rows are never updated or deleted.
type CreatorLogEntry struct {
	ID            int64
	ExecutionKind ExecutionKind
	Status        ExecutionStatus
	SourceURL     string
	ArticleURL    string
	PostID        *int64
	Message       string
	ErrorMessage  string
	ExecutedAt    time.Time
}

// EngagementLogEntry is one append-only record of an engagement attempt.
// PostID, UserID, and Action are pointers because the error path must be
// able to log even when the request was never parsed.
type EngagementLogEntry struct {
	ID            int64
	ExecutionKind ExecutionKind
	Status        ExecutionStatus
	PostID        *int64
	UserID        *int64
	Action        *EngagementAction
	Message       string
	ErrorMessage  string
	ExecutedAt    time.Time
}

// ProcessedArticle maps a source article URL to the post it produced.
// PostID stays nil until the post is created, then is backfilled. The row is
// an audit/backfill record only; posts.source_url is the dedup source of
// truth.
type ProcessedArticle struct {
	ID           int64
	SourceURL    string
	ArticleURL   string
	ArticleTitle string
	PostID       *int64
	CreatedAt    time.Time
}

// EngagementAction is one simulated engagement step.
type EngagementAction string

const (
	ActionVote        EngagementAction = "vote"
	ActionComment     EngagementAction = "comment"
	ActionReply       EngagementAction = "reply"
	ActionLikePost    EngagementAction = "like_post"
	ActionLikeComment EngagementAction = "like_comment"
)

// EngagementActions lists every valid action in a stable order.
func EngagementActions() []EngagementAction {
	return []EngagementAction{ActionVote, ActionComment, ActionReply, ActionLikePost, ActionLikeComment}
}

// ParseEngagementAction validates a wire-level action type string.
func ParseEngagementAction(s string) (EngagementAction, error) {
	switch EngagementAction(s) {
	case ActionVote, ActionComment, ActionReply, ActionLikePost, ActionLikeComment:
		return EngagementAction(s), nil
	}
	return "", fmt.Errorf("action type %q: %w", s, ErrValidation)
}
