package domain

import "time"

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusRejected CommentStatus = "rejected"
)

// Comment belongs to exactly one post. A nil ParentID means top-level; a
// non-nil ParentID means the comment is a reply to a top-level comment on
// the same post.
type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	ParentID  *int64
	Content   string
	Status    CommentStatus
	CreatedAt time.Time
}

// IsTopLevel reports whether the comment can be a reply target.
func (c Comment) IsTopLevel() bool {
	return c.ParentID == nil || *c.ParentID == 0
}
