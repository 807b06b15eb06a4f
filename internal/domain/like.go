package domain

import "time"

// LikeType discriminates the like target table.
type LikeType string

const (
	LikeTypePost    LikeType = "post"
	LikeTypeComment LikeType = "comment"
)

// Like is a (user, type, target) tuple. At most one like per user per target
// per type; the executor check-then-inserts and treats a duplicate as a
// terminal failure of that action.
type Like struct {
	ID        int64
	UserID    int64
	Type      LikeType
	TargetID  int64
	CreatedAt time.Time
}

// LikeCount is the denormalized running counter shown on listings.
type LikeCount struct {
	TargetID  int64
	Type      LikeType
	Count     int
	UpdatedAt time.Time
}
