package domain

import "time"

// PostStatus is the moderation state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusPending   PostStatus = "pending"
	PostStatusTrash     PostStatus = "trash"
)

// Post is the primary content entity: a survey question with vote choices.
// SourceURL is set only for posts created from an external article, which is
// also what the dedup check keys on.
type Post struct {
	ID           int64
	UserID       int64
	Title        string
	Content      string
	CategoryID   *int64
	SourceURL    *string
	ThumbnailURL *string
	OGImage      *string
	Status       PostStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VoteOptions configures voting behavior for one post. Created atomically
// with the post by the assembler.
type VoteOptions struct {
	PostID  int64
	Multi   bool
	Random  bool
	CloseAt *time.Time
}

// VoteChoice is one answer option of a post. VoteCount is maintained with an
// atomic increment in the store, never read-modify-write.
type VoteChoice struct {
	ID        int64
	PostID    int64
	Label     string
	VoteCount int
}

// VoteRecord is one cast vote (vote_history row).
type VoteRecord struct {
	ID        int64
	PostID    int64
	UserID    int64
	ChoiceID  int64
	CreatedAt time.Time
}
