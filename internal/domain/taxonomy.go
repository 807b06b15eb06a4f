package domain

import "time"

// Category is a fixed editorial category. Posts reference at most one.
type Category struct {
	ID   int64
	Name string
}

// Keyword is a free-form tag linked to posts via the post_keywords table.
type Keyword struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}
