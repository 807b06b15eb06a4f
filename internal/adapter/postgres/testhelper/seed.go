package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pollboard/pollboard-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given actor status and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool, status int) domain.User {
	t.Helper()
	ctx := context.Background()

	user := domain.User{
		Name:    "Test User " + uniqueSuffix(),
		Profile: "seeded test account",
		Status:  status,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (name, profile, status) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		user.Name, user.Profile, user.Status,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedCategory creates a category with a unique name and returns it.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string) domain.Category {
	t.Helper()
	ctx := context.Background()

	cat := domain.Category{Name: name + "-" + uniqueSuffix()}
	err := pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`,
		cat.Name,
	).Scan(&cat.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return cat
}

// SeedPost creates a published post owned by the given user, with two vote
// choices, and returns the post.
func SeedPost(t *testing.T, pool *pgxpool.Pool, userID int64) domain.Post {
	t.Helper()
	ctx := context.Background()

	p := domain.Post{
		UserID:  userID,
		Title:   "Seeded survey " + uniqueSuffix(),
		Content: "What do you think?",
		Status:  domain.PostStatusPublished,
	}
	err := pool.QueryRow(ctx,
		`INSERT INTO posts (user_id, title, content, status) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		p.UserID, p.Title, p.Content, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedPost: %v", err)
	}

	for _, label := range []string{"Yes", "No"} {
		if _, err := pool.Exec(ctx,
			`INSERT INTO vote_choices (post_id, choice, vote_count) VALUES ($1, $2, 0)`,
			p.ID, label,
		); err != nil {
			t.Fatalf("testhelper: SeedPost choice: %v", err)
		}
	}

	return p
}
