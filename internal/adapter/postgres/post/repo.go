// Package post implements the Post repository using PostgreSQL.
// It covers the post row itself plus its dependent vote_options,
// vote_choices, and vote_history rows.
package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/pollboard/pollboard-backend/internal/adapter/postgres"
	"github.com/pollboard/pollboard-backend/internal/domain"
)

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new post repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const postColumns = "id, user_id, title, content, category_id, source_url, thumbnail_url, og_image, status, created_at, updated_at"

// GetByID returns a post by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select(postColumns).
		From("posts").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get post: %w", err)
	}

	p, err := scanPost(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}
	return p, nil
}

// ExistsBySourceURL reports whether any post was created from the given
// source article URL. This is the authoritative dedup check.
func (r *Repo) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("1").
		From("posts").
		Where("source_url = ?", sourceURL).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build source_url check: %w", err)
	}

	var one int
	err = q.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check source_url: %w", err)
	}
	return true, nil
}

// Create inserts a new post and returns it with the generated id and
// timestamps.
func (r *Repo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("posts").
		Columns("user_id", "title", "content", "category_id", "source_url", "thumbnail_url", "og_image", "status").
		Values(p.UserID, p.Title, p.Content, p.CategoryID, p.SourceURL, p.ThumbnailURL, p.OGImage, p.Status).
		Suffix("RETURNING " + postColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert post: %w", err)
	}

	created, err := scanPost(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "post", 0)
	}
	return created, nil
}

// Delete removes a post row. Used only as the compensation step when the
// vote-options insert fails after the post insert succeeded.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Delete("posts").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete post: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "post", id)
	}
	return nil
}

// ListRecentPublished returns the newest published posts, newest first.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListRecentPublished(ctx context.Context, limit int) ([]domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select(postColumns).
		From("posts").
		Where("status = ?", domain.PostStatusPublished).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list recent: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// CreateVoteOptions inserts the per-post vote configuration row.
func (r *Repo) CreateVoteOptions(ctx context.Context, opts domain.VoteOptions) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("vote_options").
		Columns("post_id", "multi", "random", "close_at").
		Values(opts.PostID, opts.Multi, opts.Random, opts.CloseAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert vote_options: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "vote_options", opts.PostID)
	}
	return nil
}

// CreateChoice inserts one answer choice with a zero vote count.
func (r *Repo) CreateChoice(ctx context.Context, postID int64, label string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("vote_choices").
		Columns("post_id", "choice", "vote_count").
		Values(postID, label, 0).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert choice: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "vote_choice", postID)
	}
	return id, nil
}

// ListChoices returns all answer choices of a post in insertion order.
func (r *Repo) ListChoices(ctx context.Context, postID int64) ([]domain.VoteChoice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("id, post_id, choice, vote_count").
		From("vote_choices").
		Where("post_id = ?", postID).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list choices: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list choices: %w", err)
	}
	defer rows.Close()

	choices := []domain.VoteChoice{}
	for rows.Next() {
		var c domain.VoteChoice
		if err := rows.Scan(&c.ID, &c.PostID, &c.Label, &c.VoteCount); err != nil {
			return nil, fmt.Errorf("scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// InsertVote appends one vote_history row.
func (r *Repo) InsertVote(ctx context.Context, v domain.VoteRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("vote_history").
		Columns("post_id", "user_id", "choice_id").
		Values(v.PostID, v.UserID, v.ChoiceID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert vote: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "vote", v.PostID)
	}
	return nil
}

// IncrementVoteCount bumps a choice's running counter atomically in the
// store. Concurrent engagement actions must never read-modify-write this
// field.
func (r *Repo) IncrementVoteCount(ctx context.Context, choiceID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, "UPDATE vote_choices SET vote_count = vote_count + 1 WHERE id = $1", choiceID)
	if err != nil {
		return postgres.MapError(err, "vote_choice", choiceID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vote_choice %d: %w", choiceID, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		p         domain.Post
		status    string
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CategoryID,
		&p.SourceURL, &p.ThumbnailURL, &p.OGImage, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PostStatus(status)
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return &p, nil
}
