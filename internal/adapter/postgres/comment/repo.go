// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/pollboard/pollboard-backend/internal/adapter/postgres"
	"github.com/pollboard/pollboard-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const commentColumns = "id, post_id, user_id, parent_id, content, status, created_at"

// Create inserts a comment (or reply, when ParentID is set) and returns it
// with the generated id.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("comments").
		Columns("post_id", "user_id", "parent_id", "content", "status").
		Values(c.PostID, c.UserID, c.ParentID, c.Content, c.Status).
		Suffix("RETURNING " + commentColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert comment: %w", err)
	}

	created, err := scanComment(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.PostID)
	}
	return created, nil
}

// ListTopLevelApproved returns approved comments with no parent on a post,
// the only valid reply targets. The candidate set is capped.
func (r *Repo) ListTopLevelApproved(ctx context.Context, postID int64, limit int) ([]domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select(commentColumns).
		From("comments").
		Where("post_id = ?", postID).
		Where("status = ?", domain.CommentStatusApproved).
		Where("(parent_id IS NULL OR parent_id = 0)").
		OrderBy("id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list top-level comments: %w", err)
	}

	return r.queryComments(ctx, q, sql, args)
}

// ListApprovedExcludingUser returns approved comments on a post not authored
// by the given user, capped. Used to pick like-comment targets so actors
// never like their own comments.
func (r *Repo) ListApprovedExcludingUser(ctx context.Context, postID, userID int64, limit int) ([]domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select(commentColumns).
		From("comments").
		Where("post_id = ?", postID).
		Where("status = ?", domain.CommentStatusApproved).
		Where("user_id <> ?", userID).
		OrderBy("id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list likeable comments: %w", err)
	}

	return r.queryComments(ctx, q, sql, args)
}

func (r *Repo) queryComments(ctx context.Context, q postgres.Querier, sql string, args []any) ([]domain.Comment, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var (
		c      domain.Comment
		status string
	)
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.ParentID, &c.Content, &status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = domain.CommentStatus(status)
	return &c, nil
}
