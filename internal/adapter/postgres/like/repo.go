// Package like implements the Like repository using PostgreSQL.
// It covers likes and the denormalized like_counts cache.
package like

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/pollboard/pollboard-backend/internal/adapter/postgres"
	"github.com/pollboard/pollboard-backend/internal/domain"
)

// Repo provides like persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new like repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Exists reports whether the user already liked the target.
func (r *Repo) Exists(ctx context.Context, userID int64, likeType domain.LikeType, targetID int64) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("1").
		From("likes").
		Where("user_id = ?", userID).
		Where("like_type = ?", likeType).
		Where("target_id = ?", targetID).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build like check: %w", err)
	}

	var one int
	err = q.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return true, nil
}

// Create inserts a like row. The (user_id, like_type, target_id) unique
// constraint maps a concurrent duplicate to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, l domain.Like) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("likes").
		Columns("user_id", "like_type", "target_id").
		Values(l.UserID, l.Type, l.TargetID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert like: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "like", l.TargetID)
	}
	return nil
}

// IncrementCount bumps the like_counts cache row by one, creating it on
// first like. The upsert is atomic, so overlapping engagement actions
// cannot lose updates.
func (r *Repo) IncrementCount(ctx context.Context, likeType domain.LikeType, targetID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const sql = `
INSERT INTO like_counts (target_id, like_type, like_count, updated_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (target_id, like_type)
DO UPDATE SET like_count = like_counts.like_count + 1, updated_at = now()`

	if _, err := q.Exec(ctx, sql, targetID, likeType); err != nil {
		return postgres.MapError(err, "like_count", targetID)
	}
	return nil
}
