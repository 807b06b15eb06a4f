// Package category implements the category and keyword repositories using
// PostgreSQL, including the post_keywords join table.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/pollboard/pollboard-backend/internal/adapter/postgres"
	"github.com/pollboard/pollboard-backend/internal/domain"
)

// Repo provides category and keyword persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns all categories ordered by id. The set is small and editorial;
// the resolver matches against it in memory.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("id, name").
		From("categories").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	cats := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// ListKeywords returns all known keywords ordered by id.
func (r *Repo) ListKeywords(ctx context.Context) ([]domain.Keyword, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("id, keyword, slug, created_at").
		From("keywords").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list keywords: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	defer rows.Close()

	kws := []domain.Keyword{}
	for rows.Next() {
		var k domain.Keyword
		if err := rows.Scan(&k.ID, &k.Name, &k.Slug, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		kws = append(kws, k)
	}
	return kws, rows.Err()
}

// FindKeywordByName returns a keyword by exact name, or domain.ErrNotFound.
func (r *Repo) FindKeywordByName(ctx context.Context, name string) (*domain.Keyword, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("id, keyword, slug, created_at").
		From("keywords").
		Where("keyword = ?", name).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find keyword: %w", err)
	}

	var k domain.Keyword
	err = q.QueryRow(ctx, sql, args...).Scan(&k.ID, &k.Name, &k.Slug, &k.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("keyword %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find keyword: %w", err)
	}
	return &k, nil
}

// CreateKeyword inserts a new keyword and returns it.
func (r *Repo) CreateKeyword(ctx context.Context, name, slug string) (*domain.Keyword, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("keywords").
		Columns("keyword", "slug").
		Values(name, slug).
		Suffix("RETURNING id, keyword, slug, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert keyword: %w", err)
	}

	var k domain.Keyword
	err = q.QueryRow(ctx, sql, args...).Scan(&k.ID, &k.Name, &k.Slug, &k.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "keyword", 0)
	}
	return &k, nil
}

// LinkPostKeyword associates a keyword with a post. A duplicate link maps to
// domain.ErrAlreadyExists via the join table's primary key.
func (r *Repo) LinkPostKeyword(ctx context.Context, postID, keywordID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("post_keywords").
		Columns("post_id", "keyword_id").
		Values(postID, keywordID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build link keyword: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "post_keyword", postID)
	}
	return nil
}
