// Package autopilot implements persistence for the autonomous subsystem:
// runtime settings, append-only execution logs, processed-article
// bookkeeping, and the advisory run lock.
package autopilot

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

// Advisory lock keys for pg_try_advisory_lock. Arbitrary but stable;
// shared by every instance pointed at the same database.
const (
	CreatorRunLockKey    = 0x706f6c6c01
	EngagementRunLockKey = 0x706f6c6c02
)

// Repo provides autopilot persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new autopilot repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// CreatorSettings loads the raw creation settings rows. Always a fresh read;
// the schedulers never cache settings across invocations.
func (r *Repo) CreatorSettings(ctx context.Context) (map[string]string, error) {
	return r.loadSettings(ctx, "auto_creator_settings")
}

// EngagementSettings loads the raw engagement settings rows.
func (r *Repo) EngagementSettings(ctx context.Context) (map[string]string, error) {
	return r.loadSettings(ctx, "auto_engagement_settings")
}

func (r *Repo) loadSettings(ctx context.Context, table string) (map[string]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("setting_key, setting_value").
		From(table).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load settings: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// ---------------------------------------------------------------------------
// Execution logs (append-only)
// ---------------------------------------------------------------------------

// AppendCreatorLog inserts one creation log row. Rows are never updated.
func (r *Repo) AppendCreatorLog(ctx context.Context, e domain.CreatorLogEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("auto_creator_logs").
		Columns("execution_kind", "status", "source_url", "article_url", "post_id", "message", "error_message").
		Values(e.ExecutionKind, e.Status, e.SourceURL, e.ArticleURL, e.PostID, e.Message, e.ErrorMessage).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert creator log: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("append creator log: %w", err)
	}
	return nil
}

// LastCreatorSuccess returns the timestamp of the most recent successful
// creation log entry, or nil when none exists.
func (r *Repo) LastCreatorSuccess(ctx context.Context) (*time.Time, error) {
	return r.lastSuccess(ctx, "auto_creator_logs")
}

// AppendEngagementLog inserts one engagement log row. Nullable columns let
// the error path log without a parsed request body.
func (r *Repo) AppendEngagementLog(ctx context.Context, e domain.EngagementLogEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("auto_engagement_logs").
		Columns("execution_kind", "status", "post_id", "user_id", "action_type", "message", "error_message").
		Values(e.ExecutionKind, e.Status, e.PostID, e.UserID, e.Action, e.Message, e.ErrorMessage).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert engagement log: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("append engagement log: %w", err)
	}
	return nil
}

// LastEngagementSuccess returns the timestamp of the most recent successful
// engagement log entry, or nil when none exists.
func (r *Repo) LastEngagementSuccess(ctx context.Context) (*time.Time, error) {
	return r.lastSuccess(ctx, "auto_engagement_logs")
}

func (r *Repo) lastSuccess(ctx context.Context, table string) (*time.Time, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Select("executed_at").
		From(table).
		Where("status = ?", domain.ExecutionStatusSuccess).
		OrderBy("executed_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build last success: %w", err)
	}

	var ts time.Time
	err = q.QueryRow(ctx, sql, args...).Scan(&ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last success from %s: %w", table, err)
	}
	return &ts, nil
}

// ---------------------------------------------------------------------------
// Processed articles
// ---------------------------------------------------------------------------

// RecordProcessed marks an article URL as handled. The article_url unique
// constraint keeps at most one row per URL; a duplicate maps to
// domain.ErrAlreadyExists.
func (r *Repo) RecordProcessed(ctx context.Context, p domain.ProcessedArticle) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Insert("auto_creator_processed").
		Columns("source_url", "article_url", "article_title", "post_id").
		Values(p.SourceURL, p.ArticleURL, p.ArticleTitle, p.PostID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build record processed: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "processed_article", 0)
	}
	return nil
}

// BackfillProcessedPostID sets the post id on an already-recorded article.
func (r *Repo) BackfillProcessedPostID(ctx context.Context, articleURL string, postID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder.
		Update("auto_creator_processed").
		Set("post_id", postID).
		Where("article_url = ?", articleURL).
		ToSql()
	if err != nil {
		return fmt.Errorf("build backfill processed: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("backfill processed %q: %w", articleURL, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Run lock
// ---------------------------------------------------------------------------

// AcquireCreatorLock guards the creation scheduler against overlapping runs.
func (r *Repo) AcquireCreatorLock(ctx context.Context) (release func(), acquired bool, err error) {
	return r.AcquireRunLock(ctx, CreatorRunLockKey)
}

// AcquireEngagementLock guards the engagement scheduler against overlapping
// ticks.
func (r *Repo) AcquireEngagementLock(ctx context.Context) (release func(), acquired bool, err error) {
	return r.AcquireRunLock(ctx, EngagementRunLockKey)
}

// AcquireRunLock takes a session-level advisory lock on a dedicated pooled
// connection. It narrows (but does not close — see the scheduler docs) the
// window in which two overlapping ticks could both pass the interval gate.
// When acquired is true, the caller must invoke release exactly once.
func (r *Repo) AcquireRunLock(ctx context.Context, key int64) (release func(), acquired bool, err error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection for run lock: %w", err)
	}

	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}

	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	release = func() {
		// Unlock must run on the same connection that took the lock.
		_, _ = conn.Exec(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", key)
		conn.Release()
	}
	return release, true, nil
}
