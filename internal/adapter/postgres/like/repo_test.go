package like_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollboard/pollboard-backend/internal/adapter/postgres/like"
	"github.com/pollboard/pollboard-backend/internal/adapter/postgres/testhelper"
	"github.com/pollboard/pollboard-backend/internal/domain"
)

func TestRepo_ExistsAndCreate(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool, domain.UserStatusEditor)
	liker := testhelper.SeedUser(t, pool, domain.UserStatusSyntheticMember)
	post := testhelper.SeedPost(t, pool, author.ID)

	exists, err := repo.Exists(ctx, liker.ID, domain.LikeTypePost, post.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, domain.Like{
		UserID:   liker.ID,
		Type:     domain.LikeTypePost,
		TargetID: post.ID,
	}))

	exists, err = repo.Exists(ctx, liker.ID, domain.LikeTypePost, post.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepo_CreateDuplicate(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool, domain.UserStatusEditor)
	liker := testhelper.SeedUser(t, pool, domain.UserStatusSyntheticMember)
	post := testhelper.SeedPost(t, pool, author.ID)

	l := domain.Like{UserID: liker.ID, Type: domain.LikeTypePost, TargetID: post.ID}

	require.NoError(t, repo.Create(ctx, l))

	// The unique constraint, not the caller's pre-check, is the real guard.
	err := repo.Create(ctx, l)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	var rows int
	err = pool.QueryRow(ctx,
		"SELECT count(*) FROM likes WHERE user_id = $1 AND like_type = $2 AND target_id = $3",
		liker.ID, domain.LikeTypePost, post.ID,
	).Scan(&rows)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}

func TestRepo_IncrementCount_Upsert(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool, domain.UserStatusEditor)
	post := testhelper.SeedPost(t, pool, author.ID)

	// First call creates the cache row, the second updates it.
	require.NoError(t, repo.IncrementCount(ctx, domain.LikeTypePost, post.ID))
	require.NoError(t, repo.IncrementCount(ctx, domain.LikeTypePost, post.ID))

	var count int
	err := pool.QueryRow(ctx,
		"SELECT like_count FROM like_counts WHERE target_id = $1 AND like_type = $2",
		post.ID, domain.LikeTypePost,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRepo_IncrementCount_Concurrent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool, domain.UserStatusEditor)
	post := testhelper.SeedPost(t, pool, author.ID)

	const workers = 20

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- repo.IncrementCount(ctx, domain.LikeTypeComment, post.ID)
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	var count int
	err := pool.QueryRow(ctx,
		"SELECT like_count FROM like_counts WHERE target_id = $1 AND like_type = $2",
		post.ID, domain.LikeTypeComment,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, workers, count)
}
