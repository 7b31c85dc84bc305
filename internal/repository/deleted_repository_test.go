package repository_test

import (
	"context"
	"testing"
	"time"

	"egressguard/internal/model"
	"egressguard/internal/repository"
	"egressguard/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestDeletedRequestRepository_InsertAndList(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewDeletedRequestRepository(db)
	ctx := context.Background()

	entry := &model.DeletedRequest{
		Host:       "api.example.com",
		ExampleURL: "https://api.example.com/v1",
		WasBlocked: true,
		DeletedBy:  "admin",
	}
	require.NoError(t, repo.Insert(ctx, entry))
	require.NotZero(t, entry.ID)
	require.False(t, entry.DeletedAt.IsZero())

	entries, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "api.example.com", entries[0].Host)
	require.Equal(t, "https://api.example.com/v1", entries[0].ExampleURL)
	require.True(t, entries[0].WasBlocked)
	require.Equal(t, "admin", entries[0].DeletedBy)
	require.WithinDuration(t, time.Now().UTC(), entries[0].DeletedAt, 5*time.Second)
}

func TestDeletedRequestRepository_CountByHost(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewDeletedRequestRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Insert(ctx, &model.DeletedRequest{Host: "a.test"}))
	}
	require.NoError(t, repo.Insert(ctx, &model.DeletedRequest{Host: "b.test"}))

	count, err := repo.CountByHost(ctx, "a.test")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	count, err = repo.CountByHost(ctx, "missing.test")
	require.NoError(t, err)
	require.Zero(t, count)
}
