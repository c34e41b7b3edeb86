package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Get_NotFoundBeforeFirstUpsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserRepo(db)

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteUserRepo(db)

	u := testutil.NewTestUser(
		testutil.WithUserTimezone("America/New_York"),
		testutil.WithUserWeekBoundary(domain.WeekSunSat),
		testutil.WithUserDefaultPrivacy(domain.PrivacyInternal),
	)
	u.Email = testutil.Ptr("me@example.com")
	u.WorkingHoursStart = testutil.Ptr(9)
	u.WorkingHoursEnd = testutil.Ptr(17)
	u.CommunicationStyle = testutil.Ptr("direct, brief")

	require.NoError(t, repo.Upsert(ctx, u))
	assert.EqualValues(t, 1, u.ID, "profile row is pinned to id 1")

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Test User", got.FullName)
	require.NotNil(t, got.Email)
	assert.Equal(t, "me@example.com", *got.Email)
	assert.Equal(t, "America/New_York", got.Timezone)
	assert.Equal(t, domain.WeekSunSat, got.WeekBoundary)
	assert.Equal(t, domain.PrivacyInternal, got.DefaultPrivacy)
	require.NotNil(t, got.WorkingHoursStart)
	assert.Equal(t, 9, *got.WorkingHoursStart)
	require.NotNil(t, got.WorkingHoursEnd)
	assert.Equal(t, 17, *got.WorkingHoursEnd)
	require.NotNil(t, got.CommunicationStyle)
	assert.Equal(t, "direct, brief", *got.CommunicationStyle)
	assert.Nil(t, got.WorkApproach)
	assert.Nil(t, got.ProfileLastUpdated)
}

func TestUserRepo_Upsert_SecondWritePreservesCreatedAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteUserRepo(db)

	u := testutil.NewTestUser()
	require.NoError(t, repo.Upsert(ctx, u))

	first, err := repo.Get(ctx)
	require.NoError(t, err)

	first.FullName = "Renamed User"
	first.Timezone = "Europe/Berlin"
	require.NoError(t, repo.Upsert(ctx, first))

	second, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", second.FullName)
	assert.Equal(t, "Europe/Berlin", second.Timezone)
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "created_at should survive the update")
	assert.False(t, second.UpdatedAt.Before(second.CreatedAt))
}
