package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/mosaic/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployerRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployerRepo(db)

	e := testutil.NewTestEmployer("Initech", testutil.WithEmployerCurrent())
	e.ContactInfo = testutil.Ptr("hr@initech.example")
	e.Notes = testutil.Ptr("W2 through April")
	e.Tags = []string{"fulltime"}

	require.NoError(t, repo.Create(ctx, e))
	require.NotZero(t, e.ID, "create should assign an id")
	assert.False(t, e.CreatedAt.IsZero(), "create should stamp created_at")

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Initech", got.Name)
	assert.True(t, got.IsCurrent)
	assert.False(t, got.IsSelf)
	require.NotNil(t, got.ContactInfo)
	assert.Equal(t, "hr@initech.example", *got.ContactInfo)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "W2 through April", *got.Notes)
	assert.Equal(t, []string{"fulltime"}, got.Tags)
	assert.Equal(t, e.CreatedAt, got.CreatedAt)
}

func TestEmployerRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEmployerRepo(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployerRepo_Create_NilOptionals(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployerRepo(db)

	e := testutil.NewTestEmployer("Freelance", testutil.WithEmployerSelf())
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSelf)
	assert.Nil(t, got.ContactInfo)
	assert.Nil(t, got.Notes)
	assert.Empty(t, got.Tags)
	assert.NotNil(t, got.Tags, "tags should scan to an empty slice, not nil")
}

func TestEmployerRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployerRepo(db)

	e := testutil.NewTestEmployer("Initech", testutil.WithEmployerCurrent())
	require.NoError(t, repo.Create(ctx, e))

	e.IsCurrent = false
	e.Notes = testutil.Ptr("contract ended")
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, got.IsCurrent)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "contract ended", *got.Notes)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt), "update should refresh updated_at")
}

func TestEmployerRepo_List_OrderedByCreation(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployerRepo(db)

	first := testutil.NewTestEmployer("First")
	second := testutil.NewTestEmployer("Second")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}
