package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRepo_CreateAndGetByID_FreeStanding(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteNoteRepo(db)

	n := testutil.NewTestNote("Remember to invoice in euros", testutil.WithNoteTags("billing"))
	require.NoError(t, repo.Create(ctx, n))
	require.NotZero(t, n.ID)

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Remember to invoice in euros", got.Text)
	assert.Equal(t, domain.PrivacyPrivate, got.PrivacyLevel)
	assert.Nil(t, got.EntityType)
	assert.Nil(t, got.EntityID)
	assert.Equal(t, []string{"billing"}, got.Tags)
}

func TestNoteRepo_CreateAndGetByID_Attached(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	personRepo := NewSQLitePersonRepo(db)
	repo := NewSQLiteNoteRepo(db)

	person := testutil.NewTestPerson("Dana Reyes")
	require.NoError(t, personRepo.Create(ctx, person))

	n := testutil.NewTestNote("Prefers async updates",
		testutil.WithNoteEntity(domain.EntityPerson, person.ID),
		testutil.WithNotePrivacy(domain.PrivacyInternal))
	require.NoError(t, repo.Create(ctx, n))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EntityType)
	assert.Equal(t, domain.EntityPerson, *got.EntityType)
	require.NotNil(t, got.EntityID)
	assert.Equal(t, person.ID, *got.EntityID)
	assert.Equal(t, domain.PrivacyInternal, got.PrivacyLevel)
}

func TestNoteRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoteRepo_Update_ReattachAndDetach(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	clientRepo := NewSQLiteClientRepo(db)
	repo := NewSQLiteNoteRepo(db)

	client := testutil.NewTestClient("Acme Corp")
	require.NoError(t, clientRepo.Create(ctx, client))

	n := testutil.NewTestNote("Scoping call notes",
		testutil.WithNoteEntity(domain.EntityClient, client.ID))
	require.NoError(t, repo.Create(ctx, n))

	n.Text = "Scoping call notes (revised)"
	n.EntityType = nil
	n.EntityID = nil
	require.NoError(t, repo.Update(ctx, n))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scoping call notes (revised)", got.Text)
	assert.Nil(t, got.EntityType, "detaching should persist NULLs for both halves of the pair")
	assert.Nil(t, got.EntityID)
}
