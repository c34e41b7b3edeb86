package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/mosaic/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLitePersonRepo(db)

	p := testutil.NewTestPerson("Dana Reyes",
		testutil.WithPersonEmail("dana@example.com"),
		testutil.WithStakeholder(),
		testutil.WithPersonCompany("Acme Corp"),
		testutil.WithPersonTags("engineering", "contact"),
	)
	p.Phone = testutil.Ptr("+1-555-0100")
	p.LinkedInURL = testutil.Ptr("https://linkedin.com/in/danareyes")
	p.Title = testutil.Ptr("Engineering Manager")
	p.Notes = testutil.Ptr("Met at conference")

	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", got.FullName)
	require.NotNil(t, got.Email)
	assert.Equal(t, "dana@example.com", *got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "+1-555-0100", *got.Phone)
	require.NotNil(t, got.LinkedInURL)
	assert.Equal(t, "https://linkedin.com/in/danareyes", *got.LinkedInURL)
	assert.True(t, got.IsStakeholder)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Acme Corp", *got.Company)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Engineering Manager", *got.Title)
	assert.Equal(t, []string{"engineering", "contact"}, got.Tags)
}

func TestPersonRepo_AdditionalInfo_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLitePersonRepo(db)

	p := testutil.NewTestPerson("Sam Okafor",
		testutil.WithAdditionalInfo(map[string]any{
			"birthday":       "March 15",
			"preferred_name": "Sam",
		}))
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AdditionalInfo)
	assert.Equal(t, "March 15", got.AdditionalInfo["birthday"])
	assert.Equal(t, "Sam", got.AdditionalInfo["preferred_name"])
}

func TestPersonRepo_AdditionalInfo_NilStaysNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLitePersonRepo(db)

	p := testutil.NewTestPerson("Sam Okafor")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AdditionalInfo)
}

func TestPersonRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePersonRepo(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersonRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLitePersonRepo(db)

	p := testutil.NewTestPerson("Dana Reyes", testutil.WithPersonCompany("Acme Corp"))
	require.NoError(t, repo.Create(ctx, p))

	p.Company = testutil.Ptr("Globex")
	p.Title = testutil.Ptr("Director")
	p.Email = nil
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Globex", *got.Company)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Director", *got.Title)
	assert.Nil(t, got.Email, "clearing a field should persist the NULL")
}

func TestPersonRepo_List_OrderedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLitePersonRepo(db)

	require.NoError(t, repo.Create(ctx, testutil.NewTestPerson("Zoe Tran")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPerson("Ana Velez")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPerson("Max Ito")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ana Velez", all[0].FullName)
	assert.Equal(t, "Max Ito", all[1].FullName)
	assert.Equal(t, "Zoe Tran", all[2].FullName)
}
