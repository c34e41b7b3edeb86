package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPersonAndClient(t *testing.T, ctx context.Context, personRepo *SQLitePersonRepo, clientRepo *SQLiteClientRepo) (int64, int64) {
	t.Helper()
	person := testutil.NewTestPerson("Sam Okafor")
	require.NoError(t, personRepo.Create(ctx, person))
	client := testutil.NewTestClient("Acme Corp")
	require.NoError(t, clientRepo.Create(ctx, client))
	return person.ID, client.ID
}

func TestEmploymentRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmploymentRepo(db)
	personID, clientID := seedPersonAndClient(t, ctx, NewSQLitePersonRepo(db), NewSQLiteClientRepo(db))

	h := &domain.EmploymentHistory{
		PersonID:  personID,
		ClientID:  clientID,
		Role:      testutil.Ptr("Staff Engineer"),
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, h))
	require.NotZero(t, h.ID)

	got, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, personID, got.PersonID)
	assert.Equal(t, clientID, got.ClientID)
	require.NotNil(t, got.Role)
	assert.Equal(t, "Staff Engineer", *got.Role)
	assert.Equal(t, h.StartDate, got.StartDate)
	assert.Nil(t, got.EndDate)
	assert.True(t, got.IsCurrent())
}

func TestEmploymentRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEmploymentRepo(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmploymentRepo_ListByPerson_OrderedByStart(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmploymentRepo(db)
	personRepo := NewSQLitePersonRepo(db)
	clientRepo := NewSQLiteClientRepo(db)

	personID, firstClientID := seedPersonAndClient(t, ctx, personRepo, clientRepo)
	secondClient := testutil.NewTestClient("Globex")
	require.NoError(t, clientRepo.Create(ctx, secondClient))

	later := &domain.EmploymentHistory{
		PersonID:  personID,
		ClientID:  secondClient.ID,
		StartDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	earlier := &domain.EmploymentHistory{
		PersonID:  personID,
		ClientID:  firstClientID,
		StartDate: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   testutil.Ptr(time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, earlier))

	rows, err := repo.ListByPerson(ctx, personID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, earlier.ID, rows[0].ID, "rows should come back oldest engagement first")
	assert.Equal(t, later.ID, rows[1].ID)
	require.NotNil(t, rows[0].EndDate)
	assert.Equal(t, *earlier.EndDate, *rows[0].EndDate)
}

func TestEmploymentRepo_HasCurrent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmploymentRepo(db)
	personID, clientID := seedPersonAndClient(t, ctx, NewSQLitePersonRepo(db), NewSQLiteClientRepo(db))

	current, err := repo.HasCurrent(ctx, personID, clientID)
	require.NoError(t, err)
	assert.False(t, current, "no rows yet")

	h := &domain.EmploymentHistory{
		PersonID:  personID,
		ClientID:  clientID,
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, h))

	current, err = repo.HasCurrent(ctx, personID, clientID)
	require.NoError(t, err)
	assert.True(t, current, "open row should count as current")

	require.NoError(t, repo.SetEndDate(ctx, h.ID, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))

	current, err = repo.HasCurrent(ctx, personID, clientID)
	require.NoError(t, err)
	assert.False(t, current, "ended row should no longer count as current")
}

func TestEmploymentRepo_SetEndDate_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmploymentRepo(db)
	personID, clientID := seedPersonAndClient(t, ctx, NewSQLitePersonRepo(db), NewSQLiteClientRepo(db))

	h := &domain.EmploymentHistory{
		PersonID:  personID,
		ClientID:  clientID,
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, h))

	end := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetEndDate(ctx, h.ID, end))

	got, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, end, *got.EndDate)
	assert.False(t, got.IsCurrent())
}
