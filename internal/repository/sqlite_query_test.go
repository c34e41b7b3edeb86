package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedAllQueryables inserts one row into every table the query runner
// can scan, returning the populated database.
func seedAllQueryables(t *testing.T, ctx context.Context) *sql.DB {
	t.Helper()
	db := testutil.NewTestDB(t)

	employer := testutil.NewTestEmployer("Initech")
	require.NoError(t, NewSQLiteEmployerRepo(db).Create(ctx, employer))

	person := testutil.NewTestPerson("Dana Reyes")
	require.NoError(t, NewSQLitePersonRepo(db).Create(ctx, person))

	client := testutil.NewTestClient("Acme Corp")
	require.NoError(t, NewSQLiteClientRepo(db).Create(ctx, client))

	proj := testutil.NewTestProject("Website Redesign", client.ID)
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	sess := testutil.NewTestWorkSession(proj.ID, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 60)
	require.NoError(t, NewSQLiteWorkSessionRepo(db).Create(ctx, sess))

	meeting := testutil.NewTestMeeting("Kickoff", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), 30)
	require.NoError(t, NewSQLiteMeetingRepo(db).Create(ctx, meeting))

	note := testutil.NewTestNote("Billing in euros")
	require.NoError(t, NewSQLiteNoteRepo(db).Create(ctx, note))

	rem := testutil.NewTestReminder("Send invoice", time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, NewSQLiteReminderRepo(db).Create(ctx, rem))

	return db
}

// TestQueryRepo_EntityRows_AllTables round-trips every queryable table
// through SelectList + EntityRows, so a column added to a scanner but
// not to selectColumns (or vice versa) fails here instead of at query
// time.
func TestQueryRepo_EntityRows_AllTables(t *testing.T) {
	ctx := context.Background()
	db := seedAllQueryables(t, ctx)
	repo := NewSQLiteQueryRepo(db)

	for table := range selectColumns {
		cols, ok := SelectList(table, "")
		require.True(t, ok, "table %s should be queryable", table)

		rows, err := repo.EntityRows(ctx, table, "SELECT "+cols+" FROM "+table, nil)
		require.NoError(t, err, "scanning %s should match its column list", table)
		require.Len(t, rows, 1, "table %s should hold the seeded row", table)

		switch entity := rows[0].(type) {
		case *domain.Person:
			assert.Equal(t, "Dana Reyes", entity.FullName)
		case *domain.Employer:
			assert.Equal(t, "Initech", entity.Name)
		case *domain.Client:
			assert.Equal(t, "Acme Corp", entity.Name)
		case *domain.Project:
			assert.Equal(t, "Website Redesign", entity.Name)
		case *domain.WorkSession:
			assert.Equal(t, "1.0", entity.DurationHours.StringFixed(1))
		case *domain.Meeting:
			assert.Equal(t, "Kickoff", entity.Title)
		case *domain.Note:
			assert.Equal(t, "Billing in euros", entity.Text)
		case *domain.Reminder:
			assert.Equal(t, "Send invoice", entity.Message)
		default:
			t.Fatalf("table %s scanned to unexpected type %T", table, rows[0])
		}
	}
}

func TestQueryRepo_EntityRows_AliasedSelect(t *testing.T) {
	ctx := context.Background()
	db := seedAllQueryables(t, ctx)
	repo := NewSQLiteQueryRepo(db)

	cols, ok := SelectList("work_sessions", "t0")
	require.True(t, ok)

	rows, err := repo.EntityRows(ctx, "work_sessions",
		"SELECT "+cols+" FROM work_sessions AS t0 INNER JOIN projects AS t1 ON t0.project_id = t1.id", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestQueryRepo_EntityRows_UnknownTable(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteQueryRepo(db)

	_, ok := SelectList("meeting_attendees", "")
	assert.False(t, ok, "join tables are not directly queryable")

	_, err := repo.EntityRows(context.Background(), "meeting_attendees",
		"SELECT id, meeting_id, person_id FROM meeting_attendees", nil)
	assert.Error(t, err)
}

func TestQueryRepo_Count(t *testing.T) {
	ctx := context.Background()
	db := seedAllQueryables(t, ctx)
	repo := NewSQLiteQueryRepo(db)

	n, err := repo.Count(ctx, "SELECT COUNT(*) FROM people", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.Count(ctx, "SELECT COUNT(*) FROM people WHERE full_name = ?", []any{"Nobody"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestQueryRepo_Aggregate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewSQLiteQueryRepo(db)

	client := testutil.NewTestClient("Acme Corp")
	require.NoError(t, NewSQLiteClientRepo(db).Create(ctx, client))
	proj := testutil.NewTestProject("Website Redesign", client.ID)
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	sessRepo := NewSQLiteWorkSessionRepo(db)
	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, sessRepo.Create(ctx, testutil.NewTestWorkSession(proj.ID, day, 90)))
	require.NoError(t, sessRepo.Create(ctx, testutil.NewTestWorkSession(proj.ID, day.Add(3*time.Hour), 30)))

	v, err := repo.Aggregate(ctx, "SELECT SUM(CAST(duration_hours AS REAL)) FROM work_sessions", nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 0.001, "1.5 + 0.5 hours")

	v, err = repo.Aggregate(ctx, "SELECT SUM(CAST(duration_hours AS REAL)) FROM work_sessions WHERE date = ?", []any{"2099-01-01"})
	require.NoError(t, err)
	assert.Nil(t, v, "aggregates over no rows surface as nil")
}

func TestQueryRepo_AggregateGroups(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewSQLiteQueryRepo(db)

	client := testutil.NewTestClient("Acme Corp")
	require.NoError(t, NewSQLiteClientRepo(db).Create(ctx, client))
	proj := testutil.NewTestProject("Website Redesign", client.ID)
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	sessRepo := NewSQLiteWorkSessionRepo(db)
	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, sessRepo.Create(ctx, testutil.NewTestWorkSession(proj.ID, day, 30,
		testutil.WithSessionPrivacy(domain.PrivacyPublic))))
	require.NoError(t, sessRepo.Create(ctx, testutil.NewTestWorkSession(proj.ID, day.Add(time.Hour), 30,
		testutil.WithSessionPrivacy(domain.PrivacyPublic))))
	require.NoError(t, sessRepo.Create(ctx, testutil.NewTestWorkSession(proj.ID, day.Add(2*time.Hour), 30,
		testutil.WithSessionPrivacy(domain.PrivacyPrivate))))

	groups, err := repo.AggregateGroups(ctx,
		"SELECT privacy_level, COUNT(*) FROM work_sessions GROUP BY privacy_level ORDER BY privacy_level", nil, 1)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "private", groups[0].Keys[0])
	assert.EqualValues(t, 1, groups[0].Value)
	assert.Equal(t, "public", groups[1].Keys[0])
	assert.EqualValues(t, 2, groups[1].Value)
}
