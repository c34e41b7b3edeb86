package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/testutil"
)

// svcEnv wires every repository and the profile service against one
// test database, so service tests can mix service calls with direct
// repository reads.
type svcEnv struct {
	database *sql.DB
	uow      db.UnitOfWork

	people      repository.PersonRepo
	clients     repository.ClientRepo
	employers   repository.EmployerRepo
	projects    repository.ProjectRepo
	employments repository.EmploymentRepo
	sessions    repository.WorkSessionRepo
	meetings    repository.MeetingRepo
	notes       repository.NoteRepo
	reminders   repository.ReminderRepo
	actions     repository.ActionItemRepo
	bookmarks   repository.BookmarkRepo

	profile UserService
}

func newSvcEnv(t *testing.T) *svcEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &svcEnv{
		database:    database,
		uow:         testutil.NewTestUoW(database),
		people:      repository.NewSQLitePersonRepo(database),
		clients:     repository.NewSQLiteClientRepo(database),
		employers:   repository.NewSQLiteEmployerRepo(database),
		projects:    repository.NewSQLiteProjectRepo(database),
		employments: repository.NewSQLiteEmploymentRepo(database),
		sessions:    repository.NewSQLiteWorkSessionRepo(database),
		meetings:    repository.NewSQLiteMeetingRepo(database),
		notes:       repository.NewSQLiteNoteRepo(database),
		reminders:   repository.NewSQLiteReminderRepo(database),
		actions:     repository.NewSQLiteActionItemRepo(database),
		bookmarks:   repository.NewSQLiteBookmarkRepo(database),
		profile:     NewUserService(repository.NewSQLiteUserRepo(database), ProfileDefaults{}),
	}
}

// seedProject creates a client and a project under it.
func (e *svcEnv) seedProject(t *testing.T, name string) *domain.Project {
	t.Helper()
	ctx := context.Background()
	client := testutil.NewTestClient(name + " Client")
	require.NoError(t, e.clients.Create(ctx, client))
	proj := testutil.NewTestProject(name, client.ID)
	require.NoError(t, e.projects.Create(ctx, proj))
	return proj
}

func (e *svcEnv) seedPerson(t *testing.T, name string) *domain.Person {
	t.Helper()
	p := testutil.NewTestPerson(name)
	require.NoError(t, e.people.Create(context.Background(), p))
	return p
}

// setProfile persists the singleton user row with the given timezone.
func (e *svcEnv) setProfile(t *testing.T, timezone string) *domain.User {
	t.Helper()
	u, err := e.profile.Update(context.Background(), UpdateUserParams{
		FullName: testutil.Ptr("Avery Chen"),
		Timezone: testutil.Ptr(timezone),
	})
	require.NoError(t, err)
	return u
}

func (e *svcEnv) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := e.database.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, dedupeIDs([]int64{3, 1, 3, 2, 1}), "first occurrence order should be kept")
	assert.Empty(t, dedupeIDs(nil))
}

func TestTimecardSummary(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	internal := testutil.NewTestWorkSession(1, start, 30,
		testutil.WithSessionSummary("Vendor escalation"),
		testutil.WithSessionPrivacy(domain.PrivacyInternal))

	assert.Equal(t, "Vendor escalation", timecardSummary(internal, true))
	assert.Equal(t, "Project work", timecardSummary(internal, false), "internal summaries should be genericized without private access")

	public := testutil.NewTestWorkSession(1, start, 30,
		testutil.WithSessionPrivacy(domain.PrivacyPublic))
	assert.Equal(t, "", timecardSummary(public, false), "missing summary should render empty")
}

func TestResolvePrivacy(t *testing.T) {
	assert.Equal(t, domain.PrivacyPrivate, resolvePrivacy(nil, domain.PrivacyPrivate))
	assert.Equal(t, domain.PrivacyPublic, resolvePrivacy(testutil.Ptr(domain.PrivacyPublic), domain.PrivacyPrivate))
}
