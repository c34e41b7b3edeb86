package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Running migrations a second time must succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"users", "employers", "people", "clients", "employment_history",
		"projects", "work_sessions", "meetings", "meeting_attendees",
		"notes", "reminders", "action_items", "bookmarks",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_people_full_name",
		"idx_clients_name",
		"idx_employment_person",
		"idx_projects_client",
		"idx_work_sessions_project_date",
		"idx_meetings_start_time",
		"idx_notes_entity",
		"idx_reminders_due",
		"idx_action_items_status_due",
		"idx_bookmarks_entity",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	// This test verifies OpenDB issues the PRAGMA (a no-op for :memory:).
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func TestMigrate_UsersSingletonCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO users (id, full_name, created_at, updated_at)
		VALUES (2, 'Imposter', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "users row with id != 1 should be rejected")

	_, err = db.Exec(`INSERT INTO users (id, full_name, created_at, updated_at)
		VALUES (1, 'Alex', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_RemindersLastNotifiedColumn(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(reminders)`)
	require.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		if name == "last_notified_at" {
			found = true
		}
	}
	assert.True(t, found, "reminders table should have last_notified_at column")
}

func TestMigrate_PrivacyCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	seedBillingChain(t, db)

	_, err := db.Exec(`INSERT INTO work_sessions (project_id, date, start_time, end_time, duration_hours, privacy_level, created_at, updated_at)
		VALUES (1, '2026-01-15', '2026-01-15T14:00:00Z', '2026-01-15T15:00:00Z', '1.0', 'secret', '2026-01-15T15:00:00Z', '2026-01-15T15:00:00Z')`)
	assert.Error(t, err, "invalid privacy level should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO work_sessions (project_id, date, start_time, end_time, duration_hours, privacy_level, created_at, updated_at)
		VALUES (1, '2026-01-15', '2026-01-15T14:00:00Z', '2026-01-15T15:00:00Z', '1.0', 'internal', '2026-01-15T15:00:00Z', '2026-01-15T15:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_NotesEntityPairCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO notes (text, entity_type, created_at, updated_at)
		VALUES ('orphan ref', 'project', '2026-01-15T00:00:00Z', '2026-01-15T00:00:00Z')`)
	assert.Error(t, err, "entity_type without entity_id should be rejected")

	_, err = db.Exec(`INSERT INTO notes (text, entity_id, created_at, updated_at)
		VALUES ('orphan id', 7, '2026-01-15T00:00:00Z', '2026-01-15T00:00:00Z')`)
	assert.Error(t, err, "entity_id without entity_type should be rejected")

	_, err = db.Exec(`INSERT INTO notes (text, created_at, updated_at)
		VALUES ('free-standing', '2026-01-15T00:00:00Z', '2026-01-15T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_MeetingDurationPositive(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO meetings (title, start_time, duration_minutes, created_at, updated_at)
		VALUES ('Kickoff', '2026-01-15T10:00:00Z', 0, '2026-01-15T10:00:00Z', '2026-01-15T10:00:00Z')`)
	assert.Error(t, err, "zero duration should be rejected by CHECK constraint")
}

func TestMigrate_MeetingAttendeesUniquePair(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO meetings (title, start_time, duration_minutes, created_at, updated_at)
		VALUES ('Sync', '2026-01-15T10:00:00Z', 30, '2026-01-15T10:00:00Z', '2026-01-15T10:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO people (full_name, created_at, updated_at)
		VALUES ('Dana', '2026-01-15T00:00:00Z', '2026-01-15T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO meeting_attendees (meeting_id, person_id) VALUES (1, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO meeting_attendees (meeting_id, person_id) VALUES (1, 1)`)
	assert.Error(t, err, "duplicate attendee pair should violate unique constraint")
}

func TestMigrate_ProjectDeleteRestrictedBySessions(t *testing.T) {
	db := openTestDB(t)
	seedBillingChain(t, db)

	_, err := db.Exec(`INSERT INTO work_sessions (project_id, date, start_time, end_time, duration_hours, created_at, updated_at)
		VALUES (1, '2026-01-15', '2026-01-15T14:00:00Z', '2026-01-15T15:00:00Z', '1.0', '2026-01-15T15:00:00Z', '2026-01-15T15:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM projects WHERE id = 1`)
	assert.Error(t, err, "project with sessions is billing-critical; delete must be restricted")

	_, err = db.Exec(`DELETE FROM clients WHERE id = 1`)
	assert.Error(t, err, "client with projects must not be deletable")
}

func TestMigrate_AttendeesCascadeWithMeeting(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO meetings (title, start_time, duration_minutes, created_at, updated_at)
		VALUES ('Sync', '2026-01-15T10:00:00Z', 30, '2026-01-15T10:00:00Z', '2026-01-15T10:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO people (full_name, created_at, updated_at)
		VALUES ('Dana', '2026-01-15T00:00:00Z', '2026-01-15T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO meeting_attendees (meeting_id, person_id) VALUES (1, 1)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM meetings WHERE id = 1`)
	require.NoError(t, err)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM meeting_attendees`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "attendee rows cascade with their meeting")
}

func TestMigrate_ContactPersonSetNullOnDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO people (full_name, created_at, updated_at)
		VALUES ('Dana', '2026-01-15T00:00:00Z', '2026-01-15T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO clients (name, type, contact_person_id, created_at, updated_at)
		VALUES ('Acme Corp', 'company', 1, '2026-01-15T00:00:00Z', '2026-01-15T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM people WHERE id = 1`)
	require.NoError(t, err)

	var contact sql.NullInt64
	err = db.QueryRow(`SELECT contact_person_id FROM clients WHERE id = 1`).Scan(&contact)
	require.NoError(t, err)
	assert.False(t, contact.Valid, "contact reference should be nulled, not block the delete")
}

// seedBillingChain inserts client id=1 and project id=1.
func seedBillingChain(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO clients (name, type, created_at, updated_at)
		VALUES ('Acme Corp', 'company', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO projects (name, client_id, created_at, updated_at)
		VALUES ('Migration', 1, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
}
