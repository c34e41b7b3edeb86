package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyToCurrentSchema simulates upgrading a
// database created before the dispatch ledger and profile enrichment
// columns existed. Verifies that:
// 1. Data inserted under the old schema survives migration
// 2. New columns are added with NULL defaults
// 3. Re-running Migrate stays idempotent
func TestMigrate_UpgradePath_LegacyToCurrentSchema(t *testing.T) {
	// Create a raw DB without using OpenDB (to manually control schema).
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	// Apply a "legacy" schema: reminders WITHOUT last_notified_at and
	// users WITHOUT the communication/work-approach columns.
	legacyStatements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id                    INTEGER PRIMARY KEY CHECK(id = 1),
			full_name             TEXT NOT NULL DEFAULT '',
			email                 TEXT,
			phone                 TEXT,
			timezone              TEXT NOT NULL DEFAULT 'UTC',
			week_boundary         TEXT NOT NULL DEFAULT 'mon-fri'
			                      CHECK(week_boundary IN ('mon-fri','sun-sat','mon-sun')),
			default_privacy_level TEXT NOT NULL DEFAULT 'private'
			                      CHECK(default_privacy_level IN ('public','internal','private')),
			working_hours_start   INTEGER,
			working_hours_end     INTEGER,
			created_at            TEXT NOT NULL,
			updated_at            TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			reminder_time       TEXT NOT NULL,
			message             TEXT NOT NULL,
			is_completed        INTEGER NOT NULL DEFAULT 0,
			recurrence_config   TEXT,
			related_entity_type TEXT
			                    CHECK(related_entity_type IN ('person','client','project','employer','work_session','meeting','note','reminder')),
			related_entity_id   INTEGER,
			snoozed_until       TEXT,
			tags                TEXT NOT NULL DEFAULT '[]',
			created_at          TEXT NOT NULL,
			updated_at          TEXT NOT NULL,
			CHECK((related_entity_type IS NULL) = (related_entity_id IS NULL))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(reminder_time, is_completed)`,
	}

	for i, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "legacy statement %d failed", i)
	}

	// Insert legacy data BEFORE running migrations.
	_, err = db.Exec(`INSERT INTO users (id, full_name, timezone, created_at, updated_at)
		VALUES (1, 'Alex', 'Europe/Berlin', '2025-06-01T00:00:00Z', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO reminders (reminder_time, message, created_at, updated_at)
		VALUES ('2026-01-19T09:00:00Z', 'Send weekly report', '2025-06-01T00:00:00Z', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)

	// === Run current migrations on legacy DB ===
	err = Migrate(db)
	require.NoError(t, err, "migration on legacy schema should succeed")

	// === Verify data survived ===
	var fullName, tz string
	err = db.QueryRow(`SELECT full_name, timezone FROM users WHERE id = 1`).Scan(&fullName, &tz)
	require.NoError(t, err)
	assert.Equal(t, "Alex", fullName, "user profile should survive migration")
	assert.Equal(t, "Europe/Berlin", tz)

	var message string
	err = db.QueryRow(`SELECT message FROM reminders WHERE id = 1`).Scan(&message)
	require.NoError(t, err)
	assert.Equal(t, "Send weekly report", message, "reminder should survive migration")

	// === Verify new columns added with defaults ===
	var lastNotified sql.NullString
	err = db.QueryRow(`SELECT last_notified_at FROM reminders WHERE id = 1`).Scan(&lastNotified)
	require.NoError(t, err)
	assert.False(t, lastNotified.Valid, "legacy reminder should get NULL last_notified_at")

	var commStyle sql.NullString
	err = db.QueryRow(`SELECT communication_style FROM users WHERE id = 1`).Scan(&commStyle)
	require.NoError(t, err)
	assert.False(t, commStyle.Valid, "legacy user should get NULL communication_style")

	// New tables from the full migration set should exist too.
	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='work_sessions'`).Scan(&name)
	require.NoError(t, err, "work_sessions should be created on upgrade")

	// === Verify idempotency: running Migrate again should not break anything ===
	err = Migrate(db)
	require.NoError(t, err, "re-running Migrate on already-migrated DB should succeed")

	var messageAfter string
	err = db.QueryRow(`SELECT message FROM reminders WHERE id = 1`).Scan(&messageAfter)
	require.NoError(t, err)
	assert.Equal(t, "Send weekly report", messageAfter)
}
