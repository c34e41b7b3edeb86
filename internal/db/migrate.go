package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
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

	`CREATE TABLE IF NOT EXISTS employers (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL,
		is_current   INTEGER NOT NULL DEFAULT 0,
		is_self      INTEGER NOT NULL DEFAULT 0,
		contact_info TEXT,
		notes        TEXT,
		tags         TEXT NOT NULL DEFAULT '[]',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS people (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name       TEXT NOT NULL,
		email           TEXT,
		phone           TEXT,
		linkedin_url    TEXT,
		is_stakeholder  INTEGER NOT NULL DEFAULT 0,
		company         TEXT,
		title           TEXT,
		notes           TEXT,
		tags            TEXT NOT NULL DEFAULT '[]',
		additional_info TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_people_full_name ON people(full_name)`,
	`CREATE INDEX IF NOT EXISTS idx_people_email ON people(email)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT NOT NULL,
		type              TEXT NOT NULL
		                  CHECK(type IN ('company','individual')),
		status            TEXT NOT NULL DEFAULT 'active'
		                  CHECK(status IN ('active','past')),
		contact_person_id INTEGER REFERENCES people(id) ON DELETE SET NULL,
		notes             TEXT,
		tags              TEXT NOT NULL DEFAULT '[]',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_clients_name ON clients(name)`,

	`CREATE TABLE IF NOT EXISTS employment_history (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		person_id  INTEGER NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		client_id  INTEGER NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		role       TEXT,
		start_date TEXT NOT NULL,
		end_date   TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_employment_person ON employment_history(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_employment_client ON employment_history(client_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		client_id       INTEGER NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		on_behalf_of_id INTEGER REFERENCES employers(id) ON DELETE RESTRICT,
		description     TEXT,
		status          TEXT NOT NULL DEFAULT 'active'
		                CHECK(status IN ('active','paused','completed')),
		start_date      TEXT,
		end_date        TEXT,
		tags            TEXT NOT NULL DEFAULT '[]',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,

	`CREATE TABLE IF NOT EXISTS work_sessions (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id     INTEGER NOT NULL REFERENCES projects(id) ON DELETE RESTRICT,
		date           TEXT NOT NULL,
		start_time     TEXT NOT NULL,
		end_time       TEXT NOT NULL,
		duration_hours TEXT NOT NULL,
		summary        TEXT,
		privacy_level  TEXT NOT NULL DEFAULT 'private'
		               CHECK(privacy_level IN ('public','internal','private')),
		tags           TEXT NOT NULL DEFAULT '[]',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_sessions_project_date ON work_sessions(project_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_work_sessions_date ON work_sessions(date)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		title            TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
		summary          TEXT,
		privacy_level    TEXT NOT NULL DEFAULT 'private'
		                 CHECK(privacy_level IN ('public','internal','private')),
		project_id       INTEGER REFERENCES projects(id) ON DELETE SET NULL,
		meeting_type     TEXT,
		location         TEXT,
		tags             TEXT NOT NULL DEFAULT '[]',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meetings_start_time ON meetings(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_project ON meetings(project_id)`,

	`CREATE TABLE IF NOT EXISTS meeting_attendees (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		meeting_id INTEGER NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
		person_id  INTEGER NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		UNIQUE(meeting_id, person_id)
	)`,

	`CREATE TABLE IF NOT EXISTS notes (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		text          TEXT NOT NULL,
		privacy_level TEXT NOT NULL DEFAULT 'private'
		              CHECK(privacy_level IN ('public','internal','private')),
		entity_type   TEXT
		              CHECK(entity_type IN ('person','client','project','employer','work_session','meeting','reminder')),
		entity_id     INTEGER,
		tags          TEXT NOT NULL DEFAULT '[]',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		CHECK((entity_type IS NULL) = (entity_id IS NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_entity ON notes(entity_type, entity_id)`,

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

	`CREATE TABLE IF NOT EXISTS action_items (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		title         TEXT NOT NULL,
		description   TEXT,
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','in_progress','completed','cancelled')),
		due_date      TEXT,
		completed_at  TEXT,
		entity_type   TEXT
		              CHECK(entity_type IN ('person','client','project','employer','work_session','meeting','note','reminder')),
		entity_id     INTEGER,
		privacy_level TEXT NOT NULL DEFAULT 'private'
		              CHECK(privacy_level IN ('public','internal','private')),
		tags          TEXT NOT NULL DEFAULT '[]',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		CHECK((entity_type IS NULL) = (entity_id IS NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_action_items_entity ON action_items(entity_type, entity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_action_items_status_due ON action_items(status, due_date)`,

	`CREATE TABLE IF NOT EXISTS bookmarks (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		title         TEXT NOT NULL,
		url           TEXT NOT NULL,
		description   TEXT,
		entity_type   TEXT
		              CHECK(entity_type IN ('person','client','project','employer','work_session','meeting','note','reminder')),
		entity_id     INTEGER,
		privacy_level TEXT NOT NULL DEFAULT 'private'
		              CHECK(privacy_level IN ('public','internal','private')),
		tags          TEXT NOT NULL DEFAULT '[]',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		CHECK((entity_type IS NULL) = (entity_id IS NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_bookmarks_entity ON bookmarks(entity_type, entity_id)`,

	// Dispatch ledger: the instant a reminder last fired, so the due scan
	// notifies once per reminder_time.
	`ALTER TABLE reminders ADD COLUMN last_notified_at TEXT`,

	// Profile enrichment on the singleton user row.
	`ALTER TABLE users ADD COLUMN communication_style TEXT`,
	`ALTER TABLE users ADD COLUMN work_approach TEXT`,
	`ALTER TABLE users ADD COLUMN profile_last_updated TEXT`,
}
