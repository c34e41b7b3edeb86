package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// SQLiteMeetingRepo implements MeetingRepo using a SQLite database.
type SQLiteMeetingRepo struct {
	db db.DBTX
}

// NewSQLiteMeetingRepo creates a new SQLiteMeetingRepo.
func NewSQLiteMeetingRepo(conn db.DBTX) *SQLiteMeetingRepo {
	return &SQLiteMeetingRepo{db: conn}
}

func (r *SQLiteMeetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	now := nowUTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	tags, err := tagsToJSON(m.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO meetings (title, start_time, duration_minutes, summary, privacy_level, project_id, meeting_type, location, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		m.Title,
		m.StartTime.UTC().Format(time.RFC3339),
		m.DurationMinutes,
		m.Summary,
		string(m.PrivacyLevel),
		m.ProjectID,
		m.MeetingType,
		m.Location,
		tags,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return writeErr("inserting meeting", err)
	}
	m.ID, err = lastInsertID(res, "meeting")
	return err
}

func (r *SQLiteMeetingRepo) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	query := `SELECT id, title, start_time, duration_minutes, summary, privacy_level, project_id, meeting_type, location, tags, created_at, updated_at
		FROM meetings WHERE id = ?`
	return scanMeeting(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMeetingRepo) Update(ctx context.Context, m *domain.Meeting) error {
	m.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(m.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE meetings SET title = ?, start_time = ?, duration_minutes = ?, summary = ?, privacy_level = ?, project_id = ?, meeting_type = ?, location = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		m.Title,
		m.StartTime.UTC().Format(time.RFC3339),
		m.DurationMinutes,
		m.Summary,
		string(m.PrivacyLevel),
		m.ProjectID,
		m.MeetingType,
		m.Location,
		tags,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return writeErr("updating meeting", err)
	}
	return nil
}

func (r *SQLiteMeetingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("meeting: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteMeetingRepo) AddAttendee(ctx context.Context, meetingID, personID int64) error {
	query := `INSERT INTO meeting_attendees (meeting_id, person_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, meetingID, personID); err != nil {
		return writeErr("inserting attendee", err)
	}
	return nil
}

func (r *SQLiteMeetingRepo) ListAttendees(ctx context.Context, meetingID int64) ([]domain.MeetingAttendee, error) {
	query := `SELECT id, meeting_id, person_id FROM meeting_attendees WHERE meeting_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("listing attendees: %w", err)
	}
	defer rows.Close()

	var attendees []domain.MeetingAttendee
	for rows.Next() {
		var a domain.MeetingAttendee
		if err := rows.Scan(&a.ID, &a.MeetingID, &a.PersonID); err != nil {
			return nil, fmt.Errorf("scanning attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attendees: %w", err)
	}
	return attendees, nil
}

func (r *SQLiteMeetingRepo) DeleteAttendees(ctx context.Context, meetingID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meeting_attendees WHERE meeting_id = ?`, meetingID); err != nil {
		return fmt.Errorf("deleting attendees: %w", err)
	}
	return nil
}

// scanMeeting scans one meeting row.
func scanMeeting(s scanner) (*domain.Meeting, error) {
	var m domain.Meeting
	var startStr, privacyStr string
	var tagsStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&m.ID, &m.Title, &startStr, &m.DurationMinutes,
		&m.Summary, &privacyStr, &m.ProjectID,
		&m.MeetingType, &m.Location, &tagsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("meeting: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning meeting: %w", err)
	}

	m.PrivacyLevel = domain.PrivacyLevel(privacyStr)
	if m.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}

	var parseErr error
	m.StartTime, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	m.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	m.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &m, nil
}
