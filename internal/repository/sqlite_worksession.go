package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/timeutil"
)

// SQLiteWorkSessionRepo implements WorkSessionRepo using a SQLite database.
type SQLiteWorkSessionRepo struct {
	db db.DBTX
}

// NewSQLiteWorkSessionRepo creates a new SQLiteWorkSessionRepo.
func NewSQLiteWorkSessionRepo(conn db.DBTX) *SQLiteWorkSessionRepo {
	return &SQLiteWorkSessionRepo{db: conn}
}

func (r *SQLiteWorkSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	now := nowUTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	tags, err := tagsToJSON(s.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO work_sessions (project_id, date, start_time, end_time, duration_hours, summary, privacy_level, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.ProjectID,
		s.Date.Format(dateLayout),
		s.StartTime.UTC().Format(time.RFC3339),
		s.EndTime.UTC().Format(time.RFC3339),
		timeutil.FormatHours(s.DurationHours),
		s.Summary,
		string(s.PrivacyLevel),
		tags,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return writeErr("inserting work session", err)
	}
	s.ID, err = lastInsertID(res, "work session")
	return err
}

func (r *SQLiteWorkSessionRepo) GetByID(ctx context.Context, id int64) (*domain.WorkSession, error) {
	query := `SELECT id, project_id, date, start_time, end_time, duration_hours, summary, privacy_level, tags, created_at, updated_at
		FROM work_sessions WHERE id = ?`
	return scanWorkSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkSessionRepo) ListForTimecard(ctx context.Context, projectID int64, from, to time.Time, access domain.AccessMode) ([]*domain.WorkSession, error) {
	levels := access.Levels()
	marks := make([]string, len(levels))
	args := []any{projectID, from.Format(dateLayout), to.Format(dateLayout)}
	for i, l := range levels {
		marks[i] = "?"
		args = append(args, string(l))
	}

	query := fmt.Sprintf(`SELECT id, project_id, date, start_time, end_time, duration_hours, summary, privacy_level, tags, created_at, updated_at
		FROM work_sessions
		WHERE project_id = ? AND date >= ? AND date <= ? AND privacy_level IN (%s)
		ORDER BY date, start_time, id`, strings.Join(marks, ", "))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.WorkSession
	for rows.Next() {
		s, err := scanWorkSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteWorkSessionRepo) Update(ctx context.Context, s *domain.WorkSession) error {
	s.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(s.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE work_sessions SET project_id = ?, date = ?, start_time = ?, end_time = ?, duration_hours = ?, summary = ?, privacy_level = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		s.ProjectID,
		s.Date.Format(dateLayout),
		s.StartTime.UTC().Format(time.RFC3339),
		s.EndTime.UTC().Format(time.RFC3339),
		timeutil.FormatHours(s.DurationHours),
		s.Summary,
		string(s.PrivacyLevel),
		tags,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return writeErr("updating work session", err)
	}
	return nil
}

func (r *SQLiteWorkSessionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting work session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work session: %w", ErrNotFound)
	}
	return nil
}

// scanWorkSession scans one work session row.
func scanWorkSession(s scanner) (*domain.WorkSession, error) {
	var ws domain.WorkSession
	var dateStr, startStr, endStr, durationStr, privacyStr string
	var tagsStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&ws.ID, &ws.ProjectID, &dateStr, &startStr, &endStr,
		&durationStr, &ws.Summary, &privacyStr, &tagsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	ws.PrivacyLevel = domain.PrivacyLevel(privacyStr)
	if ws.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}
	if ws.DurationHours, err = decimal.NewFromString(durationStr); err != nil {
		return nil, fmt.Errorf("parsing duration_hours: %w", err)
	}

	var parseErr error
	ws.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing date: %w", parseErr)
	}
	ws.StartTime, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	ws.EndTime, parseErr = time.Parse(time.RFC3339, endStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing end_time: %w", parseErr)
	}
	ws.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	ws.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &ws, nil
}
