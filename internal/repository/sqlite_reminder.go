package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// reminderColumns is the canonical SELECT column list for reminders.
// last_notified_at sits last because it was added by a later migration.
const reminderColumns = `id, reminder_time, message, is_completed, recurrence_config,
		related_entity_type, related_entity_id, snoozed_until, tags, created_at, updated_at,
		last_notified_at`

// SQLiteReminderRepo implements ReminderRepo using a SQLite database.
type SQLiteReminderRepo struct {
	db db.DBTX
}

// NewSQLiteReminderRepo creates a new SQLiteReminderRepo.
func NewSQLiteReminderRepo(conn db.DBTX) *SQLiteReminderRepo {
	return &SQLiteReminderRepo{db: conn}
}

func (r *SQLiteReminderRepo) Create(ctx context.Context, rem *domain.Reminder) error {
	now := nowUTC()
	rem.CreatedAt = now
	rem.UpdatedAt = now
	tags, err := tagsToJSON(rem.Tags)
	if err != nil {
		return err
	}
	recurrence, err := recurrenceToJSON(rem.Recurrence)
	if err != nil {
		return err
	}

	query := `INSERT INTO reminders (reminder_time, message, is_completed, recurrence_config,
		related_entity_type, related_entity_id, snoozed_until, tags, created_at, updated_at, last_notified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rem.ReminderTime.UTC().Format(time.RFC3339),
		rem.Message,
		boolToInt(rem.IsCompleted),
		recurrence,
		entityTypeToValue(rem.RelatedEntityType),
		rem.RelatedEntityID,
		nullableTimeToString(rem.SnoozedUntil, time.RFC3339),
		tags,
		rem.CreatedAt.Format(time.RFC3339),
		rem.UpdatedAt.Format(time.RFC3339),
		nullableTimeToString(rem.LastNotifiedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reminder: %w", err)
	}
	rem.ID, err = lastInsertID(res, "reminder")
	return err
}

func (r *SQLiteReminderRepo) GetByID(ctx context.Context, id int64) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = ?`
	return scanReminder(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteReminderRepo) List(ctx context.Context, f ReminderFilter) ([]*domain.Reminder, error) {
	var conds []string
	var args []any

	switch f.Status {
	case "active":
		conds = append(conds, "is_completed = 0", "snoozed_until IS NULL")
	case "completed":
		conds = append(conds, "is_completed = 1")
	case "snoozed":
		conds = append(conds, "snoozed_until IS NOT NULL")
	}
	if f.EntityType != nil {
		conds = append(conds, "related_entity_type = ?")
		args = append(args, string(*f.EntityType))
	}
	if f.EntityID != nil {
		conds = append(conds, "related_entity_id = ?")
		args = append(args, *f.EntityID)
	}
	if len(f.Tags) > 0 {
		marks := make([]string, len(f.Tags))
		for i, tag := range f.Tags {
			marks[i] = "?"
			args = append(args, tag)
		}
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM json_each(reminders.tags) WHERE json_each.value IN (%s))",
			strings.Join(marks, ", ")))
	}

	query := `SELECT ` + reminderColumns + ` FROM reminders`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY reminder_time, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()
	return collectReminders(rows)
}

func (r *SQLiteReminderRepo) ListDue(ctx context.Context, now time.Time) ([]*domain.Reminder, error) {
	nowStr := now.UTC().Format(time.RFC3339)
	query := `SELECT ` + reminderColumns + ` FROM reminders
		WHERE is_completed = 0
		  AND reminder_time <= ?
		  AND (snoozed_until IS NULL OR snoozed_until <= ?)
		  AND (last_notified_at IS NULL OR last_notified_at < reminder_time)
		ORDER BY reminder_time, id`
	rows, err := r.db.QueryContext(ctx, query, nowStr, nowStr)
	if err != nil {
		return nil, fmt.Errorf("listing due reminders: %w", err)
	}
	defer rows.Close()
	return collectReminders(rows)
}

func (r *SQLiteReminderRepo) Update(ctx context.Context, rem *domain.Reminder) error {
	rem.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(rem.Tags)
	if err != nil {
		return err
	}
	recurrence, err := recurrenceToJSON(rem.Recurrence)
	if err != nil {
		return err
	}

	query := `UPDATE reminders SET reminder_time = ?, message = ?, is_completed = ?, recurrence_config = ?,
		related_entity_type = ?, related_entity_id = ?, snoozed_until = ?, tags = ?, updated_at = ?, last_notified_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		rem.ReminderTime.UTC().Format(time.RFC3339),
		rem.Message,
		boolToInt(rem.IsCompleted),
		recurrence,
		entityTypeToValue(rem.RelatedEntityType),
		rem.RelatedEntityID,
		nullableTimeToString(rem.SnoozedUntil, time.RFC3339),
		tags,
		rem.UpdatedAt.Format(time.RFC3339),
		nullableTimeToString(rem.LastNotifiedAt, time.RFC3339),
		rem.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) MarkNotified(ctx context.Context, id int64, at time.Time) error {
	atStr := at.UTC().Format(time.RFC3339)
	query := `UPDATE reminders SET last_notified_at = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, atStr, atStr, id); err != nil {
		return fmt.Errorf("recording reminder dispatch: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("reminder: %w", ErrNotFound)
	}
	return nil
}

func collectReminders(rows *sql.Rows) ([]*domain.Reminder, error) {
	var reminders []*domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", err)
	}
	return reminders, nil
}

// scanReminder scans one reminder row.
func scanReminder(s scanner) (*domain.Reminder, error) {
	var rem domain.Reminder
	var reminderTimeStr string
	var isCompleted int
	var recurrenceStr, entityTypeStr, snoozedStr, lastNotifiedStr sql.NullString
	var tagsStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&rem.ID, &reminderTimeStr, &rem.Message, &isCompleted,
		&recurrenceStr, &entityTypeStr, &rem.RelatedEntityID,
		&snoozedStr, &tagsStr, &createdAtStr, &updatedAtStr,
		&lastNotifiedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reminder: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}

	rem.IsCompleted = intToBool(isCompleted)
	rem.RelatedEntityType = entityTypeFromNullable(entityTypeStr)
	rem.SnoozedUntil = parseNullableTime(snoozedStr, time.RFC3339)
	rem.LastNotifiedAt = parseNullableTime(lastNotifiedStr, time.RFC3339)
	if rem.Recurrence, err = recurrenceFromJSON(recurrenceStr); err != nil {
		return nil, err
	}
	if rem.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}

	var parseErr error
	rem.ReminderTime, parseErr = time.Parse(time.RFC3339, reminderTimeStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing reminder_time: %w", parseErr)
	}
	rem.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	rem.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &rem, nil
}
