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

// SQLiteActionItemRepo implements ActionItemRepo using a SQLite database.
type SQLiteActionItemRepo struct {
	db db.DBTX
}

// NewSQLiteActionItemRepo creates a new SQLiteActionItemRepo.
func NewSQLiteActionItemRepo(conn db.DBTX) *SQLiteActionItemRepo {
	return &SQLiteActionItemRepo{db: conn}
}

func (r *SQLiteActionItemRepo) Create(ctx context.Context, a *domain.ActionItem) error {
	now := nowUTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	tags, err := tagsToJSON(a.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO action_items (title, description, status, due_date, completed_at, entity_type, entity_id, privacy_level, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		a.Title,
		a.Description,
		string(a.Status),
		nullableTimeToString(a.DueDate, time.RFC3339),
		nullableTimeToString(a.CompletedAt, time.RFC3339),
		entityTypeToValue(a.EntityType),
		a.EntityID,
		string(a.PrivacyLevel),
		tags,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting action item: %w", err)
	}
	a.ID, err = lastInsertID(res, "action item")
	return err
}

func (r *SQLiteActionItemRepo) GetByID(ctx context.Context, id int64) (*domain.ActionItem, error) {
	query := `SELECT id, title, description, status, due_date, completed_at, entity_type, entity_id, privacy_level, tags, created_at, updated_at
		FROM action_items WHERE id = ?`
	return scanActionItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteActionItemRepo) List(ctx context.Context, f ActionItemFilter) ([]*domain.ActionItem, error) {
	var conds []string
	var args []any

	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.EntityType != nil {
		conds = append(conds, "entity_type = ?")
		args = append(args, string(*f.EntityType))
	}
	if f.EntityID != nil {
		conds = append(conds, "entity_id = ?")
		args = append(args, *f.EntityID)
	}
	if f.OverdueOnly {
		conds = append(conds, "status IN ('pending', 'in_progress')", "due_date < ?")
		args = append(args, f.Now.UTC().Format(time.RFC3339))
	}
	if len(f.Tags) > 0 {
		marks := make([]string, len(f.Tags))
		for i, tag := range f.Tags {
			marks[i] = "?"
			args = append(args, tag)
		}
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM json_each(action_items.tags) WHERE json_each.value IN (%s))",
			strings.Join(marks, ", ")))
	}

	query := `SELECT id, title, description, status, due_date, completed_at, entity_type, entity_id, privacy_level, tags, created_at, updated_at
		FROM action_items`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY due_date ASC NULLS LAST, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing action items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ActionItem
	for rows.Next() {
		a, err := scanActionItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating action items: %w", err)
	}
	return items, nil
}

func (r *SQLiteActionItemRepo) Update(ctx context.Context, a *domain.ActionItem) error {
	a.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(a.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE action_items SET title = ?, description = ?, status = ?, due_date = ?, completed_at = ?, entity_type = ?, entity_id = ?, privacy_level = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		a.Title,
		a.Description,
		string(a.Status),
		nullableTimeToString(a.DueDate, time.RFC3339),
		nullableTimeToString(a.CompletedAt, time.RFC3339),
		entityTypeToValue(a.EntityType),
		a.EntityID,
		string(a.PrivacyLevel),
		tags,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating action item: %w", err)
	}
	return nil
}

func (r *SQLiteActionItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM action_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting action item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting action item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("action item: %w", ErrNotFound)
	}
	return nil
}

// scanActionItem scans one action item row.
func scanActionItem(s scanner) (*domain.ActionItem, error) {
	var a domain.ActionItem
	var statusStr, privacyStr string
	var dueDateStr, completedAtStr, entityTypeStr sql.NullString
	var tagsStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&a.ID, &a.Title, &a.Description, &statusStr,
		&dueDateStr, &completedAtStr,
		&entityTypeStr, &a.EntityID, &privacyStr, &tagsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("action item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning action item: %w", err)
	}

	a.Status = domain.ActionItemStatus(statusStr)
	a.PrivacyLevel = domain.PrivacyLevel(privacyStr)
	a.DueDate = parseNullableTime(dueDateStr, time.RFC3339)
	a.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
	a.EntityType = entityTypeFromNullable(entityTypeStr)
	if a.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}

	var parseErr error
	a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	a.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &a, nil
}
