package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// SQLiteNoteRepo implements NoteRepo using a SQLite database.
type SQLiteNoteRepo struct {
	db db.DBTX
}

// NewSQLiteNoteRepo creates a new SQLiteNoteRepo.
func NewSQLiteNoteRepo(conn db.DBTX) *SQLiteNoteRepo {
	return &SQLiteNoteRepo{db: conn}
}

func (r *SQLiteNoteRepo) Create(ctx context.Context, n *domain.Note) error {
	now := nowUTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	tags, err := tagsToJSON(n.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO notes (text, privacy_level, entity_type, entity_id, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		n.Text,
		string(n.PrivacyLevel),
		entityTypeToValue(n.EntityType),
		n.EntityID,
		tags,
		n.CreatedAt.Format(time.RFC3339),
		n.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	n.ID, err = lastInsertID(res, "note")
	return err
}

func (r *SQLiteNoteRepo) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	query := `SELECT id, text, privacy_level, entity_type, entity_id, tags, created_at, updated_at
		FROM notes WHERE id = ?`
	return scanNote(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteNoteRepo) Update(ctx context.Context, n *domain.Note) error {
	n.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(n.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE notes SET text = ?, privacy_level = ?, entity_type = ?, entity_id = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		n.Text,
		string(n.PrivacyLevel),
		entityTypeToValue(n.EntityType),
		n.EntityID,
		tags,
		n.UpdatedAt.Format(time.RFC3339),
		n.ID,
	)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	return nil
}

// scanNote scans one note row.
func scanNote(s scanner) (*domain.Note, error) {
	var n domain.Note
	var privacyStr string
	var entityTypeStr sql.NullString
	var tagsStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&n.ID, &n.Text, &privacyStr,
		&entityTypeStr, &n.EntityID, &tagsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("note: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning note: %w", err)
	}

	n.PrivacyLevel = domain.PrivacyLevel(privacyStr)
	n.EntityType = entityTypeFromNullable(entityTypeStr)
	if n.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}

	var parseErr error
	n.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	n.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &n, nil
}
