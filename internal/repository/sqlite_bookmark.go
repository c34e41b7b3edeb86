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

// SQLiteBookmarkRepo implements BookmarkRepo using a SQLite database.
type SQLiteBookmarkRepo struct {
	db db.DBTX
}

// NewSQLiteBookmarkRepo creates a new SQLiteBookmarkRepo.
func NewSQLiteBookmarkRepo(conn db.DBTX) *SQLiteBookmarkRepo {
	return &SQLiteBookmarkRepo{db: conn}
}

func (r *SQLiteBookmarkRepo) Create(ctx context.Context, b *domain.Bookmark) error {
	now := nowUTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	tags, err := tagsToJSON(b.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO bookmarks (title, url, description, entity_type, entity_id, privacy_level, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		b.Title,
		b.URL,
		b.Description,
		entityTypeToValue(b.EntityType),
		b.EntityID,
		string(b.PrivacyLevel),
		tags,
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting bookmark: %w", err)
	}
	b.ID, err = lastInsertID(res, "bookmark")
	return err
}

func (r *SQLiteBookmarkRepo) GetByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	query := `SELECT id, title, url, description, entity_type, entity_id, privacy_level, tags, created_at, updated_at
		FROM bookmarks WHERE id = ?`
	return scanBookmark(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteBookmarkRepo) List(ctx context.Context, f BookmarkFilter) ([]*domain.Bookmark, error) {
	var conds []string
	var args []any

	if f.EntityType != nil {
		conds = append(conds, "entity_type = ?")
		args = append(args, string(*f.EntityType))
	}
	if f.EntityID != nil {
		conds = append(conds, "entity_id = ?")
		args = append(args, *f.EntityID)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		conds = append(conds, `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(url) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if len(f.Tags) > 0 {
		marks := make([]string, len(f.Tags))
		for i, tag := range f.Tags {
			marks[i] = "?"
			args = append(args, tag)
		}
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM json_each(bookmarks.tags) WHERE json_each.value IN (%s))",
			strings.Join(marks, ", ")))
	}

	query := `SELECT id, title, url, description, entity_type, entity_id, privacy_level, tags, created_at, updated_at
		FROM bookmarks`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []*domain.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (r *SQLiteBookmarkRepo) Update(ctx context.Context, b *domain.Bookmark) error {
	b.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(b.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE bookmarks SET title = ?, url = ?, description = ?, entity_type = ?, entity_id = ?, privacy_level = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		b.Title,
		b.URL,
		b.Description,
		entityTypeToValue(b.EntityType),
		b.EntityID,
		string(b.PrivacyLevel),
		tags,
		b.UpdatedAt.Format(time.RFC3339),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bookmark: %w", err)
	}
	return nil
}

func (r *SQLiteBookmarkRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bookmark: %w", ErrNotFound)
	}
	return nil
}

// escapeLike escapes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// scanBookmark scans one bookmark row.
func scanBookmark(s scanner) (*domain.Bookmark, error) {
	var b domain.Bookmark
	var privacyStr string
	var entityTypeStr sql.NullString
	var tagsStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&b.ID, &b.Title, &b.URL, &b.Description,
		&entityTypeStr, &b.EntityID, &privacyStr, &tagsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("bookmark: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning bookmark: %w", err)
	}

	b.PrivacyLevel = domain.PrivacyLevel(privacyStr)
	b.EntityType = entityTypeFromNullable(entityTypeStr)
	if b.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}

	var parseErr error
	b.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	b.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &b, nil
}
