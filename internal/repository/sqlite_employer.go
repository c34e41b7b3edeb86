package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// SQLiteEmployerRepo implements EmployerRepo using a SQLite database.
type SQLiteEmployerRepo struct {
	db db.DBTX
}

// NewSQLiteEmployerRepo creates a new SQLiteEmployerRepo.
func NewSQLiteEmployerRepo(conn db.DBTX) *SQLiteEmployerRepo {
	return &SQLiteEmployerRepo{db: conn}
}

func (r *SQLiteEmployerRepo) Create(ctx context.Context, e *domain.Employer) error {
	now := nowUTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	tags, err := tagsToJSON(e.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO employers (name, is_current, is_self, contact_info, notes, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.Name,
		boolToInt(e.IsCurrent),
		boolToInt(e.IsSelf),
		e.ContactInfo,
		e.Notes,
		tags,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting employer: %w", err)
	}
	e.ID, err = lastInsertID(res, "employer")
	return err
}

func (r *SQLiteEmployerRepo) GetByID(ctx context.Context, id int64) (*domain.Employer, error) {
	query := `SELECT id, name, is_current, is_self, contact_info, notes, tags, created_at, updated_at
		FROM employers WHERE id = ?`
	return scanEmployer(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEmployerRepo) List(ctx context.Context) ([]*domain.Employer, error) {
	query := `SELECT id, name, is_current, is_self, contact_info, notes, tags, created_at, updated_at
		FROM employers ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employers: %w", err)
	}
	defer rows.Close()

	var employers []*domain.Employer
	for rows.Next() {
		e, err := scanEmployer(rows)
		if err != nil {
			return nil, err
		}
		employers = append(employers, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employers: %w", err)
	}
	return employers, nil
}

func (r *SQLiteEmployerRepo) Update(ctx context.Context, e *domain.Employer) error {
	e.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(e.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE employers SET name = ?, is_current = ?, is_self = ?, contact_info = ?, notes = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		e.Name,
		boolToInt(e.IsCurrent),
		boolToInt(e.IsSelf),
		e.ContactInfo,
		e.Notes,
		tags,
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating employer: %w", err)
	}
	return nil
}

// scanEmployer scans one employer row.
func scanEmployer(s scanner) (*domain.Employer, error) {
	var e domain.Employer
	var isCurrent, isSelf int
	var tagsStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&e.ID, &e.Name, &isCurrent, &isSelf,
		&e.ContactInfo, &e.Notes, &tagsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employer: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employer: %w", err)
	}

	e.IsCurrent = intToBool(isCurrent)
	e.IsSelf = intToBool(isSelf)
	if e.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &e, nil
}
