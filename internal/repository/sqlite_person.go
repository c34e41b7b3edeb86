package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// SQLitePersonRepo implements PersonRepo using a SQLite database.
type SQLitePersonRepo struct {
	db db.DBTX
}

// NewSQLitePersonRepo creates a new SQLitePersonRepo.
func NewSQLitePersonRepo(conn db.DBTX) *SQLitePersonRepo {
	return &SQLitePersonRepo{db: conn}
}

func (r *SQLitePersonRepo) Create(ctx context.Context, p *domain.Person) error {
	now := nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	tags, err := tagsToJSON(p.Tags)
	if err != nil {
		return err
	}
	info, err := mapToJSON(p.AdditionalInfo)
	if err != nil {
		return err
	}

	query := `INSERT INTO people (full_name, email, phone, linkedin_url, is_stakeholder,
		company, title, notes, tags, additional_info, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.FullName,
		p.Email,
		p.Phone,
		p.LinkedInURL,
		boolToInt(p.IsStakeholder),
		p.Company,
		p.Title,
		p.Notes,
		tags,
		info,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting person: %w", err)
	}
	p.ID, err = lastInsertID(res, "person")
	return err
}

func (r *SQLitePersonRepo) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `SELECT id, full_name, email, phone, linkedin_url, is_stakeholder,
		company, title, notes, tags, additional_info, created_at, updated_at
		FROM people WHERE id = ?`
	return scanPerson(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePersonRepo) List(ctx context.Context) ([]*domain.Person, error) {
	query := `SELECT id, full_name, email, phone, linkedin_url, is_stakeholder,
		company, title, notes, tags, additional_info, created_at, updated_at
		FROM people ORDER BY full_name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return people, nil
}

func (r *SQLitePersonRepo) Update(ctx context.Context, p *domain.Person) error {
	p.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(p.Tags)
	if err != nil {
		return err
	}
	info, err := mapToJSON(p.AdditionalInfo)
	if err != nil {
		return err
	}

	query := `UPDATE people SET full_name = ?, email = ?, phone = ?, linkedin_url = ?,
		is_stakeholder = ?, company = ?, title = ?, notes = ?, tags = ?, additional_info = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		p.FullName,
		p.Email,
		p.Phone,
		p.LinkedInURL,
		boolToInt(p.IsStakeholder),
		p.Company,
		p.Title,
		p.Notes,
		tags,
		info,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	return nil
}

// scanPerson scans one person row.
func scanPerson(s scanner) (*domain.Person, error) {
	var p domain.Person
	var isStakeholder int
	var tagsStr, createdAtStr, updatedAtStr string
	var infoStr sql.NullString

	err := s.Scan(
		&p.ID, &p.FullName, &p.Email, &p.Phone, &p.LinkedInURL,
		&isStakeholder, &p.Company, &p.Title, &p.Notes,
		&tagsStr, &infoStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("person: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning person: %w", err)
	}

	p.IsStakeholder = intToBool(isStakeholder)
	if p.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}
	if p.AdditionalInfo, err = mapFromJSON(infoStr); err != nil {
		return nil, err
	}

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
