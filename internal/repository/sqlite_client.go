package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

// NewSQLiteClientRepo creates a new SQLiteClientRepo.
func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: conn}
}

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	now := nowUTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	tags, err := tagsToJSON(c.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO clients (name, type, status, contact_person_id, notes, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		string(c.Type),
		string(c.Status),
		c.ContactPersonID,
		c.Notes,
		tags,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return writeErr("inserting client", err)
	}
	c.ID, err = lastInsertID(res, "client")
	return err
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT id, name, type, status, contact_person_id, notes, tags, created_at, updated_at
		FROM clients WHERE id = ?`
	return scanClient(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT id, name, type, status, contact_person_id, notes, tags, created_at, updated_at
		FROM clients ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedAt = nowUTC()
	tags, err := tagsToJSON(c.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE clients SET name = ?, type = ?, status = ?, contact_person_id = ?, notes = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		c.Name,
		string(c.Type),
		string(c.Status),
		c.ContactPersonID,
		c.Notes,
		tags,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return writeErr("updating client", err)
	}
	return nil
}

// scanClient scans one client row.
func scanClient(s scanner) (*domain.Client, error) {
	var c domain.Client
	var typeStr, statusStr string
	var tagsStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&c.ID, &c.Name, &typeStr, &statusStr,
		&c.ContactPersonID, &c.Notes, &tagsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("client: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}

	c.Type = domain.ClientType(typeStr)
	c.Status = domain.ClientStatus(statusStr)
	if c.Tags, err = tagsFromJSON(tagsStr); err != nil {
		return nil, err
	}

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &c, nil
}
