package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// SQLiteEmploymentRepo implements EmploymentRepo using a SQLite database.
type SQLiteEmploymentRepo struct {
	db db.DBTX
}

// NewSQLiteEmploymentRepo creates a new SQLiteEmploymentRepo.
func NewSQLiteEmploymentRepo(conn db.DBTX) *SQLiteEmploymentRepo {
	return &SQLiteEmploymentRepo{db: conn}
}

func (r *SQLiteEmploymentRepo) Create(ctx context.Context, h *domain.EmploymentHistory) error {
	query := `INSERT INTO employment_history (person_id, client_id, role, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		h.PersonID,
		h.ClientID,
		h.Role,
		h.StartDate.Format(dateLayout),
		nullableTimeToString(h.EndDate, dateLayout),
	)
	if err != nil {
		return writeErr("inserting employment row", err)
	}
	h.ID, err = lastInsertID(res, "employment row")
	return err
}

func (r *SQLiteEmploymentRepo) GetByID(ctx context.Context, id int64) (*domain.EmploymentHistory, error) {
	query := `SELECT id, person_id, client_id, role, start_date, end_date
		FROM employment_history WHERE id = ?`
	return scanEmployment(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEmploymentRepo) ListByPerson(ctx context.Context, personID int64) ([]*domain.EmploymentHistory, error) {
	query := `SELECT id, person_id, client_id, role, start_date, end_date
		FROM employment_history WHERE person_id = ? ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("listing employment rows: %w", err)
	}
	defer rows.Close()

	var history []*domain.EmploymentHistory
	for rows.Next() {
		h, err := scanEmployment(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employment rows: %w", err)
	}
	return history, nil
}

func (r *SQLiteEmploymentRepo) HasCurrent(ctx context.Context, personID, clientID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM employment_history
		WHERE person_id = ? AND client_id = ? AND end_date IS NULL`
	var n int
	if err := r.db.QueryRowContext(ctx, query, personID, clientID).Scan(&n); err != nil {
		return false, fmt.Errorf("checking current employment: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteEmploymentRepo) SetEndDate(ctx context.Context, id int64, end time.Time) error {
	query := `UPDATE employment_history SET end_date = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, end.Format(dateLayout), id)
	if err != nil {
		return fmt.Errorf("closing employment row: %w", err)
	}
	return nil
}

// scanEmployment scans one employment history row.
func scanEmployment(s scanner) (*domain.EmploymentHistory, error) {
	var h domain.EmploymentHistory
	var startDateStr string
	var endDateStr sql.NullString

	err := s.Scan(&h.ID, &h.PersonID, &h.ClientID, &h.Role, &startDateStr, &endDateStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employment row: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employment row: %w", err)
	}

	var parseErr error
	h.StartDate, parseErr = time.Parse(dateLayout, startDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	h.EndDate = parseNullableTime(endDateStr, dateLayout)
	return &h, nil
}
