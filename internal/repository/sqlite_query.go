package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/mosaic/internal/db"
)

// SQLiteQueryRepo runs SQL produced by the query compiler. Entity rows
// come back as domain structs via the same scan functions the CRUD
// repositories use; aggregate values come back in driver-native form
// (int64, float64, string, or nil).
type SQLiteQueryRepo struct {
	db db.DBTX
}

// NewSQLiteQueryRepo creates a new SQLiteQueryRepo.
func NewSQLiteQueryRepo(conn db.DBTX) *SQLiteQueryRepo {
	return &SQLiteQueryRepo{db: conn}
}

// GroupRow is one grouped-aggregation result row: the group key tuple
// followed by the aggregate value.
type GroupRow struct {
	Keys  []any
	Value any
}

// EntityRows executes an entity SELECT whose column list follows
// SelectList(table, …) and scans each row with the table's scanner.
func (r *SQLiteQueryRepo) EntityRows(ctx context.Context, table, query string, args []any) ([]any, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var entity any
		var scanErr error
		switch table {
		case "people":
			entity, scanErr = scanPerson(rows)
		case "employers":
			entity, scanErr = scanEmployer(rows)
		case "clients":
			entity, scanErr = scanClient(rows)
		case "projects":
			entity, scanErr = scanProject(rows)
		case "work_sessions":
			entity, scanErr = scanWorkSession(rows)
		case "meetings":
			entity, scanErr = scanMeeting(rows)
		case "notes":
			entity, scanErr = scanNote(rows)
		case "reminders":
			entity, scanErr = scanReminder(rows)
		default:
			return nil, fmt.Errorf("no scanner for table %s", table)
		}
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return out, nil
}

// Count executes a single-value COUNT query.
func (r *SQLiteQueryRepo) Count(ctx context.Context, query string, args []any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}

// Aggregate executes a scalar aggregation and returns the raw value,
// which is nil when the aggregate is NULL over an empty input.
func (r *SQLiteQueryRepo) Aggregate(ctx context.Context, query string, args []any) (any, error) {
	var v any
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&v); err != nil {
		return nil, fmt.Errorf("running aggregation: %w", err)
	}
	return v, nil
}

// AggregateGroups executes a grouped aggregation with keyCount group
// columns followed by one aggregate column.
func (r *SQLiteQueryRepo) AggregateGroups(ctx context.Context, query string, args []any, keyCount int) ([]GroupRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running grouped aggregation: %w", err)
	}
	defer rows.Close()

	var out []GroupRow
	for rows.Next() {
		values := make([]any, keyCount+1)
		dests := make([]any, keyCount+1)
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scanning aggregation row: %w", err)
		}
		out = append(out, GroupRow{Keys: values[:keyCount], Value: values[keyCount]})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aggregation rows: %w", err)
	}
	return out, nil
}
