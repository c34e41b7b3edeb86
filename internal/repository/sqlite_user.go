package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database. The users
// table holds at most one row (id = 1).
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) Get(ctx context.Context) (*domain.User, error) {
	query := `SELECT id, full_name, email, phone, timezone, week_boundary, default_privacy_level,
		working_hours_start, working_hours_end, communication_style, work_approach, profile_last_updated,
		created_at, updated_at
		FROM users WHERE id = 1`
	row := r.db.QueryRowContext(ctx, query)

	var u domain.User
	var boundaryStr, privacyStr string
	var profileUpdatedStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.Phone,
		&u.Timezone, &boundaryStr, &privacyStr,
		&u.WorkingHoursStart, &u.WorkingHoursEnd,
		&u.CommunicationStyle, &u.WorkApproach, &profileUpdatedStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	u.WeekBoundary = domain.WeekBoundary(boundaryStr)
	u.DefaultPrivacy = domain.PrivacyLevel(privacyStr)
	u.ProfileLastUpdated = parseNullableTime(profileUpdatedStr, time.RFC3339)

	var parseErr error
	u.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	u.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &u, nil
}

func (r *SQLiteUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	now := nowUTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	u.ID = 1

	query := `INSERT INTO users (id, full_name, email, phone, timezone, week_boundary, default_privacy_level,
		working_hours_start, working_hours_end, communication_style, work_approach, profile_last_updated,
		created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			phone = excluded.phone,
			timezone = excluded.timezone,
			week_boundary = excluded.week_boundary,
			default_privacy_level = excluded.default_privacy_level,
			working_hours_start = excluded.working_hours_start,
			working_hours_end = excluded.working_hours_end,
			communication_style = excluded.communication_style,
			work_approach = excluded.work_approach,
			profile_last_updated = excluded.profile_last_updated,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		u.FullName,
		u.Email,
		u.Phone,
		u.Timezone,
		string(u.WeekBoundary),
		string(u.DefaultPrivacy),
		u.WorkingHoursStart,
		u.WorkingHoursEnd,
		u.CommunicationStyle,
		u.WorkApproach,
		nullableTimeToString(u.ProfileLastUpdated, time.RFC3339),
		u.CreatedAt.Format(time.RFC3339),
		u.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
