package contract

import (
	"github.com/alexanderramin/mosaic/internal/domain"
)

// User is the wire form of the profile singleton. ID is zero until the
// first profile write persists the row.
type User struct {
	ID                 int64   `json:"id"`
	FullName           string  `json:"full_name"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Timezone           string  `json:"timezone"`
	WeekBoundary       string  `json:"week_boundary"`
	DefaultPrivacy     string  `json:"default_privacy_level"`
	WorkingHoursStart  *int    `json:"working_hours_start,omitempty"`
	WorkingHoursEnd    *int    `json:"working_hours_end,omitempty"`
	CommunicationStyle *string `json:"communication_style,omitempty"`
	WorkApproach       *string `json:"work_approach,omitempty"`
	ProfileLastUpdated *string `json:"profile_last_updated,omitempty"`
	CreatedAt          *string `json:"created_at,omitempty"`
	UpdatedAt          *string `json:"updated_at,omitempty"`
}

func FromUser(u *domain.User) User {
	out := User{
		ID:                 u.ID,
		FullName:           u.FullName,
		Email:              u.Email,
		Phone:              u.Phone,
		Timezone:           u.Timezone,
		WeekBoundary:       string(u.WeekBoundary),
		DefaultPrivacy:     string(u.DefaultPrivacy),
		WorkingHoursStart:  u.WorkingHoursStart,
		WorkingHoursEnd:    u.WorkingHoursEnd,
		CommunicationStyle: u.CommunicationStyle,
		WorkApproach:       u.WorkApproach,
		ProfileLastUpdated: renderTimePtr(u.ProfileLastUpdated),
	}
	// A synthesized profile has no row yet, so no storage timestamps.
	if !u.CreatedAt.IsZero() {
		out.CreatedAt = renderTimePtr(&u.CreatedAt)
	}
	if !u.UpdatedAt.IsZero() {
		out.UpdatedAt = renderTimePtr(&u.UpdatedAt)
	}
	return out
}
