package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/mosaic/internal/domain"
)

// Update params follow one convention: a nil pointer leaves the field
// unchanged, a non-nil pointer sets it. Slices and maps are tri-state
// through nil-ness, so a provided empty slice clears the set.

// LogWorkSessionParams carries a work session create. Duration and the
// calendar date are derived, never supplied.
type LogWorkSessionParams struct {
	ProjectID    int64
	StartTime    time.Time
	EndTime      time.Time
	Summary      *string
	PrivacyLevel *domain.PrivacyLevel
	Tags         []string
}

type UpdateWorkSessionParams struct {
	ProjectID    *int64
	StartTime    *time.Time
	EndTime      *time.Time
	Summary      *string
	PrivacyLevel *domain.PrivacyLevel
	Tags         []string
}

// TimecardEntry is one output row of the timecard aggregation: the sum
// of the day's rounded durations and the day's distinct summaries
// joined with newlines in start-time order.
type TimecardEntry struct {
	Date    time.Time
	Hours   decimal.Decimal
	Summary string
}

type LogMeetingParams struct {
	Title           string
	StartTime       time.Time
	DurationMinutes int
	Summary         *string
	PrivacyLevel    *domain.PrivacyLevel
	ProjectID       *int64
	MeetingType     *string
	Location        *string
	Tags            []string
	AttendeeIDs     []int64
}

type UpdateMeetingParams struct {
	Title           *string
	StartTime       *time.Time
	DurationMinutes *int
	Summary         *string
	PrivacyLevel    *domain.PrivacyLevel
	ProjectID       *int64
	MeetingType     *string
	Location        *string
	Tags            []string
	AttendeeIDs     []int64
}

// MeetingRecord is a meeting with its attendee set and, for a meeting
// logged against a project, the id of the work session generated in
// the same transaction.
type MeetingRecord struct {
	Meeting           *domain.Meeting
	AttendeeIDs       []int64
	AutoWorkSessionID *int64
}

// CompleteReminderResult carries the completed row and, for recurring
// reminders, the next occurrence created alongside it.
type CompleteReminderResult struct {
	Completed *domain.Reminder
	Next      *domain.Reminder
}

// BulkCompleteResult reports per-id outcomes of a bulk completion.
// Failed ids did not resolve to a reminder; other ids completed.
type BulkCompleteResult struct {
	CompletedIDs []int64
	FailedIDs    []int64
}

type UpdatePersonParams struct {
	FullName       *string
	Email          *string
	Phone          *string
	LinkedInURL    *string
	IsStakeholder  *bool
	Company        *string
	Title          *string
	Notes          *string
	Tags           []string
	AdditionalInfo map[string]any
}

type UpdateClientParams struct {
	Name            *string
	Type            *domain.ClientType
	Status          *domain.ClientStatus
	ContactPersonID *int64
	Notes           *string
	Tags            []string
}

type UpdateProjectParams struct {
	Name         *string
	ClientID     *int64
	OnBehalfOfID *int64
	Description  *string
	Status       *domain.ProjectStatus
	StartDate    *time.Time
	EndDate      *time.Time
	Tags         []string
}

type UpdateNoteParams struct {
	Text         *string
	PrivacyLevel *domain.PrivacyLevel
	EntityType   *domain.EntityType
	EntityID     *int64
	Tags         []string
}

type UpdateActionItemParams struct {
	Title        *string
	Description  *string
	Status       *domain.ActionItemStatus
	DueDate      *time.Time
	EntityType   *domain.EntityType
	EntityID     *int64
	PrivacyLevel *domain.PrivacyLevel
	Tags         []string
}

type UpdateBookmarkParams struct {
	Title        *string
	URL          *string
	Description  *string
	EntityType   *domain.EntityType
	EntityID     *int64
	PrivacyLevel *domain.PrivacyLevel
	Tags         []string
}

type UpdateUserParams struct {
	FullName           *string
	Email              *string
	Phone              *string
	Timezone           *string
	WeekBoundary       *domain.WeekBoundary
	DefaultPrivacy     *domain.PrivacyLevel
	WorkingHoursStart  *int
	WorkingHoursEnd    *int
	CommunicationStyle *string
	WorkApproach       *string
}
