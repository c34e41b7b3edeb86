package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/mosaic/internal/domain"
)

// Every repository takes a db.DBTX, so the same methods run against the
// pool or against an enclosing transaction handed out by db.UnitOfWork.
// Create stamps created_at/updated_at and writes the assigned id back
// onto the entity; Update refreshes updated_at.

type EmployerRepo interface {
	Create(ctx context.Context, e *domain.Employer) error
	GetByID(ctx context.Context, id int64) (*domain.Employer, error)
	List(ctx context.Context) ([]*domain.Employer, error)
	Update(ctx context.Context, e *domain.Employer) error
}

type PersonRepo interface {
	Create(ctx context.Context, p *domain.Person) error
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
	Update(ctx context.Context, p *domain.Person) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
}

type EmploymentRepo interface {
	Create(ctx context.Context, h *domain.EmploymentHistory) error
	GetByID(ctx context.Context, id int64) (*domain.EmploymentHistory, error)
	ListByPerson(ctx context.Context, personID int64) ([]*domain.EmploymentHistory, error)
	// HasCurrent reports whether an open row (end_date IS NULL) already
	// exists for the person at the client.
	HasCurrent(ctx context.Context, personID, clientID int64) (bool, error)
	SetEndDate(ctx context.Context, id int64, end time.Time) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type WorkSessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id int64) (*domain.WorkSession, error)
	// ListForTimecard returns the project's sessions with date in
	// [from, to], restricted to the access mode's privacy levels,
	// ordered by date then start_time.
	ListForTimecard(ctx context.Context, projectID int64, from, to time.Time, access domain.AccessMode) ([]*domain.WorkSession, error)
	Update(ctx context.Context, s *domain.WorkSession) error
	Delete(ctx context.Context, id int64) error
}

type MeetingRepo interface {
	Create(ctx context.Context, m *domain.Meeting) error
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
	Update(ctx context.Context, m *domain.Meeting) error
	Delete(ctx context.Context, id int64) error
	AddAttendee(ctx context.Context, meetingID, personID int64) error
	ListAttendees(ctx context.Context, meetingID int64) ([]domain.MeetingAttendee, error)
	DeleteAttendees(ctx context.Context, meetingID int64) error
}

type NoteRepo interface {
	Create(ctx context.Context, n *domain.Note) error
	GetByID(ctx context.Context, id int64) (*domain.Note, error)
	Update(ctx context.Context, n *domain.Note) error
}

// ReminderFilter narrows a reminder listing. Status is one of
// all | active | completed | snoozed (empty means all); Tags matches
// rows carrying any of the given tags.
type ReminderFilter struct {
	Status     string
	EntityType *domain.EntityType
	EntityID   *int64
	Tags       []string
}

type ReminderRepo interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, id int64) (*domain.Reminder, error)
	List(ctx context.Context, f ReminderFilter) ([]*domain.Reminder, error)
	// ListDue returns reminders whose dispatch predicate holds at now:
	// not completed, reminder_time reached, snooze expired or absent,
	// and not yet notified for the current reminder_time.
	ListDue(ctx context.Context, now time.Time) ([]*domain.Reminder, error)
	Update(ctx context.Context, r *domain.Reminder) error
	// MarkNotified records the dispatch ledger entry for a fired reminder.
	MarkNotified(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

// ActionItemFilter narrows an action item listing. OverdueOnly keeps
// pending/in_progress rows whose due_date has passed.
type ActionItemFilter struct {
	Status      *domain.ActionItemStatus
	EntityType  *domain.EntityType
	EntityID    *int64
	OverdueOnly bool
	Now         time.Time
	Tags        []string
}

type ActionItemRepo interface {
	Create(ctx context.Context, a *domain.ActionItem) error
	GetByID(ctx context.Context, id int64) (*domain.ActionItem, error)
	List(ctx context.Context, f ActionItemFilter) ([]*domain.ActionItem, error)
	Update(ctx context.Context, a *domain.ActionItem) error
	Delete(ctx context.Context, id int64) error
}

// BookmarkFilter narrows a bookmark listing. Search matches title or
// URL case-insensitively.
type BookmarkFilter struct {
	EntityType *domain.EntityType
	EntityID   *int64
	Search     string
	Tags       []string
}

type BookmarkRepo interface {
	Create(ctx context.Context, b *domain.Bookmark) error
	GetByID(ctx context.Context, id int64) (*domain.Bookmark, error)
	List(ctx context.Context, f BookmarkFilter) ([]*domain.Bookmark, error)
	Update(ctx context.Context, b *domain.Bookmark) error
	Delete(ctx context.Context, id int64) error
}

type UserRepo interface {
	// Get returns the singleton profile row, or ErrNotFound while no
	// update has persisted it yet.
	Get(ctx context.Context) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) error
}
