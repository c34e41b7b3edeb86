package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/query"
	"github.com/alexanderramin/mosaic/internal/repository"
)

type WorkSessionService interface {
	Log(ctx context.Context, p LogWorkSessionParams) (*domain.WorkSession, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkSession, error)
	Update(ctx context.Context, id int64, p UpdateWorkSessionParams) (*domain.WorkSession, error)
	Delete(ctx context.Context, id int64) error
	Timecard(ctx context.Context, projectID int64, from, to time.Time, includePrivate bool) ([]TimecardEntry, error)
}

type MeetingService interface {
	Log(ctx context.Context, p LogMeetingParams) (*MeetingRecord, error)
	GetByID(ctx context.Context, id int64) (*MeetingRecord, error)
	Update(ctx context.Context, id int64, p UpdateMeetingParams) (*MeetingRecord, error)
	Delete(ctx context.Context, id int64) error
}

type ReminderService interface {
	Add(ctx context.Context, r *domain.Reminder) error
	Complete(ctx context.Context, id int64) (*CompleteReminderResult, error)
	Snooze(ctx context.Context, id int64, until time.Time) (*domain.Reminder, error)
	BulkComplete(ctx context.Context, ids []int64) (*BulkCompleteResult, error)
	List(ctx context.Context, f repository.ReminderFilter) ([]*domain.Reminder, error)
	Delete(ctx context.Context, id int64) error
}

// DirectoryService manages the who-and-what graph: people, clients,
// employers, projects, and the employment rows joining people to
// clients over time.
type DirectoryService interface {
	AddPerson(ctx context.Context, p *domain.Person) error
	UpdatePerson(ctx context.Context, id int64, p UpdatePersonParams) (*domain.Person, error)
	AddClient(ctx context.Context, c *domain.Client) error
	UpdateClient(ctx context.Context, id int64, p UpdateClientParams) (*domain.Client, error)
	AddEmployer(ctx context.Context, e *domain.Employer) error
	AddProject(ctx context.Context, pr *domain.Project) error
	UpdateProject(ctx context.Context, id int64, p UpdateProjectParams) (*domain.Project, error)
	AddEmployment(ctx context.Context, h *domain.EmploymentHistory) error
	EndEmployment(ctx context.Context, id int64, end time.Time) (*domain.EmploymentHistory, error)
}

type NoteService interface {
	Add(ctx context.Context, n *domain.Note) error
	Update(ctx context.Context, id int64, p UpdateNoteParams) (*domain.Note, error)
}

// TaskService manages action items and bookmarks.
type TaskService interface {
	AddActionItem(ctx context.Context, a *domain.ActionItem) error
	UpdateActionItem(ctx context.Context, id int64, p UpdateActionItemParams) (*domain.ActionItem, error)
	ListActionItems(ctx context.Context, f repository.ActionItemFilter) ([]*domain.ActionItem, error)
	DeleteActionItem(ctx context.Context, id int64) error
	AddBookmark(ctx context.Context, b *domain.Bookmark) error
	UpdateBookmark(ctx context.Context, id int64, p UpdateBookmarkParams) (*domain.Bookmark, error)
	ListBookmarks(ctx context.Context, f repository.BookmarkFilter) ([]*domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, id int64) error
}

// UserService reads and writes the singleton profile. Get never fails
// on an empty table; it synthesizes a profile from the configured
// defaults until update_user_profile persists one.
type UserService interface {
	Get(ctx context.Context) (*domain.User, error)
	Update(ctx context.Context, p UpdateUserParams) (*domain.User, error)
}

type QueryService interface {
	Run(ctx context.Context, q *query.Query) (*query.Result, error)
	RunLoose(ctx context.Context, text string) (*query.Result, error)
}
