package testutil

import (
	"time"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/timeutil"
)

// Ptr returns a pointer to v, for optional fixture fields.
func Ptr[T any](v T) *T {
	return &v
}

// Employer options
type EmployerOption func(*domain.Employer)

func WithEmployerCurrent() EmployerOption {
	return func(e *domain.Employer) {
		e.IsCurrent = true
	}
}

func WithEmployerSelf() EmployerOption {
	return func(e *domain.Employer) {
		e.IsSelf = true
	}
}

func NewTestEmployer(name string, opts ...EmployerOption) *domain.Employer {
	e := &domain.Employer{
		Name: name,
		Tags: []string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Person options
type PersonOption func(*domain.Person)

func WithPersonEmail(email string) PersonOption {
	return func(p *domain.Person) {
		p.Email = &email
	}
}

func WithStakeholder() PersonOption {
	return func(p *domain.Person) {
		p.IsStakeholder = true
	}
}

func WithPersonCompany(company string) PersonOption {
	return func(p *domain.Person) {
		p.Company = &company
	}
}

func WithPersonTags(tags ...string) PersonOption {
	return func(p *domain.Person) {
		p.Tags = tags
	}
}

func WithAdditionalInfo(info map[string]any) PersonOption {
	return func(p *domain.Person) {
		p.AdditionalInfo = info
	}
}

func NewTestPerson(fullName string, opts ...PersonOption) *domain.Person {
	p := &domain.Person{
		FullName: fullName,
		Tags:     []string{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Client options
type ClientOption func(*domain.Client)

func WithClientType(t domain.ClientType) ClientOption {
	return func(c *domain.Client) {
		c.Type = t
	}
}

func WithClientStatus(s domain.ClientStatus) ClientOption {
	return func(c *domain.Client) {
		c.Status = s
	}
}

func WithContactPerson(personID int64) ClientOption {
	return func(c *domain.Client) {
		c.ContactPersonID = &personID
	}
}

func WithClientTags(tags ...string) ClientOption {
	return func(c *domain.Client) {
		c.Tags = tags
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	c := &domain.Client{
		Name:   name,
		Type:   domain.ClientCompany,
		Status: domain.ClientActive,
		Tags:   []string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithOnBehalfOf(employerID int64) ProjectOption {
	return func(p *domain.Project) {
		p.OnBehalfOfID = &employerID
	}
}

func WithProjectDates(start, end *time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithProjectTags(tags ...string) ProjectOption {
	return func(p *domain.Project) {
		p.Tags = tags
	}
}

func NewTestProject(name string, clientID int64, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Name:     name,
		ClientID: clientID,
		Status:   domain.ProjectActive,
		Tags:     []string{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WorkSession options
type SessionOption func(*domain.WorkSession)

func WithSessionSummary(summary string) SessionOption {
	return func(s *domain.WorkSession) {
		s.Summary = &summary
	}
}

func WithSessionPrivacy(p domain.PrivacyLevel) SessionOption {
	return func(s *domain.WorkSession) {
		s.PrivacyLevel = p
	}
}

func WithSessionTags(tags ...string) SessionOption {
	return func(s *domain.WorkSession) {
		s.Tags = tags
	}
}

// NewTestWorkSession builds a session starting at start and running for
// the given minutes, with date taken from start's UTC day and duration
// already half-hour rounded.
func NewTestWorkSession(projectID int64, start time.Time, minutes int, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		ProjectID:     projectID,
		Date:          timeutil.LocalDate(start, time.UTC),
		StartTime:     start.UTC(),
		EndTime:       start.UTC().Add(time.Duration(minutes) * time.Minute),
		DurationHours: timeutil.RoundHalfHour(minutes),
		PrivacyLevel:  domain.PrivacyPrivate,
		Tags:          []string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Meeting options
type MeetingOption func(*domain.Meeting)

func WithMeetingProject(projectID int64) MeetingOption {
	return func(m *domain.Meeting) {
		m.ProjectID = &projectID
	}
}

func WithMeetingPrivacy(p domain.PrivacyLevel) MeetingOption {
	return func(m *domain.Meeting) {
		m.PrivacyLevel = p
	}
}

func WithMeetingSummary(summary string) MeetingOption {
	return func(m *domain.Meeting) {
		m.Summary = &summary
	}
}

func WithMeetingTags(tags ...string) MeetingOption {
	return func(m *domain.Meeting) {
		m.Tags = tags
	}
}

func NewTestMeeting(title string, start time.Time, minutes int, opts ...MeetingOption) *domain.Meeting {
	m := &domain.Meeting{
		Title:           title,
		StartTime:       start.UTC(),
		DurationMinutes: minutes,
		PrivacyLevel:    domain.PrivacyPrivate,
		Tags:            []string{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Note options
type NoteOption func(*domain.Note)

func WithNotePrivacy(p domain.PrivacyLevel) NoteOption {
	return func(n *domain.Note) {
		n.PrivacyLevel = p
	}
}

func WithNoteEntity(t domain.EntityType, id int64) NoteOption {
	return func(n *domain.Note) {
		n.EntityType = &t
		n.EntityID = &id
	}
}

func WithNoteTags(tags ...string) NoteOption {
	return func(n *domain.Note) {
		n.Tags = tags
	}
}

func NewTestNote(text string, opts ...NoteOption) *domain.Note {
	n := &domain.Note{
		Text:         text,
		PrivacyLevel: domain.PrivacyPrivate,
		Tags:         []string{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Reminder options
type ReminderOption func(*domain.Reminder)

func WithRecurrence(cfg domain.RecurrenceConfig) ReminderOption {
	return func(r *domain.Reminder) {
		r.Recurrence = &cfg
	}
}

func WithRelatedEntity(t domain.EntityType, id int64) ReminderOption {
	return func(r *domain.Reminder) {
		r.RelatedEntityType = &t
		r.RelatedEntityID = &id
	}
}

func WithSnoozedUntil(until time.Time) ReminderOption {
	return func(r *domain.Reminder) {
		r.SnoozedUntil = &until
	}
}

func WithCompleted() ReminderOption {
	return func(r *domain.Reminder) {
		r.IsCompleted = true
	}
}

func WithReminderTags(tags ...string) ReminderOption {
	return func(r *domain.Reminder) {
		r.Tags = tags
	}
}

func NewTestReminder(message string, at time.Time, opts ...ReminderOption) *domain.Reminder {
	r := &domain.Reminder{
		ReminderTime: at.UTC(),
		Message:      message,
		Tags:         []string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ActionItem options
type ActionItemOption func(*domain.ActionItem)

func WithActionStatus(s domain.ActionItemStatus) ActionItemOption {
	return func(a *domain.ActionItem) {
		a.Status = s
	}
}

func WithActionDueDate(due time.Time) ActionItemOption {
	return func(a *domain.ActionItem) {
		a.DueDate = &due
	}
}

func WithActionEntity(t domain.EntityType, id int64) ActionItemOption {
	return func(a *domain.ActionItem) {
		a.EntityType = &t
		a.EntityID = &id
	}
}

func WithActionTags(tags ...string) ActionItemOption {
	return func(a *domain.ActionItem) {
		a.Tags = tags
	}
}

func NewTestActionItem(title string, opts ...ActionItemOption) *domain.ActionItem {
	a := &domain.ActionItem{
		Title:        title,
		Status:       domain.ActionPending,
		PrivacyLevel: domain.PrivacyPrivate,
		Tags:         []string{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Bookmark options
type BookmarkOption func(*domain.Bookmark)

func WithBookmarkEntity(t domain.EntityType, id int64) BookmarkOption {
	return func(b *domain.Bookmark) {
		b.EntityType = &t
		b.EntityID = &id
	}
}

func WithBookmarkTags(tags ...string) BookmarkOption {
	return func(b *domain.Bookmark) {
		b.Tags = tags
	}
}

func NewTestBookmark(title, url string, opts ...BookmarkOption) *domain.Bookmark {
	b := &domain.Bookmark{
		Title:        title,
		URL:          url,
		PrivacyLevel: domain.PrivacyPrivate,
		Tags:         []string{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// User options
type UserOption func(*domain.User)

func WithUserTimezone(tz string) UserOption {
	return func(u *domain.User) {
		u.Timezone = tz
	}
}

func WithUserWeekBoundary(b domain.WeekBoundary) UserOption {
	return func(u *domain.User) {
		u.WeekBoundary = b
	}
}

func WithUserDefaultPrivacy(p domain.PrivacyLevel) UserOption {
	return func(u *domain.User) {
		u.DefaultPrivacy = p
	}
}

func NewTestUser(opts ...UserOption) *domain.User {
	u := &domain.User{
		FullName:       "Test User",
		Timezone:       "UTC",
		WeekBoundary:   domain.WeekMonFri,
		DefaultPrivacy: domain.PrivacyPrivate,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
