package contract

import (
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/service"
)

func renderEntityType(t *domain.EntityType) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// Note is the wire form of an annotation.
type Note struct {
	ID           int64    `json:"id"`
	Text         string   `json:"text"`
	PrivacyLevel string   `json:"privacy_level"`
	EntityType   *string  `json:"entity_type,omitempty"`
	EntityID     *int64   `json:"entity_id,omitempty"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func FromNote(n *domain.Note) Note {
	return Note{
		ID:           n.ID,
		Text:         n.Text,
		PrivacyLevel: string(n.PrivacyLevel),
		EntityType:   renderEntityType(n.EntityType),
		EntityID:     n.EntityID,
		Tags:         renderTags(n.Tags),
		CreatedAt:    renderTime(n.CreatedAt),
		UpdatedAt:    renderTime(n.UpdatedAt),
	}
}

// Recurrence is the wire form of a reminder's repeat rule.
type Recurrence struct {
	Frequency  string `json:"frequency"`
	DayOfWeek  *int   `json:"day_of_week,omitempty"`
	DayOfMonth *int   `json:"day_of_month,omitempty"`
}

// Reminder is the wire form of a scheduled notification.
type Reminder struct {
	ID                int64       `json:"id"`
	ReminderTime      string      `json:"reminder_time"`
	Message           string      `json:"message"`
	IsCompleted       bool        `json:"is_completed"`
	Recurrence        *Recurrence `json:"recurrence_config,omitempty"`
	RelatedEntityType *string     `json:"related_entity_type,omitempty"`
	RelatedEntityID   *int64      `json:"related_entity_id,omitempty"`
	SnoozedUntil      *string     `json:"snoozed_until,omitempty"`
	LastNotifiedAt    *string     `json:"last_notified_at,omitempty"`
	Tags              []string    `json:"tags"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at"`
}

func FromReminder(r *domain.Reminder) Reminder {
	out := Reminder{
		ID:                r.ID,
		ReminderTime:      renderTime(r.ReminderTime),
		Message:           r.Message,
		IsCompleted:       r.IsCompleted,
		RelatedEntityType: renderEntityType(r.RelatedEntityType),
		RelatedEntityID:   r.RelatedEntityID,
		SnoozedUntil:      renderTimePtr(r.SnoozedUntil),
		LastNotifiedAt:    renderTimePtr(r.LastNotifiedAt),
		Tags:              renderTags(r.Tags),
		CreatedAt:         renderTime(r.CreatedAt),
		UpdatedAt:         renderTime(r.UpdatedAt),
	}
	if r.Recurrence != nil {
		out.Recurrence = &Recurrence{
			Frequency:  string(r.Recurrence.Frequency),
			DayOfWeek:  r.Recurrence.DayOfWeek,
			DayOfMonth: r.Recurrence.DayOfMonth,
		}
	}
	return out
}

// ReminderList is the wire form of a reminder listing.
type ReminderList struct {
	Reminders  []Reminder `json:"reminders"`
	TotalCount int        `json:"total_count"`
}

func FromReminders(reminders []*domain.Reminder) ReminderList {
	out := ReminderList{
		Reminders:  make([]Reminder, 0, len(reminders)),
		TotalCount: len(reminders),
	}
	for _, r := range reminders {
		out.Reminders = append(out.Reminders, FromReminder(r))
	}
	return out
}

// CompletedReminder reports a completion and, for a recurring reminder,
// the occurrence created alongside it.
type CompletedReminder struct {
	Completed      Reminder  `json:"completed"`
	NextOccurrence *Reminder `json:"next_occurrence,omitempty"`
}

func FromCompleteResult(r *service.CompleteReminderResult) CompletedReminder {
	out := CompletedReminder{Completed: FromReminder(r.Completed)}
	if r.Next != nil {
		next := FromReminder(r.Next)
		out.NextOccurrence = &next
	}
	return out
}

// BulkCompletion reports per-id outcomes of a bulk reminder completion.
type BulkCompletion struct {
	CompletedIDs   []int64 `json:"completed_ids"`
	CompletedCount int     `json:"completed_count"`
	FailedIDs      []int64 `json:"failed_ids"`
	FailedCount    int     `json:"failed_count"`
}

func FromBulkResult(r *service.BulkCompleteResult) BulkCompletion {
	out := BulkCompletion{
		CompletedIDs:   r.CompletedIDs,
		CompletedCount: len(r.CompletedIDs),
		FailedIDs:      r.FailedIDs,
		FailedCount:    len(r.FailedIDs),
	}
	if out.CompletedIDs == nil {
		out.CompletedIDs = []int64{}
	}
	if out.FailedIDs == nil {
		out.FailedIDs = []int64{}
	}
	return out
}

// ActionItem is the wire form of a tracked task.
type ActionItem struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  *string  `json:"description,omitempty"`
	Status       string   `json:"status"`
	DueDate      *string  `json:"due_date,omitempty"`
	CompletedAt  *string  `json:"completed_at,omitempty"`
	EntityType   *string  `json:"entity_type,omitempty"`
	EntityID     *int64   `json:"entity_id,omitempty"`
	PrivacyLevel string   `json:"privacy_level"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func FromActionItem(a *domain.ActionItem) ActionItem {
	return ActionItem{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Status:       string(a.Status),
		DueDate:      renderTimePtr(a.DueDate),
		CompletedAt:  renderTimePtr(a.CompletedAt),
		EntityType:   renderEntityType(a.EntityType),
		EntityID:     a.EntityID,
		PrivacyLevel: string(a.PrivacyLevel),
		Tags:         renderTags(a.Tags),
		CreatedAt:    renderTime(a.CreatedAt),
		UpdatedAt:    renderTime(a.UpdatedAt),
	}
}

// ActionItemList is the wire form of an action item listing.
type ActionItemList struct {
	ActionItems []ActionItem `json:"action_items"`
	TotalCount  int          `json:"total_count"`
}

func FromActionItems(items []*domain.ActionItem) ActionItemList {
	out := ActionItemList{
		ActionItems: make([]ActionItem, 0, len(items)),
		TotalCount:  len(items),
	}
	for _, a := range items {
		out.ActionItems = append(out.ActionItems, FromActionItem(a))
	}
	return out
}

// Bookmark is the wire form of a saved link.
type Bookmark struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Description  *string  `json:"description,omitempty"`
	EntityType   *string  `json:"entity_type,omitempty"`
	EntityID     *int64   `json:"entity_id,omitempty"`
	PrivacyLevel string   `json:"privacy_level"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func FromBookmark(b *domain.Bookmark) Bookmark {
	return Bookmark{
		ID:           b.ID,
		Title:        b.Title,
		URL:          b.URL,
		Description:  b.Description,
		EntityType:   renderEntityType(b.EntityType),
		EntityID:     b.EntityID,
		PrivacyLevel: string(b.PrivacyLevel),
		Tags:         renderTags(b.Tags),
		CreatedAt:    renderTime(b.CreatedAt),
		UpdatedAt:    renderTime(b.UpdatedAt),
	}
}

// BookmarkList is the wire form of a bookmark listing.
type BookmarkList struct {
	Bookmarks  []Bookmark `json:"bookmarks"`
	TotalCount int        `json:"total_count"`
}

func FromBookmarks(bookmarks []*domain.Bookmark) BookmarkList {
	out := BookmarkList{
		Bookmarks:  make([]Bookmark, 0, len(bookmarks)),
		TotalCount: len(bookmarks),
	}
	for _, b := range bookmarks {
		out.Bookmarks = append(out.Bookmarks, FromBookmark(b))
	}
	return out
}
