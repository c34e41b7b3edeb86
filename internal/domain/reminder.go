package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// RecurrenceConfig describes how a reminder repeats after completion.
// Weekly recurrence pins a day of week (0=Monday through 6=Sunday),
// monthly pins a day of month clamped to shorter months.
type RecurrenceConfig struct {
	Frequency  RecurrenceFrequency `json:"frequency"`
	DayOfWeek  *int                `json:"day_of_week,omitempty"`
	DayOfMonth *int                `json:"day_of_month,omitempty"`
}

func (c *RecurrenceConfig) Validate() error {
	if !ValidRecurrenceFrequencies[string(c.Frequency)] {
		return fmt.Errorf("recurrence frequency %q must be one of daily, weekly, monthly: %w", c.Frequency, apperr.ErrInvalidArgument)
	}
	if c.Frequency == RecurWeekly {
		if c.DayOfWeek == nil {
			return fmt.Errorf("weekly recurrence requires day_of_week (0-6): %w", apperr.ErrInvalidArgument)
		}
		if *c.DayOfWeek < 0 || *c.DayOfWeek > 6 {
			return fmt.Errorf("day_of_week %d must be 0-6: %w", *c.DayOfWeek, apperr.ErrInvalidArgument)
		}
	}
	if c.Frequency == RecurMonthly {
		if c.DayOfMonth == nil {
			return fmt.Errorf("monthly recurrence requires day_of_month (1-31): %w", apperr.ErrInvalidArgument)
		}
		if *c.DayOfMonth < 1 || *c.DayOfMonth > 31 {
			return fmt.Errorf("day_of_month %d must be 1-31: %w", *c.DayOfMonth, apperr.ErrInvalidArgument)
		}
	}
	return nil
}

// Reminder is a scheduled notification. LastNotifiedAt records the most
// recent dispatch so a reminder fires once per ReminderTime; completing,
// snoozing, or moving ReminderTime forward re-arms it.
type Reminder struct {
	ID                int64
	ReminderTime      time.Time
	Message           string
	IsCompleted       bool
	Recurrence        *RecurrenceConfig
	RelatedEntityType *EntityType
	RelatedEntityID   *int64
	SnoozedUntil      *time.Time
	LastNotifiedAt    *time.Time
	Tags              []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r *Reminder) Validate() error {
	if r.Message == "" {
		return fmt.Errorf("reminder message is required: %w", apperr.ErrInvalidArgument)
	}
	if r.ReminderTime.IsZero() {
		return fmt.Errorf("reminder_time is required: %w", apperr.ErrInvalidArgument)
	}
	if r.Recurrence != nil {
		if err := r.Recurrence.Validate(); err != nil {
			return err
		}
	}
	return ValidateEntityRef(r.RelatedEntityType, r.RelatedEntityID)
}

// DueAt reports whether the reminder should dispatch at now: reached,
// not completed, not snoozed past now, and not already notified for the
// current ReminderTime.
func (r *Reminder) DueAt(now time.Time) bool {
	if r.IsCompleted || r.ReminderTime.After(now) {
		return false
	}
	if r.SnoozedUntil != nil && r.SnoozedUntil.After(now) {
		return false
	}
	if r.LastNotifiedAt != nil && !r.LastNotifiedAt.Before(r.ReminderTime) {
		return false
	}
	return true
}
