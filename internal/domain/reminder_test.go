package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func TestDueAt_ReachedAndUntouched(t *testing.T) {
	r := &Reminder{ReminderTime: testNow.Add(-time.Minute)}
	assert.True(t, r.DueAt(testNow))
}

func TestDueAt_NotYetReached(t *testing.T) {
	r := &Reminder{ReminderTime: testNow.Add(time.Minute)}
	assert.False(t, r.DueAt(testNow))
}

func TestDueAt_Completed(t *testing.T) {
	r := &Reminder{ReminderTime: testNow.Add(-time.Hour), IsCompleted: true}
	assert.False(t, r.DueAt(testNow))
}

func TestDueAt_SnoozedIntoFuture(t *testing.T) {
	until := testNow.Add(time.Hour)
	r := &Reminder{ReminderTime: testNow.Add(-time.Hour), SnoozedUntil: &until}
	assert.False(t, r.DueAt(testNow))
}

func TestDueAt_SnoozeElapsed(t *testing.T) {
	until := testNow.Add(-time.Minute)
	r := &Reminder{ReminderTime: testNow.Add(-time.Hour), SnoozedUntil: &until}
	assert.True(t, r.DueAt(testNow))
}

func TestDueAt_AlreadyNotifiedForCurrentTime(t *testing.T) {
	notified := testNow.Add(-30 * time.Minute)
	r := &Reminder{ReminderTime: testNow.Add(-time.Hour), LastNotifiedAt: &notified}
	assert.False(t, r.DueAt(testNow), "one dispatch per reminder_time")
}

func TestDueAt_ReminderTimeMovedForwardRearms(t *testing.T) {
	notified := testNow.Add(-2 * time.Hour)
	r := &Reminder{ReminderTime: testNow.Add(-time.Hour), LastNotifiedAt: &notified}
	assert.True(t, r.DueAt(testNow), "notification older than reminder_time re-arms")
}

func TestRecurrenceValidate_DailyNeedsNoFields(t *testing.T) {
	c := &RecurrenceConfig{Frequency: RecurDaily}
	assert.NoError(t, c.Validate())
}

func TestRecurrenceValidate_UnknownFrequency(t *testing.T) {
	c := &RecurrenceConfig{Frequency: "hourly"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frequency")
}

func TestRecurrenceValidate_WeeklyRequiresDayOfWeek(t *testing.T) {
	c := &RecurrenceConfig{Frequency: RecurWeekly}
	require.Error(t, c.Validate())

	day := 6
	c.DayOfWeek = &day
	assert.NoError(t, c.Validate())

	day = 7
	require.Error(t, c.Validate())
}

func TestRecurrenceValidate_MonthlyRequiresDayOfMonth(t *testing.T) {
	c := &RecurrenceConfig{Frequency: RecurMonthly}
	require.Error(t, c.Validate())

	day := 31
	c.DayOfMonth = &day
	assert.NoError(t, c.Validate())

	day = 0
	require.Error(t, c.Validate())
}

func TestReminderValidate_EntityRefPair(t *testing.T) {
	et := EntityProject
	r := &Reminder{Message: "ping", ReminderTime: testNow, RelatedEntityType: &et}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "together")

	id := int64(3)
	r.RelatedEntityID = &id
	assert.NoError(t, r.Validate())
}
