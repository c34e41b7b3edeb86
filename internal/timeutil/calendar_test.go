package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/mosaic/internal/domain"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestLocalDate_CrossesMidnightInUserZone(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	// 02:30 UTC on Jan 16 is still the evening of Jan 15 in New York.
	at := time.Date(2026, 1, 16, 2, 30, 0, 0, time.UTC)
	got := LocalDate(at, ny)
	assert.Equal(t, "2026-01-15", got.Format(DateLayout))

	assert.Equal(t, "2026-01-16", LocalDate(at, time.UTC).Format(DateLayout))
}

func TestStartOfWeek_MondayBoundary(t *testing.T) {
	// Thursday Jan 15 2026.
	at := time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC)

	start := StartOfWeek(at, time.UTC, domain.WeekMonFri)
	assert.Equal(t, "2026-01-12", start.Format(DateLayout))
	assert.Equal(t, time.Monday, start.Weekday())

	start = StartOfWeek(at, time.UTC, domain.WeekMonSun)
	assert.Equal(t, "2026-01-12", start.Format(DateLayout))
}

func TestStartOfWeek_SundayBoundary(t *testing.T) {
	at := time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC)
	start := StartOfWeek(at, time.UTC, domain.WeekSunSat)
	assert.Equal(t, "2026-01-11", start.Format(DateLayout))
	assert.Equal(t, time.Sunday, start.Weekday())
}

func TestStartOfWeek_OnBoundaryDayReturnsSameDay(t *testing.T) {
	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	start := StartOfWeek(monday, time.UTC, domain.WeekMonFri)
	assert.Equal(t, "2026-01-12", start.Format(DateLayout))
}

func TestStartOfMonthAndYear(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")
	at := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	m := StartOfMonth(at, ny)
	assert.Equal(t, "2026-03-01", m.Format(DateLayout))
	assert.Equal(t, 0, m.Hour(), "local midnight")

	y := StartOfYear(at, ny)
	assert.Equal(t, "2026-01-01", y.Format(DateLayout))
}

func TestNextOccurrence_Daily(t *testing.T) {
	r := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(r, &domain.RecurrenceConfig{Frequency: domain.RecurDaily}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, r.Add(24*time.Hour), next)
}

func TestNextOccurrence_DailyPreservesClockAcrossDST(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	// 09:00 local on the day before the spring-forward transition.
	r := time.Date(2026, 3, 7, 9, 0, 0, 0, ny)
	next, err := NextOccurrence(r.UTC(), &domain.RecurrenceConfig{Frequency: domain.RecurDaily}, ny)
	require.NoError(t, err)

	local := next.In(ny)
	assert.Equal(t, 9, local.Hour(), "local clock time is preserved")
	assert.Equal(t, 8, local.Day())
}

func TestNextOccurrence_Weekly(t *testing.T) {
	day := 0 // Monday
	r := time.Date(2026, 1, 19, 9, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(r, &domain.RecurrenceConfig{Frequency: domain.RecurWeekly, DayOfWeek: &day}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 26, 9, 0, 0, 0, time.UTC), next)
	assert.Equal(t, r.Weekday(), next.Weekday())
}

func TestNextOccurrence_MonthlyClampsShortMonths(t *testing.T) {
	day := 31
	cfg := &domain.RecurrenceConfig{Frequency: domain.RecurMonthly, DayOfMonth: &day}

	r := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(r, cfg, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), next, "2026 is not a leap year")

	r = time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC)
	next, err = NextOccurrence(r, cfg, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 30, 10, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_MonthlyLeapFebruary(t *testing.T) {
	day := 31
	cfg := &domain.RecurrenceConfig{Frequency: domain.RecurMonthly, DayOfMonth: &day}

	r := time.Date(2028, 1, 31, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(r, cfg, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2028, 2, 29, 10, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_MonthlyDecemberWraps(t *testing.T) {
	day := 15
	cfg := &domain.RecurrenceConfig{Frequency: domain.RecurMonthly, DayOfMonth: &day}

	r := time.Date(2026, 12, 15, 8, 30, 0, 0, time.UTC)
	next, err := NextOccurrence(r, cfg, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 1, 15, 8, 30, 0, 0, time.UTC), next)
}

func TestNextOccurrence_NilOrInvalidConfig(t *testing.T) {
	r := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	_, err := NextOccurrence(r, nil, time.UTC)
	require.Error(t, err)

	_, err = NextOccurrence(r, &domain.RecurrenceConfig{Frequency: "hourly"}, time.UTC)
	require.Error(t, err)
}
