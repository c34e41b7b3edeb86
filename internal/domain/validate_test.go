package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

func TestProjectValidate_CompletedRequiresEndDate(t *testing.T) {
	p := &Project{Name: "Migration", ClientID: 1, Status: ProjectCompleted}
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "end_date")

	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	p.EndDate = &end
	assert.NoError(t, p.Validate())
}

func TestWorkSessionValidate_EndBeforeStart(t *testing.T) {
	s := &WorkSession{
		ProjectID:    1,
		StartTime:    testNow,
		EndTime:      testNow.Add(-time.Minute),
		PrivacyLevel: PrivacyPrivate,
	}
	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestWorkSessionValidate_ZeroLengthRejected(t *testing.T) {
	s := &WorkSession{
		ProjectID:    1,
		StartTime:    testNow,
		EndTime:      testNow,
		PrivacyLevel: PrivacyPrivate,
	}
	require.Error(t, s.Validate())
}

func TestMeetingValidate_DurationMustBePositive(t *testing.T) {
	m := &Meeting{Title: "Standup", StartTime: testNow, DurationMinutes: 0, PrivacyLevel: PrivacyInternal}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration_minutes")
}

func TestValidateEntityRef(t *testing.T) {
	id := int64(5)
	et := EntityMeeting

	assert.NoError(t, ValidateEntityRef(nil, nil))
	assert.NoError(t, ValidateEntityRef(&et, &id))
	assert.Error(t, ValidateEntityRef(&et, nil))
	assert.Error(t, ValidateEntityRef(nil, &id))

	bad := EntityType("galaxy")
	assert.Error(t, ValidateEntityRef(&bad, &id))
}

func TestEmploymentHistoryValidate_EndBeforeStart(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	h := &EmploymentHistory{PersonID: 1, ClientID: 2, StartDate: start, EndDate: &end}
	require.Error(t, h.Validate())

	h.EndDate = nil
	assert.NoError(t, h.Validate())
	assert.True(t, h.IsCurrent())
}

func TestUserValidate_TimezoneAndBoundary(t *testing.T) {
	u := &User{
		FullName:       "Alex",
		Timezone:       "America/New_York",
		WeekBoundary:   WeekMonFri,
		DefaultPrivacy: PrivacyPrivate,
	}
	assert.NoError(t, u.Validate())

	u.Timezone = "Mars/Olympus"
	require.Error(t, u.Validate())

	u.Timezone = "UTC"
	u.WeekBoundary = "tue-wed"
	require.Error(t, u.Validate())
}

func TestUserLocation_FallsBackToUTC(t *testing.T) {
	u := &User{Timezone: "Nowhere/Void"}
	assert.Equal(t, time.UTC, u.Location())
}
