package contract

import (
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/service"
)

// WorkSession is the wire form of a billable time entry.
type WorkSession struct {
	ID            int64    `json:"id"`
	ProjectID     int64    `json:"project_id"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	DurationHours string   `json:"duration_hours"`
	Summary       *string  `json:"summary,omitempty"`
	PrivacyLevel  string   `json:"privacy_level"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func FromWorkSession(s *domain.WorkSession) WorkSession {
	return WorkSession{
		ID:            s.ID,
		ProjectID:     s.ProjectID,
		Date:          renderDate(s.Date),
		StartTime:     renderTime(s.StartTime),
		EndTime:       renderTime(s.EndTime),
		DurationHours: renderHours(s.DurationHours),
		Summary:       s.Summary,
		PrivacyLevel:  string(s.PrivacyLevel),
		Tags:          renderTags(s.Tags),
		CreatedAt:     renderTime(s.CreatedAt),
		UpdatedAt:     renderTime(s.UpdatedAt),
	}
}

// Meeting is the wire form of a meeting. AttendeeIDs and
// AutoWorkSessionID appear only where the caller loaded them; entity
// query rows carry the base columns alone.
type Meeting struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	StartTime         string   `json:"start_time"`
	DurationMinutes   int      `json:"duration_minutes"`
	Summary           *string  `json:"summary,omitempty"`
	PrivacyLevel      string   `json:"privacy_level"`
	ProjectID         *int64   `json:"project_id,omitempty"`
	MeetingType       *string  `json:"meeting_type,omitempty"`
	Location          *string  `json:"location,omitempty"`
	Tags              []string `json:"tags"`
	AttendeeIDs       []int64  `json:"attendee_ids,omitempty"`
	AutoWorkSessionID *int64   `json:"auto_work_session_id,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

func FromMeeting(m *domain.Meeting) Meeting {
	return Meeting{
		ID:              m.ID,
		Title:           m.Title,
		StartTime:       renderTime(m.StartTime),
		DurationMinutes: m.DurationMinutes,
		Summary:         m.Summary,
		PrivacyLevel:    string(m.PrivacyLevel),
		ProjectID:       m.ProjectID,
		MeetingType:     m.MeetingType,
		Location:        m.Location,
		Tags:            renderTags(m.Tags),
		CreatedAt:       renderTime(m.CreatedAt),
		UpdatedAt:       renderTime(m.UpdatedAt),
	}
}

func FromMeetingRecord(r *service.MeetingRecord) Meeting {
	m := FromMeeting(r.Meeting)
	m.AttendeeIDs = r.AttendeeIDs
	m.AutoWorkSessionID = r.AutoWorkSessionID
	return m
}

// TimecardEntry is one day of a timecard: the decimal sum of the day's
// rounded session hours and the merged summary text.
type TimecardEntry struct {
	Date        string `json:"date"`
	SummedHours string `json:"summed_hours"`
	Summary     string `json:"summary"`
}

// Timecard is the wire form of a per-project timecard over an inclusive
// date range. TotalHours is the decimal sum of the entry sums.
type Timecard struct {
	ProjectID      int64           `json:"project_id"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	IncludePrivate bool            `json:"include_private"`
	Entries        []TimecardEntry `json:"entries"`
	TotalHours     string          `json:"total_hours"`
}

func FromTimecard(projectID int64, start, end string, includePrivate bool, entries []service.TimecardEntry) Timecard {
	out := Timecard{
		ProjectID:      projectID,
		StartDate:      start,
		EndDate:        end,
		IncludePrivate: includePrivate,
		Entries:        make([]TimecardEntry, 0, len(entries)),
	}
	total := decimal.New(0, -1)
	for _, e := range entries {
		out.Entries = append(out.Entries, TimecardEntry{
			Date:        renderDate(e.Date),
			SummedHours: renderHours(e.Hours),
			Summary:     e.Summary,
		})
		total = total.Add(e.Hours)
	}
	out.TotalHours = renderHours(total)
	return out
}
