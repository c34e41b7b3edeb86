package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/timeutil"
)

type meetingService struct {
	meetings repository.MeetingRepo
	profile  UserService
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMeetingService(
	meetings repository.MeetingRepo,
	profile UserService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) MeetingService {
	return &meetingService{
		meetings: meetings,
		profile:  profile,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Log creates a meeting, its attendee rows, and, when a project is
// given, the billable work session derived from it. All writes share
// one transaction: a missing project or a bad attendee id rolls the
// whole meeting back.
func (s *meetingService) Log(ctx context.Context, p LogMeetingParams) (record *MeetingRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": p.Title}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-meeting",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var user *domain.User
	user, err = s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}

	meeting := &domain.Meeting{
		Title:           p.Title,
		StartTime:       p.StartTime.UTC(),
		DurationMinutes: p.DurationMinutes,
		Summary:         p.Summary,
		PrivacyLevel:    resolvePrivacy(p.PrivacyLevel, user.DefaultPrivacy),
		ProjectID:       p.ProjectID,
		MeetingType:     p.MeetingType,
		Location:        p.Location,
		Tags:            domain.NormalizeTags(p.Tags),
	}
	if err = meeting.Validate(); err != nil {
		return nil, err
	}
	attendees := dedupeIDs(p.AttendeeIDs)

	var autoSessionID *int64
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMeetings := repository.NewSQLiteMeetingRepo(tx)

		if p.ProjectID != nil {
			txProjects := repository.NewSQLiteProjectRepo(tx)
			if _, err := txProjects.GetByID(ctx, *p.ProjectID); err != nil {
				return err
			}
		}
		if err := txMeetings.Create(ctx, meeting); err != nil {
			return err
		}
		for _, personID := range attendees {
			if err := txMeetings.AddAttendee(ctx, meeting.ID, personID); err != nil {
				return err
			}
		}

		if p.ProjectID == nil {
			return nil
		}
		txSessions := repository.NewSQLiteWorkSessionRepo(tx)
		session := &domain.WorkSession{
			ProjectID:     *p.ProjectID,
			Date:          timeutil.LocalDate(meeting.StartTime, user.Location()),
			StartTime:     meeting.StartTime,
			EndTime:       meeting.StartTime.Add(time.Duration(meeting.DurationMinutes) * time.Minute),
			DurationHours: timeutil.RoundHalfHour(meeting.DurationMinutes),
			Summary:       &meeting.Title,
			PrivacyLevel:  meeting.PrivacyLevel,
			Tags:          domain.NormalizeTags(meeting.Tags),
		}
		if err := session.Validate(); err != nil {
			return err
		}
		if err := txSessions.Create(ctx, session); err != nil {
			return err
		}
		autoSessionID = &session.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["meeting_id"] = meeting.ID
	if autoSessionID != nil {
		fields["auto_work_session_id"] = *autoSessionID
	}
	return &MeetingRecord{
		Meeting:           meeting,
		AttendeeIDs:       attendees,
		AutoWorkSessionID: autoSessionID,
	}, nil
}

func (s *meetingService) GetByID(ctx context.Context, id int64) (*MeetingRecord, error) {
	meeting, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.meetings.ListAttendees(ctx, id)
	if err != nil {
		return nil, err
	}
	return &MeetingRecord{Meeting: meeting, AttendeeIDs: attendeePersonIDs(rows)}, nil
}

// Update applies a partial edit to the meeting row and, when an
// attendee set is provided, replaces the attendee rows wholesale. A
// work session generated at log time is left untouched: retroactive
// edits to billed time go through the work session tools explicitly.
func (s *meetingService) Update(ctx context.Context, id int64, p UpdateMeetingParams) (*MeetingRecord, error) {
	var record *MeetingRecord
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMeetings := repository.NewSQLiteMeetingRepo(tx)
		meeting, err := txMeetings.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if p.ProjectID != nil {
			txProjects := repository.NewSQLiteProjectRepo(tx)
			if _, err := txProjects.GetByID(ctx, *p.ProjectID); err != nil {
				return err
			}
			meeting.ProjectID = p.ProjectID
		}
		apply(&meeting.Title, p.Title)
		if p.StartTime != nil {
			meeting.StartTime = p.StartTime.UTC()
		}
		apply(&meeting.DurationMinutes, p.DurationMinutes)
		applyPtr(&meeting.Summary, p.Summary)
		apply(&meeting.PrivacyLevel, p.PrivacyLevel)
		applyPtr(&meeting.MeetingType, p.MeetingType)
		applyPtr(&meeting.Location, p.Location)
		applyTags(&meeting.Tags, p.Tags)

		if err := meeting.Validate(); err != nil {
			return err
		}
		if err := txMeetings.Update(ctx, meeting); err != nil {
			return err
		}

		if p.AttendeeIDs != nil {
			if err := txMeetings.DeleteAttendees(ctx, id); err != nil {
				return err
			}
			for _, personID := range dedupeIDs(p.AttendeeIDs) {
				if err := txMeetings.AddAttendee(ctx, id, personID); err != nil {
					return err
				}
			}
		}

		rows, err := txMeetings.ListAttendees(ctx, id)
		if err != nil {
			return err
		}
		record = &MeetingRecord{Meeting: meeting, AttendeeIDs: attendeePersonIDs(rows)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *meetingService) Delete(ctx context.Context, id int64) error {
	return s.meetings.Delete(ctx, id)
}

func attendeePersonIDs(rows []domain.MeetingAttendee) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PersonID)
	}
	return ids
}
