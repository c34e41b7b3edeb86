package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/timeutil"
)

// internalSummaryPlaceholder replaces internal session summaries on
// timecards generated without private access, so internal work shows
// up in the billed totals without leaking its description.
const internalSummaryPlaceholder = "Project work"

type workSessionService struct {
	sessions repository.WorkSessionRepo
	projects repository.ProjectRepo
	profile  UserService
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewWorkSessionService(
	sessions repository.WorkSessionRepo,
	projects repository.ProjectRepo,
	profile UserService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) WorkSessionService {
	return &workSessionService{
		sessions: sessions,
		projects: projects,
		profile:  profile,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workSessionService) Log(ctx context.Context, p LogWorkSessionParams) (*domain.WorkSession, error) {
	user, err := s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}

	hours, err := timeutil.DurationRounded(p.StartTime, p.EndTime)
	if err != nil {
		return nil, err
	}
	session := &domain.WorkSession{
		ProjectID:     p.ProjectID,
		Date:          timeutil.LocalDate(p.StartTime, user.Location()),
		StartTime:     p.StartTime.UTC(),
		EndTime:       p.EndTime.UTC(),
		DurationHours: hours,
		Summary:       p.Summary,
		PrivacyLevel:  resolvePrivacy(p.PrivacyLevel, user.DefaultPrivacy),
		Tags:          domain.NormalizeTags(p.Tags),
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txSessions := repository.NewSQLiteWorkSessionRepo(tx)

		if _, err := txProjects.GetByID(ctx, p.ProjectID); err != nil {
			return err
		}
		return txSessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *workSessionService) GetByID(ctx context.Context, id int64) (*domain.WorkSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// Update applies a partial edit. When either bound of the interval
// moves, the rounded duration and the local calendar date are
// recomputed in the same commit as the field writes.
func (s *workSessionService) Update(ctx context.Context, id int64, p UpdateWorkSessionParams) (*domain.WorkSession, error) {
	user, err := s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}

	var updated *domain.WorkSession
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteWorkSessionRepo(tx)
		session, err := txSessions.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if p.ProjectID != nil {
			txProjects := repository.NewSQLiteProjectRepo(tx)
			if _, err := txProjects.GetByID(ctx, *p.ProjectID); err != nil {
				return err
			}
			session.ProjectID = *p.ProjectID
		}

		if p.StartTime != nil {
			session.StartTime = p.StartTime.UTC()
		}
		if p.EndTime != nil {
			session.EndTime = p.EndTime.UTC()
		}
		if p.StartTime != nil || p.EndTime != nil {
			hours, err := timeutil.DurationRounded(session.StartTime, session.EndTime)
			if err != nil {
				return err
			}
			session.DurationHours = hours
			session.Date = timeutil.LocalDate(session.StartTime, user.Location())
		}

		applyPtr(&session.Summary, p.Summary)
		apply(&session.PrivacyLevel, p.PrivacyLevel)
		applyTags(&session.Tags, p.Tags)

		if err := session.Validate(); err != nil {
			return err
		}
		if err := txSessions.Update(ctx, session); err != nil {
			return err
		}
		updated = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *workSessionService) Delete(ctx context.Context, id int64) error {
	return s.sessions.Delete(ctx, id)
}

// Timecard aggregates the project's sessions per calendar day over the
// inclusive date range. Sums are plain decimal addition over already
// rounded durations; summaries are deduplicated per day in start-time
// order. Without private access, private rows are excluded entirely and
// internal rows contribute their hours under a generic placeholder.
func (s *workSessionService) Timecard(ctx context.Context, projectID int64, from, to time.Time, includePrivate bool) (entries []TimecardEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id":      projectID,
		"include_private": includePrivate,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-timecard",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if to.Before(from) {
		return nil, fmt.Errorf("timecard range end %s precedes start %s: %w",
			to.Format(timeutil.DateLayout), from.Format(timeutil.DateLayout), apperr.ErrInvalidArgument)
	}
	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	access := domain.AccessInternalAndPublic
	if includePrivate {
		access = domain.AccessAll
	}
	sessions, err := s.sessions.ListForTimecard(ctx, projectID, from, to, access)
	if err != nil {
		return nil, err
	}
	fields["sessions"] = len(sessions)

	entries = make([]TimecardEntry, 0, len(sessions))
	var (
		day   time.Time
		hours decimal.Decimal
		parts []string
		seen  map[string]bool
	)
	flush := func() {
		if seen == nil {
			return
		}
		entries = append(entries, TimecardEntry{
			Date:    day,
			Hours:   hours,
			Summary: strings.Join(parts, "\n"),
		})
	}
	for _, sess := range sessions {
		if seen == nil || !sess.Date.Equal(day) {
			flush()
			day = sess.Date
			hours = decimal.New(0, -1)
			parts = nil
			seen = map[string]bool{}
		}
		hours = hours.Add(sess.DurationHours)
		if summary := timecardSummary(sess, includePrivate); summary != "" && !seen[summary] {
			seen[summary] = true
			parts = append(parts, summary)
		}
	}
	flush()
	fields["days"] = len(entries)
	return entries, nil
}

func timecardSummary(s *domain.WorkSession, includePrivate bool) string {
	if !includePrivate && s.PrivacyLevel == domain.PrivacyInternal {
		return internalSummaryPlaceholder
	}
	if s.Summary == nil {
		return ""
	}
	return *s.Summary
}
