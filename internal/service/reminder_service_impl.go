package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/timeutil"
)

// validReminderStatuses are the status filters list_reminders accepts.
var validReminderStatuses = map[string]bool{
	"": true, "all": true, "active": true, "completed": true, "snoozed": true,
}

type reminderService struct {
	reminders repository.ReminderRepo
	profile   UserService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewReminderService(
	reminders repository.ReminderRepo,
	profile UserService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ReminderService {
	return &reminderService{
		reminders: reminders,
		profile:   profile,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *reminderService) Add(ctx context.Context, r *domain.Reminder) error {
	r.ReminderTime = r.ReminderTime.UTC()
	r.Tags = domain.NormalizeTags(r.Tags)
	if err := r.Validate(); err != nil {
		return err
	}
	return s.reminders.Create(ctx, r)
}

// Complete marks the reminder done and, for recurring reminders,
// inserts the next occurrence in the same transaction. Completing an
// already-completed reminder changes nothing and creates nothing.
func (s *reminderService) Complete(ctx context.Context, id int64) (result *CompleteReminderResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"reminder_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "complete-reminder",
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

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReminders := repository.NewSQLiteReminderRepo(tx)
		rem, err := txReminders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rem.IsCompleted {
			result = &CompleteReminderResult{Completed: rem}
			return nil
		}

		rem.IsCompleted = true
		rem.SnoozedUntil = nil
		if err := txReminders.Update(ctx, rem); err != nil {
			return err
		}
		result = &CompleteReminderResult{Completed: rem}

		if rem.Recurrence == nil {
			return nil
		}
		nextTime, err := timeutil.NextOccurrence(rem.ReminderTime, rem.Recurrence, user.Location())
		if err != nil {
			return err
		}
		next := &domain.Reminder{
			ReminderTime:      nextTime,
			Message:           rem.Message,
			Recurrence:        rem.Recurrence,
			RelatedEntityType: rem.RelatedEntityType,
			RelatedEntityID:   rem.RelatedEntityID,
			Tags:              domain.NormalizeTags(rem.Tags),
		}
		if err := txReminders.Create(ctx, next); err != nil {
			return err
		}
		result.Next = next
		fields["next_reminder_id"] = next.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Snooze hides the reminder from the due scan until the given instant
// and re-arms dispatch, so it fires again once the snooze expires.
func (s *reminderService) Snooze(ctx context.Context, id int64, until time.Time) (*domain.Reminder, error) {
	if !until.After(time.Now().UTC()) {
		return nil, fmt.Errorf("snoozed_until must be in the future: %w", apperr.ErrInvalidArgument)
	}
	rem, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u := until.UTC()
	rem.SnoozedUntil = &u
	rem.LastNotifiedAt = nil
	if err := s.reminders.Update(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

// BulkComplete completes each id in its own transaction. Ids that do
// not resolve to a reminder are reported, not fatal; completions that
// happened before a later failure stay committed.
func (s *reminderService) BulkComplete(ctx context.Context, ids []int64) (*BulkCompleteResult, error) {
	result := &BulkCompleteResult{
		CompletedIDs: make([]int64, 0, len(ids)),
		FailedIDs:    []int64{},
	}
	for _, id := range ids {
		_, err := s.Complete(ctx, id)
		if errors.Is(err, apperr.ErrNotFound) {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		result.CompletedIDs = append(result.CompletedIDs, id)
	}
	return result, nil
}

func (s *reminderService) List(ctx context.Context, f repository.ReminderFilter) ([]*domain.Reminder, error) {
	if !validReminderStatuses[f.Status] {
		return nil, fmt.Errorf("status %q must be one of all, active, completed, snoozed: %w",
			f.Status, apperr.ErrInvalidArgument)
	}
	if f.EntityType != nil && !domain.ValidEntityTypes[string(*f.EntityType)] {
		return nil, fmt.Errorf("unknown entity_type %q: %w", *f.EntityType, apperr.ErrInvalidArgument)
	}
	return s.reminders.List(ctx, f)
}

func (s *reminderService) Delete(ctx context.Context, id int64) error {
	return s.reminders.Delete(ctx, id)
}
