// Package scheduler runs the periodic due-reminder scan and drives the
// notification dispatcher. Dispatch state lives on the reminder rows
// (last_notified_at), so a restart picks up exactly where the previous
// process left off.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/notify"
)

// ReminderSource is the slice of the reminder store the scheduler reads
// and stamps.
type ReminderSource interface {
	ListDue(ctx context.Context, now time.Time) ([]*domain.Reminder, error)
	MarkNotified(ctx context.Context, id int64, at time.Time) error
}

// Scheduler scans for due reminders on a fixed interval and sends each
// through the notifier. Failed deliveries are logged and left armed;
// they retry on later scans until the user completes, snoozes, or moves
// the reminder.
type Scheduler struct {
	reminders ReminderSource
	notifier  notify.Dispatcher
	interval  time.Duration
	logger    zerolog.Logger

	cron   *cron.Cron
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a stopped scheduler. A non-positive interval falls back
// to one minute.
func New(reminders ReminderSource, notifier notify.Dispatcher, interval time.Duration, logger zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	log := logger.With().Str("component", "scheduler").Logger()
	return &Scheduler{
		reminders: reminders,
		notifier:  notifier,
		interval:  interval,
		logger:    log,
		// The cron runtime must never write to stdout: stdout carries
		// the MCP wire.
		cron: cron.New(
			cron.WithLogger(cronLogger{log: log}),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{log: log})),
		),
	}
}

// Start runs one check immediately, so reminders that came due while
// the process was down dispatch without waiting out the first interval,
// then begins ticking.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.CheckDue(ctx) }); err != nil {
		return fmt.Errorf("registering check-due job: %w", err)
	}

	s.logger.Info().Dur("interval", s.interval).Msg("reminder scheduler started")
	s.CheckDue(ctx)
	s.cron.Start()
	return nil
}

// Stop halts ticking, waits for an in-flight check to finish its scan,
// cancels outstanding dispatches, and waits for them to settle. Safe to
// call more than once.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info().Msg("reminder scheduler stopped")
}

// CheckDue runs one scan. Every due reminder dispatches in its own
// goroutine so one slow bridge call never holds up the rest; the check
// itself returns as soon as the scan completes.
func (s *Scheduler) CheckDue(ctx context.Context) {
	log := s.logger.With().Str("run_id", uuid.NewString()[:8]).Logger()

	now := time.Now().UTC()
	due, err := s.reminders.ListDue(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("due reminder scan failed")
		return
	}
	if len(due) == 0 {
		return
	}
	log.Info().Int("due", len(due)).Msg("dispatching due reminders")

	for _, rem := range due {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.dispatch(ctx, log, rem)
		}()
	}
}

// dispatch sends one reminder and records the dispatch instant on
// success. A reminder that fails to deliver, or whose delivery is
// disabled, keeps a nil last_notified_at and stays due.
func (s *Scheduler) dispatch(ctx context.Context, log zerolog.Logger, rem *domain.Reminder) {
	n := notify.Notification{
		Title:   "Reminder",
		Message: rem.Message,
		Metadata: map[string]any{
			"reminder_id":   rem.ID,
			"reminder_time": rem.ReminderTime.UTC().Format(time.RFC3339),
		},
	}
	if rem.RelatedEntityType != nil && rem.RelatedEntityID != nil {
		n.Metadata["related_entity_type"] = string(*rem.RelatedEntityType)
		n.Metadata["related_entity_id"] = *rem.RelatedEntityID
	}

	res, err := s.notifier.Send(ctx, n)
	if err != nil {
		log.Error().Err(err).
			Int64("reminder_id", rem.ID).
			Int("attempts", res.Attempts).
			Msg("reminder dispatch failed")
		return
	}
	if !res.Delivered {
		return
	}

	if err := s.reminders.MarkNotified(ctx, rem.ID, time.Now().UTC()); err != nil {
		log.Error().Err(err).Int64("reminder_id", rem.ID).Msg("recording dispatch failed")
		return
	}
	log.Info().Int64("reminder_id", rem.ID).Msg("reminder dispatched")
}

// cronLogger adapts zerolog to the cron runtime's logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, kv ...any) {
	l.log.Debug().Fields(kvFields(kv)).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, kv ...any) {
	l.log.Error().Err(err).Fields(kvFields(kv)).Msg(msg)
}

func kvFields(kv []any) map[string]any {
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			fields[k] = kv[i+1]
		}
	}
	return fields
}
