package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/notify"
	"github.com/alexanderramin/mosaic/internal/testutil"
)

type fakeSource struct {
	mu     sync.Mutex
	due    []*domain.Reminder
	err    error
	marked []int64
}

func (f *fakeSource) ListDue(ctx context.Context, now time.Time) ([]*domain.Reminder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.due, nil
}

func (f *fakeSource) MarkNotified(ctx context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeSource) markedIDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64{}, f.marked...)
}

type fakeDispatcher struct {
	mu         sync.Mutex
	sent       []notify.Notification
	failMsg    string
	disabled   bool
	blockOnCtx bool
}

func (f *fakeDispatcher) Send(ctx context.Context, n notify.Notification) (notify.Result, error) {
	if f.blockOnCtx {
		<-ctx.Done()
		return notify.Result{Attempts: 1}, apperr.ErrDeliveryFailed
	}
	f.mu.Lock()
	f.sent = append(f.sent, n)
	f.mu.Unlock()
	if f.disabled {
		return notify.Result{}, nil
	}
	if n.Message == f.failMsg {
		return notify.Result{Attempts: 3}, apperr.ErrDeliveryFailed
	}
	return notify.Result{Delivered: true, Attempts: 1}, nil
}

func (f *fakeDispatcher) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	for i, n := range f.sent {
		out[i] = n.Message
	}
	return out
}

func dueReminder(id int64, msg string) *domain.Reminder {
	return &domain.Reminder{
		ID:           id,
		Message:      msg,
		ReminderTime: time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestScheduler_CheckDueDispatchesAndMarks(t *testing.T) {
	linked := dueReminder(2, "Call Ada")
	linked.RelatedEntityType = testutil.Ptr(domain.EntityPerson)
	linked.RelatedEntityID = testutil.Ptr(int64(9))

	src := &fakeSource{due: []*domain.Reminder{dueReminder(1, "Invoice Acme"), linked}}
	disp := &fakeDispatcher{}
	s := New(src, disp, time.Hour, zerolog.Nop())

	s.CheckDue(context.Background())
	s.wg.Wait()

	assert.ElementsMatch(t, []int64{1, 2}, src.markedIDs())
	require.Len(t, disp.sent, 2)
	for _, n := range disp.sent {
		assert.Equal(t, "Reminder", n.Title)
		assert.Equal(t, "2026-03-20T09:00:00Z", n.Metadata["reminder_time"])
	}

	var got notify.Notification
	for _, n := range disp.sent {
		if n.Message == "Call Ada" {
			got = n
		}
	}
	assert.Equal(t, int64(2), got.Metadata["reminder_id"])
	assert.Equal(t, "person", got.Metadata["related_entity_type"])
	assert.Equal(t, int64(9), got.Metadata["related_entity_id"])
}

func TestScheduler_FailedDispatchDoesNotBlockOthers(t *testing.T) {
	src := &fakeSource{due: []*domain.Reminder{
		dueReminder(1, "fails"),
		dueReminder(2, "delivers"),
	}}
	disp := &fakeDispatcher{failMsg: "fails"}
	s := New(src, disp, time.Hour, zerolog.Nop())

	s.CheckDue(context.Background())
	s.wg.Wait()

	assert.ElementsMatch(t, []string{"fails", "delivers"}, disp.messages())
	assert.Equal(t, []int64{2}, src.markedIDs(), "only the delivered reminder is stamped")
}

func TestScheduler_DisabledDeliveryLeavesRemindersArmed(t *testing.T) {
	src := &fakeSource{due: []*domain.Reminder{dueReminder(1, "Invoice Acme")}}
	disp := &fakeDispatcher{disabled: true}
	s := New(src, disp, time.Hour, zerolog.Nop())

	s.CheckDue(context.Background())
	s.wg.Wait()

	assert.Empty(t, src.markedIDs(), "undelivered reminders stay due for later scans")
}

func TestScheduler_ScanErrorDispatchesNothing(t *testing.T) {
	src := &fakeSource{err: errors.New("db locked")}
	disp := &fakeDispatcher{}
	s := New(src, disp, time.Hour, zerolog.Nop())

	s.CheckDue(context.Background())
	s.wg.Wait()

	assert.Empty(t, disp.messages())
}

func TestScheduler_StartRunsImmediateCheck(t *testing.T) {
	src := &fakeSource{due: []*domain.Reminder{dueReminder(1, "Invoice Acme")}}
	disp := &fakeDispatcher{}
	s := New(src, disp, time.Hour, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	s.wg.Wait()
	s.Stop()

	assert.Equal(t, []string{"Invoice Acme"}, disp.messages(), "dispatch happens before the first tick")
	assert.Equal(t, []int64{1}, src.markedIDs())
}

func TestScheduler_StopCancelsInFlightDispatch(t *testing.T) {
	src := &fakeSource{due: []*domain.Reminder{dueReminder(1, "never delivers")}}
	disp := &fakeDispatcher{blockOnCtx: true}
	s := New(src, disp, time.Hour, zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not cancel the in-flight dispatch")
	}
	assert.Empty(t, src.markedIDs())
}
