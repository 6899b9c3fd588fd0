package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/gateway"
)

// SyncPublisher pushes row-changed notifications toward the mirror worker.
type SyncPublisher interface {
	PublishEntitySync(ctx context.Context, msg *amqp.EntitySyncMessage) error
}

// TimesheetService orchestrates work-entry operations across storage and the
// sync queue. Storage is the source of truth; publish failures are logged and
// swallowed because the worker's catch-up pass covers them.
type TimesheetService struct {
	store     gateway.TimesheetStore
	publisher SyncPublisher
	now       func() time.Time
}

func NewTimesheetService(store gateway.TimesheetStore, publisher SyncPublisher) *TimesheetService {
	return &TimesheetService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create validates and stores a new entry. When both clock times are given
// and no explicit hours figure is, the hours are derived from the clock.
func (s *TimesheetService) Create(ctx context.Context, userID string, e core.WorkEntry) (core.WorkEntry, error) {
	e, err := s.prepare(e)
	if err != nil {
		return core.WorkEntry{}, err
	}

	created, err := s.store.CreateWorkEntry(ctx, userID, e)
	if err != nil {
		return core.WorkEntry{}, fmt.Errorf("save work entry: %w", err)
	}

	s.publish(ctx, created.ID, userID, amqp.OpUpsert)
	return created, nil
}

func (s *TimesheetService) Get(ctx context.Context, userID, id string) (core.WorkEntry, error) {
	return s.store.GetWorkEntry(ctx, userID, id)
}

func (s *TimesheetService) List(ctx context.Context, userID string, window core.DateRange) ([]core.WorkEntry, error) {
	return s.store.ListWorkEntries(ctx, userID, window)
}

func (s *TimesheetService) Update(ctx context.Context, userID string, e core.WorkEntry) (core.WorkEntry, error) {
	e, err := s.prepare(e)
	if err != nil {
		return core.WorkEntry{}, err
	}

	if err := s.store.UpdateWorkEntry(ctx, userID, e); err != nil {
		return core.WorkEntry{}, err
	}

	s.publish(ctx, e.ID, userID, amqp.OpUpsert)
	return e, nil
}

func (s *TimesheetService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteWorkEntry(ctx, userID, id); err != nil {
		return err
	}
	s.publish(ctx, id, userID, amqp.OpDelete)
	return nil
}

// SetPaid flips one entry's paid flag. Marking paid stamps today's date;
// unmarking clears it.
func (s *TimesheetService) SetPaid(ctx context.Context, userID, id string, paid bool) (core.WorkEntry, error) {
	if _, err := s.store.GetWorkEntry(ctx, userID, id); err != nil {
		return core.WorkEntry{}, err
	}

	paidDate := core.Date{}
	if paid {
		paidDate = core.DateOf(s.now())
	}
	if err := s.store.SetPaidBatch(ctx, userID, []string{id}, paid, paidDate); err != nil {
		return core.WorkEntry{}, err
	}

	s.publish(ctx, id, userID, amqp.OpUpsert)
	return s.store.GetWorkEntry(ctx, userID, id)
}

// MarkDayPaid flips the paid flag on every entry of one work date in a
// single transaction, so a partially paid day can never result from a crash
// mid-update. It returns the number of entries touched.
func (s *TimesheetService) MarkDayPaid(ctx context.Context, userID string, day core.Date, paid bool) (int, error) {
	entries, err := s.store.ListWorkEntries(ctx, userID, core.DateRange{From: day, To: day})
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	paidDate := core.Date{}
	if paid {
		paidDate = core.DateOf(s.now())
	}
	if err := s.store.SetPaidBatch(ctx, userID, ids, paid, paidDate); err != nil {
		return 0, err
	}

	for _, id := range ids {
		s.publish(ctx, id, userID, amqp.OpUpsert)
	}
	return len(ids), nil
}

func (s *TimesheetService) prepare(e core.WorkEntry) (core.WorkEntry, error) {
	if e.TimeFrom != "" && e.TimeTo != "" && e.HoursWorked.Tenths == 0 {
		computed, err := core.ComputeHours(e.TimeFrom, e.TimeTo)
		if err != nil {
			return core.WorkEntry{}, err
		}
		e.HoursWorked = computed
	}
	if err := e.Validate(); err != nil {
		return core.WorkEntry{}, err
	}
	return e, nil
}

func (s *TimesheetService) publish(ctx context.Context, id, userID, op string) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewEntitySyncMessage(amqp.EntityTimesheet, id, userID, op, 0)
	if err := s.publisher.PublishEntitySync(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish timesheet sync message",
			"id", id, "op", op, "error", err)
	}
}
