package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/gateway/memory"
)

type fakeMirror struct {
	mu          sync.Mutex
	expenses    map[string]core.Expense
	workEntries map[string]core.WorkEntry
	deleted     []string
	failNext    error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{
		expenses:    make(map[string]core.Expense),
		workEntries: make(map[string]core.WorkEntry),
	}
}

func (m *fakeMirror) UpsertExpense(_ context.Context, _ string, e core.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.expenses[e.ID] = e
	return nil
}

func (m *fakeMirror) UpsertWorkEntry(_ context.Context, _ string, e core.WorkEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.workEntries[e.ID] = e
	return nil
}

func (m *fakeMirror) Delete(_ context.Context, entity, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expenses, id)
	delete(m.workEntries, id)
	m.deleted = append(m.deleted, entity+":"+id)
	return nil
}

func TestHandleMessageMirrorsCurrentRow(t *testing.T) {
	store := memory.New()
	m := newFakeMirror()
	w := NewSyncWorker(store, m, nil, 10, time.Minute)
	ctx := context.Background()

	e, err := store.CreateExpense(ctx, "u1", core.Expense{
		Name:       "shop",
		Category:   core.CategoryGrocery,
		Amount:     core.Money{Cents: 5000},
		OccurredAt: time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC),
		Method:     core.MethodDebit,
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	// The row changed again before the first message was handled; the mirror
	// must get the latest state, not the message-time state.
	e.Amount = core.Money{Cents: 6000}
	if err := store.UpdateExpense(ctx, "u1", e); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}

	msg := amqp.NewEntitySyncMessage(amqp.EntityExpense, e.ID, "u1", amqp.OpUpsert, 1)
	if err := w.HandleMessage(ctx, msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if got := m.expenses[e.ID].Amount.Cents; got != 6000 {
		t.Fatalf("mirrored amount = %d, want 6000", got)
	}
}

func TestHandleMessageDelete(t *testing.T) {
	store := memory.New()
	m := newFakeMirror()
	w := NewSyncWorker(store, m, nil, 10, time.Minute)
	ctx := context.Background()

	m.expenses["gone"] = core.Expense{ID: "gone"}
	msg := amqp.NewEntitySyncMessage(amqp.EntityExpense, "gone", "u1", amqp.OpDelete, 1)
	if err := w.HandleMessage(ctx, msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if _, ok := m.expenses["gone"]; ok {
		t.Fatal("mirror row should be deleted")
	}
}

func TestHandleMessageVanishedRowDeletesMirror(t *testing.T) {
	store := memory.New()
	m := newFakeMirror()
	w := NewSyncWorker(store, m, nil, 10, time.Minute)
	ctx := context.Background()

	// Upsert message for a row that no longer exists in storage.
	m.expenses["stale"] = core.Expense{ID: "stale"}
	msg := amqp.NewEntitySyncMessage(amqp.EntityExpense, "stale", "u1", amqp.OpUpsert, 1)
	if err := w.HandleMessage(ctx, msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if _, ok := m.expenses["stale"]; ok {
		t.Fatal("stale mirror row should be deleted")
	}
}

func TestProcessPendingDrainsBacklog(t *testing.T) {
	store := memory.New()
	m := newFakeMirror()
	w := NewSyncWorker(store, m, nil, 10, time.Minute)
	ctx := context.Background()

	exp, err := store.CreateExpense(ctx, "u1", core.Expense{
		Name:       "shop",
		Category:   core.CategoryGrocery,
		Amount:     core.Money{Cents: 100},
		OccurredAt: time.Now().UTC(),
		Method:     core.MethodCash,
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	entry, err := store.CreateWorkEntry(ctx, "u1", core.WorkEntry{
		JobName:     "job",
		HoursWorked: core.Hours{Tenths: 10},
		HourlyRate:  core.Money{Cents: 1000},
		WorkDate:    core.NewDate(2024, 5, 1),
	})
	if err != nil {
		t.Fatalf("CreateWorkEntry: %v", err)
	}

	if err := w.ProcessPending(ctx, 10); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}

	if _, ok := m.expenses[exp.ID]; !ok {
		t.Fatal("expense not mirrored")
	}
	if _, ok := m.workEntries[entry.ID]; !ok {
		t.Fatal("work entry not mirrored")
	}

	pending, err := store.ListPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("ListPendingSync: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("backlog not drained: %v", pending)
	}
}

func TestProcessPendingKeepsFailedRows(t *testing.T) {
	store := memory.New()
	m := newFakeMirror()
	w := NewSyncWorker(store, m, nil, 10, time.Minute)
	ctx := context.Background()

	_, err := store.CreateExpense(ctx, "u1", core.Expense{
		Name:       "shop",
		Category:   core.CategoryGrocery,
		Amount:     core.Money{Cents: 100},
		OccurredAt: time.Now().UTC(),
		Method:     core.MethodCash,
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	m.failNext = errors.New("quota exceeded")
	if err := w.ProcessPending(ctx, 10); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}

	// Row stays pending for the next pass, which succeeds.
	if err := w.ProcessPending(ctx, 10); err != nil {
		t.Fatalf("ProcessPending retry: %v", err)
	}
	if len(m.expenses) != 1 {
		t.Fatalf("expense not mirrored after retry")
	}
}
