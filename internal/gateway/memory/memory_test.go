package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/gateway"
)

func TestUserAndSession(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := s.CreateUser(ctx, "alice", "hash2"); !errors.Is(err, gateway.ErrUserExists) {
		t.Fatalf("duplicate user: got %v, want ErrUserExists", err)
	}

	sess := gateway.Session{Token: "tok", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	got, err := s.GetSession(ctx, "tok")
	if err != nil || got.UserID != u.ID {
		t.Fatalf("GetSession = %+v, %v", got, err)
	}
	if err := s.DeleteSession(ctx, "tok"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(ctx, "tok"); !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("deleted session: got %v, want ErrNotFound", err)
	}
}

func TestWorkEntriesOrderAndWindow(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, d := range []core.Date{
		core.NewDate(2024, 5, 10),
		core.NewDate(2024, 5, 20),
		core.NewDate(2024, 6, 1),
	} {
		if _, err := s.CreateWorkEntry(ctx, "u1", core.WorkEntry{JobName: "j", WorkDate: d}); err != nil {
			t.Fatalf("CreateWorkEntry: %v", err)
		}
	}

	entries, err := s.ListWorkEntries(ctx, "u1", core.MonthRange(2024, 5))
	if err != nil {
		t.Fatalf("ListWorkEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].WorkDate != core.NewDate(2024, 5, 20) {
		t.Fatalf("most recent first: got %s", entries[0].WorkDate.ISO())
	}
}

func TestSetPaidBatchAtomic(t *testing.T) {
	s := New()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 2; i++ {
		e, err := s.CreateWorkEntry(ctx, "u1", core.WorkEntry{JobName: "j", WorkDate: core.NewDate(2024, 5, 6)})
		if err != nil {
			t.Fatalf("CreateWorkEntry: %v", err)
		}
		ids = append(ids, e.ID)
	}

	err := s.SetPaidBatch(ctx, "u1", append(ids, "missing"), true, core.NewDate(2024, 5, 7))
	if !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("bad batch: got %v, want ErrNotFound", err)
	}
	for _, id := range ids {
		e, err := s.GetWorkEntry(ctx, "u1", id)
		if err != nil {
			t.Fatalf("GetWorkEntry: %v", err)
		}
		if e.Paid {
			t.Fatalf("failed batch must not change any entry")
		}
	}

	if err := s.SetPaidBatch(ctx, "u1", ids, true, core.NewDate(2024, 5, 7)); err != nil {
		t.Fatalf("SetPaidBatch: %v", err)
	}
	for _, id := range ids {
		e, _ := s.GetWorkEntry(ctx, "u1", id)
		if !e.Paid || e.PaidDate != core.NewDate(2024, 5, 7) {
			t.Fatalf("entry %s not marked paid", id)
		}
	}
}

func TestUserIsolation(t *testing.T) {
	s := New()
	ctx := context.Background()

	e, err := s.CreateExpense(ctx, "u1", core.Expense{Name: "x", OccurredAt: time.Now()})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if _, err := s.GetExpense(ctx, "u2", e.ID); !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("cross-user read: got %v, want ErrNotFound", err)
	}
	list, err := s.ListExpenses(ctx, "u2", core.DateRange{})
	if err != nil || len(list) != 0 {
		t.Fatalf("cross-user list = %v, %v", list, err)
	}
}

func TestPendingSync(t *testing.T) {
	s := New()
	ctx := context.Background()

	e, err := s.CreateExpense(ctx, "u1", core.Expense{Name: "x", OccurredAt: time.Now()})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	pending, err := s.ListPendingSync(ctx, 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending = %v, %v", pending, err)
	}
	if pending[0].Entity != "expense" || pending[0].ID != e.ID {
		t.Fatalf("unexpected pending row: %+v", pending[0])
	}
	if err := s.MarkSynced(ctx, "expense", e.ID); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	pending, _ = s.ListPendingSync(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("pending after MarkSynced = %v", pending)
	}
}
