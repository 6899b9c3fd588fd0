package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/gateway"
)

// ExpenseService orchestrates expense operations across storage and the sync
// queue.
type ExpenseService struct {
	store     gateway.ExpenseStore
	publisher SyncPublisher
}

func NewExpenseService(store gateway.ExpenseStore, publisher SyncPublisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

// Create saves an expense locally and publishes a sync message. Storage comes
// first; a failed publish never fails the request.
func (s *ExpenseService) Create(ctx context.Context, userID string, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := s.store.CreateExpense(ctx, userID, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, created.ID, userID, amqp.OpUpsert)
	return created, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id string) (core.Expense, error) {
	return s.store.GetExpense(ctx, userID, id)
}

func (s *ExpenseService) List(ctx context.Context, userID string, window core.DateRange) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx, userID, window)
}

func (s *ExpenseService) Update(ctx context.Context, userID string, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.UpdateExpense(ctx, userID, e); err != nil {
		return core.Expense{}, err
	}

	s.publish(ctx, e.ID, userID, amqp.OpUpsert)
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteExpense(ctx, userID, id); err != nil {
		return err
	}
	s.publish(ctx, id, userID, amqp.OpDelete)
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, id, userID, op string) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewEntitySyncMessage(amqp.EntityExpense, id, userID, op, 0)
	if err := s.publisher.PublishEntitySync(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense sync message",
			"id", id, "op", op, "error", err)
	}
}
