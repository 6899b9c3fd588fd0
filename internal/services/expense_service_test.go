package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/gateway"
	"fintrack/internal/gateway/memory"
)

func validExpense() core.Expense {
	return core.Expense{
		Name:       "weekly shop",
		Category:   core.CategoryGrocery,
		Amount:     core.Money{Cents: 5000},
		OccurredAt: time.Date(2024, 5, 3, 18, 30, 0, 0, time.UTC),
		Method:     core.MethodDebit,
	}
}

func TestExpenseCreatePublishesSync(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validExpense())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, amqp.EntityExpense, pub.messages[0].Entity)
	assert.Equal(t, amqp.OpUpsert, pub.messages[0].Op)
	assert.Equal(t, created.ID, pub.messages[0].ID)
}

func TestExpenseCreateValidates(t *testing.T) {
	svc := NewExpenseService(memory.New(), nil)
	ctx := context.Background()

	e := validExpense()
	e.Category = "snacks"
	_, err := svc.Create(ctx, "u1", e)
	assert.ErrorIs(t, err, core.ErrInvalidCategory)

	e = validExpense()
	e.Amount = core.Money{}
	_, err = svc.Create(ctx, "u1", e)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestExpenseUpdateAndDelete(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validExpense())
	require.NoError(t, err)

	created.Amount = core.Money{Cents: 5500}
	_, err = svc.Update(ctx, "u1", created)
	require.NoError(t, err)

	got, err := svc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5500), got.Amount.Cents)

	require.NoError(t, svc.Delete(ctx, "u1", created.ID))
	_, err = svc.Get(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	last := pub.messages[len(pub.messages)-1]
	assert.Equal(t, amqp.OpDelete, last.Op)
}

func TestExpenseListWindow(t *testing.T) {
	svc := NewExpenseService(memory.New(), nil)
	ctx := context.Background()

	for _, ts := range []time.Time{
		time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	} {
		e := validExpense()
		e.OccurredAt = ts
		_, err := svc.Create(ctx, "u1", e)
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, "u1", core.MonthRange(2024, 5))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
