// Package worker drains the sync queue and writes the spreadsheet mirror.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/gateway"
	"fintrack/internal/mirror"
)

// Consumer is the queue side of the worker, satisfied by *amqp.Client.
type Consumer interface {
	ConsumeEntitySync(ctx context.Context, handler func(*amqp.EntitySyncMessage) error) error
}

// SyncWorker applies row-changed messages to the mirror. Messages carry only
// identity; the current row is always re-read from storage so the mirror
// converges on the latest state no matter how messages interleave.
type SyncWorker struct {
	store     gateway.Store
	mirror    mirror.Writer
	consumer  Consumer
	batchSize int
	interval  time.Duration
}

func NewSyncWorker(store gateway.Store, m mirror.Writer, consumer Consumer, batchSize int, interval time.Duration) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SyncWorker{
		store:     store,
		mirror:    m,
		consumer:  consumer,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Run consumes queue messages and runs the periodic catch-up pass until ctx
// is done. The catch-up covers messages lost while the broker or worker was
// down.
func (w *SyncWorker) Run(ctx context.Context) error {
	if err := w.ProcessPending(ctx, w.batchSize*5); err != nil {
		slog.ErrorContext(ctx, "Startup sync check failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if w.consumer != nil {
		g.Go(func() error {
			return w.consumer.ConsumeEntitySync(ctx, func(msg *amqp.EntitySyncMessage) error {
				return w.HandleMessage(ctx, msg)
			})
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.ProcessPending(ctx, w.batchSize); err != nil {
					slog.ErrorContext(ctx, "Periodic sync pass failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// HandleMessage mirrors one row change.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.EntitySyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"entity", msg.Entity,
		"id", msg.ID,
		"op", msg.Op)

	if msg.Op == amqp.OpDelete {
		if err := w.mirror.Delete(ctx, msg.Entity, msg.ID); err != nil {
			return fmt.Errorf("delete mirrored row: %w", err)
		}
		return nil
	}

	return w.syncRow(ctx, gateway.PendingRow{Entity: msg.Entity, ID: msg.ID, UserID: msg.UserID})
}

// ProcessPending mirrors up to limit rows whose sync_status is still pending.
func (w *SyncWorker) ProcessPending(ctx context.Context, limit int) error {
	pending, err := w.store.ListPendingSync(ctx, limit)
	if err != nil {
		return fmt.Errorf("list pending rows: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending rows", "count", len(pending))

	for _, p := range pending {
		if err := w.syncRow(ctx, p); err != nil {
			slog.ErrorContext(ctx, "Failed to sync row",
				"entity", p.Entity, "id", p.ID, "error", err)
		}
	}
	return nil
}

func (w *SyncWorker) syncRow(ctx context.Context, p gateway.PendingRow) error {
	var err error
	switch p.Entity {
	case amqp.EntityExpense:
		e, gerr := w.store.GetExpense(ctx, p.UserID, p.ID)
		if gerr != nil {
			err = gerr
		} else {
			err = w.mirror.UpsertExpense(ctx, p.UserID, e)
		}
	case amqp.EntityTimesheet:
		e, gerr := w.store.GetWorkEntry(ctx, p.UserID, p.ID)
		if gerr != nil {
			err = gerr
		} else {
			err = w.mirror.UpsertWorkEntry(ctx, p.UserID, e)
		}
	default:
		return fmt.Errorf("unknown sync entity: %s", p.Entity)
	}

	// A row deleted between the message and now has nothing left to mirror.
	if errors.Is(err, gateway.ErrNotFound) {
		if derr := w.mirror.Delete(ctx, p.Entity, p.ID); derr != nil {
			return fmt.Errorf("delete vanished row: %w", derr)
		}
		if merr := w.store.MarkSynced(ctx, p.Entity, p.ID); merr != nil {
			slog.ErrorContext(ctx, "Failed to mark vanished row synced",
				"entity", p.Entity, "id", p.ID, "error", merr)
		}
		return nil
	}
	if err != nil {
		if markErr := w.store.MarkSyncError(ctx, p.Entity, p.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"entity", p.Entity, "id", p.ID, "error", markErr)
		}
		return err
	}

	if err := w.store.MarkSynced(ctx, p.Entity, p.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced",
			"entity", p.Entity, "id", p.ID, "error", err)
		// The mirror write itself worked; the catch-up pass will retry.
	}

	slog.InfoContext(ctx, "Row mirrored", "entity", p.Entity, "id", p.ID)
	return nil
}
