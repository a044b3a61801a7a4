package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"networth/internal/amqp"
	"networth/internal/core"
)

// Mirror is an external copy of the deal table.
type Mirror interface {
	AppendDeal(ctx context.Context, d core.Deal) error
	DeleteDeal(ctx context.Context, id int64) error
}

// MirrorWorker applies deal events to a Mirror.
type MirrorWorker struct {
	mirror Mirror

	created atomic.Int64
	deleted atomic.Int64
	failed  atomic.Int64
}

func NewMirrorWorker(mirror Mirror) *MirrorWorker {
	return &MirrorWorker{mirror: mirror}
}

// HandleEvent is the amqp.Client.Consume handler. A returned error requeues
// the message.
func (w *MirrorWorker) HandleEvent(ctx context.Context, ev *amqp.DealEvent) error {
	slog.InfoContext(ctx, "Processing deal event",
		"type", ev.Type,
		"deal_id", ev.DealID,
		"message_id", ev.MessageID)

	var err error
	switch ev.Type {
	case amqp.EventDealCreated:
		err = w.mirror.AppendDeal(ctx, ev.Deal())
		if err == nil {
			w.created.Add(1)
		}
	case amqp.EventDealDeleted:
		err = w.mirror.DeleteDeal(ctx, ev.DealID)
		if err == nil {
			w.deleted.Add(1)
		}
	default:
		// DealEventFromJSON already filters these; drop rather than loop forever.
		slog.WarnContext(ctx, "Ignoring unknown deal event", "type", ev.Type)
		return nil
	}

	if err != nil {
		w.failed.Add(1)
		return fmt.Errorf("mirror %s for deal %d: %w", ev.Type, ev.DealID, err)
	}
	return nil
}

// Stats returns counts of mirrored creates, deletes and failed attempts.
func (w *MirrorWorker) Stats() (created, deleted, failed int64) {
	return w.created.Load(), w.deleted.Load(), w.failed.Load()
}
