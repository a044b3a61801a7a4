package services

import (
	"context"
	"fmt"
	"log/slog"

	"networth/internal/core"
	"networth/internal/ledger"
)

// EventPublisher announces deal changes to other processes.
type EventPublisher interface {
	PublishDealCreated(ctx context.Context, d core.Deal) error
	PublishDealDeleted(ctx context.Context, id int64) error
	Close() error
}

var (
	_ ledger.Store  = (*DealService)(nil)
	_ ledger.Pinger = (*DealService)(nil)
)

// DealService writes through to the store and then publishes a change event.
// The local write is authoritative: publish failures are logged only.
type DealService struct {
	store     ledger.Store
	publisher EventPublisher
}

// NewDealService wires a store with an optional publisher (nil disables events).
func NewDealService(store ledger.Store, publisher EventPublisher) *DealService {
	return &DealService{store: store, publisher: publisher}
}

func (s *DealService) Add(ctx context.Context, d core.Deal) (core.Deal, error) {
	saved, err := s.store.Add(ctx, d)
	if err != nil {
		return core.Deal{}, fmt.Errorf("save deal: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDealCreated(ctx, saved); err != nil {
			slog.ErrorContext(ctx, "Failed to publish deal created event", "id", saved.ID, "error", err)
		}
	}

	return saved, nil
}

func (s *DealService) ListAll(ctx context.Context) ([]core.Deal, error) {
	return s.store.ListAll(ctx)
}

func (s *DealService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDealDeleted(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish deal deleted event", "id", id, "error", err)
		}
	}

	return nil
}

// Ping reports store health when the store supports it.
func (s *DealService) Ping(ctx context.Context) error {
	if p, ok := s.store.(ledger.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close closes the publisher. The store is owned by whoever created it.
func (s *DealService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}
