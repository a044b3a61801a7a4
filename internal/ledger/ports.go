package ledger

import (
	"context"

	"networth/internal/core"
)

// Ports for the deal table.
type (
	// DealWriter inserts a full row and returns it with its store-assigned ID.
	// No validation happens here; that is the caller's job.
	DealWriter interface {
		Add(ctx context.Context, d core.Deal) (core.Deal, error)
	}

	// DealLister returns every deal in insertion order.
	DealLister interface {
		ListAll(ctx context.Context) ([]core.Deal, error)
	}

	// DealDeleter removes a deal by ID. A missing ID is not an error.
	DealDeleter interface {
		DeleteByID(ctx context.Context, id int64) error
	}

	// Pinger is implemented by stores that can report readiness.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	Store interface {
		DealWriter
		DealLister
		DealDeleter
	}
)
