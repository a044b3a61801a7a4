package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"networth/internal/core"
	"networth/internal/ledger"

	_ "modernc.org/sqlite"
)

var (
	_ ledger.Store  = (*SQLiteRepository)(nil)
	_ ledger.Pinger = (*SQLiteRepository)(nil)
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// NewSQLiteRepository opens (creating if needed) the database file at dbPath
// and applies pending migrations. Safe to call on every process start.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; each statement is its own short transaction.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Add implements ledger.DealWriter
func (r *SQLiteRepository) Add(ctx context.Context, d core.Deal) (core.Deal, error) {
	row, err := r.queries.CreateDeal(ctx, CreateDealParams{
		Date:     d.Date,
		Value:    d.Value,
		Category: d.Category,
		Comment:  d.Comment,
	})
	if err != nil {
		return core.Deal{}, fmt.Errorf("create deal: %w", err)
	}

	slog.InfoContext(ctx, "Deal saved to SQLite",
		"id", row.ID,
		"date", row.Date,
		"value", row.Value.String(),
		"category", row.Category)

	return toCore(row), nil
}

// ListAll implements ledger.DealLister
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Deal, error) {
	rows, err := r.queries.ListDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	deals := make([]core.Deal, len(rows))
	for i, row := range rows {
		deals[i] = toCore(row)
	}
	return deals, nil
}

// DeleteByID implements ledger.DealDeleter. Deleting an unknown ID succeeds
// without touching the table. Any other failure is logged and returned.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteDeal(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to delete deal", "id", id, "error", err)
		return fmt.Errorf("delete deal %d: %w", id, err)
	}
	if n == 0 {
		slog.DebugContext(ctx, "Deal not found, nothing to delete", "id", id)
		return nil
	}

	slog.InfoContext(ctx, "Deal deleted from SQLite", "id", id)
	return nil
}

func toCore(row Deal) core.Deal {
	return core.Deal{
		ID:       row.ID,
		Date:     row.Date,
		Value:    row.Value,
		Category: row.Category,
		Comment:  row.Comment,
	}
}
