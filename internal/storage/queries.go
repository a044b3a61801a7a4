package storage

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the statements the repository runs against the deals table.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Deal mirrors one row of the deals table.
type Deal struct {
	ID       int64
	Date     string
	Value    decimal.Decimal
	Category string
	Comment  string
}

const createDeal = `
INSERT INTO deals (date, value, category, comment)
VALUES (?, ?, ?, ?)
RETURNING id, date, value, category, comment`

type CreateDealParams struct {
	Date     string
	Value    decimal.Decimal
	Category string
	Comment  string
}

func (q *Queries) CreateDeal(ctx context.Context, arg CreateDealParams) (Deal, error) {
	row := q.db.QueryRowContext(ctx, createDeal, arg.Date, arg.Value.String(), arg.Category, arg.Comment)
	var d Deal
	err := row.Scan(&d.ID, &d.Date, &d.Value, &d.Category, &d.Comment)
	return d, err
}

const listDeals = `
SELECT id, date, value, category, comment
FROM deals
ORDER BY id`

func (q *Queries) ListDeals(ctx context.Context) ([]Deal, error) {
	rows, err := q.db.QueryContext(ctx, listDeals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Deal
	for rows.Next() {
		var d Deal
		if err := rows.Scan(&d.ID, &d.Date, &d.Value, &d.Category, &d.Comment); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteDeal = `DELETE FROM deals WHERE id = ?`

// DeleteDeal returns the number of rows removed (0 or 1).
func (q *Queries) DeleteDeal(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteDeal, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
