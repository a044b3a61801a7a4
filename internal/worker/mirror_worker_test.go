package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"networth/internal/amqp"
	"networth/internal/core"
)

type fakeMirror struct {
	rows    map[int64]core.Deal
	failAll bool
}

func (m *fakeMirror) AppendDeal(_ context.Context, d core.Deal) error {
	if m.failAll {
		return errors.New("quota exceeded")
	}
	m.rows[d.ID] = d
	return nil
}

func (m *fakeMirror) DeleteDeal(_ context.Context, id int64) error {
	if m.failAll {
		return errors.New("quota exceeded")
	}
	delete(m.rows, id)
	return nil
}

func TestMirrorWorker_AppliesEvents(t *testing.T) {
	ctx := context.Background()
	m := &fakeMirror{rows: map[int64]core.Deal{}}
	w := NewMirrorWorker(m)

	d := core.Deal{ID: 1, Date: "2024-01-01", Value: decimal.NewFromInt(1000), Category: "Income"}
	require.NoError(t, w.HandleEvent(ctx, amqp.NewDealCreatedEvent(d)))
	require.Contains(t, m.rows, int64(1))
	assert.True(t, m.rows[1].Value.Equal(d.Value))

	require.NoError(t, w.HandleEvent(ctx, amqp.NewDealDeletedEvent(1)))
	assert.Empty(t, m.rows)

	created, deleted, failed := w.Stats()
	assert.Equal(t, int64(1), created)
	assert.Equal(t, int64(1), deleted)
	assert.Zero(t, failed)
}

func TestMirrorWorker_FailureIsReturned(t *testing.T) {
	w := NewMirrorWorker(&fakeMirror{rows: map[int64]core.Deal{}, failAll: true})

	err := w.HandleEvent(context.Background(), amqp.NewDealDeletedEvent(5))
	require.Error(t, err)
	_, _, failed := w.Stats()
	assert.Equal(t, int64(1), failed)
}

func TestMirrorWorker_UnknownTypeDropped(t *testing.T) {
	w := NewMirrorWorker(&fakeMirror{rows: map[int64]core.Deal{}})
	assert.NoError(t, w.HandleEvent(context.Background(), &amqp.DealEvent{Type: "deal.renamed", DealID: 1}))
}
