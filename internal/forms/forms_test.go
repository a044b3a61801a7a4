package forms

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"networth/internal/core"
	"networth/internal/ledger/memory"
)

type countingStore struct {
	*memory.Store
	adds, deletes int
	err           error
}

func (s *countingStore) Add(ctx context.Context, d core.Deal) (core.Deal, error) {
	s.adds++
	if s.err != nil {
		return core.Deal{}, s.err
	}
	return s.Store.Add(ctx, d)
}

func (s *countingStore) DeleteByID(ctx context.Context, id int64) error {
	s.deletes++
	if s.err != nil {
		return s.err
	}
	return s.Store.DeleteByID(ctx, id)
}

func newCountingStore() *countingStore {
	return &countingStore{Store: memory.New()}
}

func TestAddForm_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid draft is saved and cleared", func(t *testing.T) {
		s := newCountingStore()
		draft := AddForm{Date: "2024-01-01", Amount: "1000", Category: "Income", Comment: "salary"}

		next, saved, outcome, err := draft.Submit(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, Saved, outcome)
		assert.Equal(t, AddForm{}, next)
		assert.Equal(t, int64(1), saved.ID)
		assert.Equal(t, "1000", saved.Value.String())
		assert.Equal(t, 1, s.adds)
	})

	t.Run("blank amount is ignored", func(t *testing.T) {
		s := newCountingStore()
		draft := AddForm{Date: "2024-01-01", Amount: "  ", Category: "Food", Comment: "lunch"}

		next, _, outcome, err := draft.Submit(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, Ignored, outcome)
		assert.Equal(t, draft, next)
		assert.Zero(t, s.adds)
	})

	t.Run("malformed amount is rejected", func(t *testing.T) {
		s := newCountingStore()
		draft := AddForm{Amount: "ten", Category: "Food"}

		next, _, outcome, err := draft.Submit(ctx, s)
		assert.ErrorIs(t, err, core.ErrInvalidAmount)
		assert.Equal(t, Rejected, outcome)
		assert.Equal(t, "ten", next.Amount)
		assert.NotEmpty(t, next.Error)
		assert.Zero(t, s.adds)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		s := newCountingStore()
		draft := AddForm{Amount: "5", Category: "Gambling"}

		next, _, outcome, err := draft.Submit(ctx, s)
		assert.ErrorIs(t, err, core.ErrUnknownCategory)
		assert.Equal(t, Rejected, outcome)
		assert.Contains(t, next.Error, "Gambling")
		assert.Zero(t, s.adds)
	})

	t.Run("store failure keeps the draft", func(t *testing.T) {
		s := newCountingStore()
		s.err = errors.New("database is locked")
		draft := AddForm{Amount: "-200", Category: "Housing", Comment: "rent"}

		next, _, outcome, err := draft.Submit(ctx, s)
		require.Error(t, err)
		assert.Equal(t, Failed, outcome)
		assert.Equal(t, "-200", next.Amount)
		assert.NotEmpty(t, next.Error)
		assert.Equal(t, 1, s.adds)
	})

	t.Run("stale error is cleared on resubmit", func(t *testing.T) {
		s := newCountingStore()
		draft := AddForm{Amount: "", Error: "old"}

		next, _, _, _ := draft.Submit(ctx, s)
		assert.Empty(t, next.Error)
	})
}

func TestDeleteForm_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("existing id is deleted", func(t *testing.T) {
		s := newCountingStore()
		_, err := s.Store.Add(ctx, core.Deal{Category: "Food"})
		require.NoError(t, err)

		next, id, outcome, err := DeleteForm{ID: "1"}.Submit(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, Saved, outcome)
		assert.Equal(t, int64(1), id)
		assert.Equal(t, DeleteForm{}, next)

		all, _ := s.ListAll(ctx)
		assert.Empty(t, all)
	})

	t.Run("missing id is still saved", func(t *testing.T) {
		s := newCountingStore()
		_, _, outcome, err := DeleteForm{ID: "999"}.Submit(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, Saved, outcome)
		assert.Equal(t, 1, s.deletes)
	})

	for _, raw := range []string{"", "abc", "1.5"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			s := newCountingStore()
			next, _, outcome, err := DeleteForm{ID: raw}.Submit(ctx, s)
			assert.ErrorIs(t, err, core.ErrInvalidID)
			assert.Equal(t, Rejected, outcome)
			assert.Equal(t, raw, next.ID)
			assert.NotEmpty(t, next.Error)
			assert.Zero(t, s.deletes)
		})
	}

	t.Run("store failure keeps the draft", func(t *testing.T) {
		s := newCountingStore()
		s.err = errors.New("disk I/O error")
		next, _, outcome, err := DeleteForm{ID: "3"}.Submit(ctx, s)
		require.Error(t, err)
		assert.Equal(t, Failed, outcome)
		assert.Equal(t, "3", next.ID)
		assert.Contains(t, next.Error, "3")
	})
}

func TestFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("date", " 2024-01-05 ")
	v.Set("amount", " -200 ")
	v.Set("category", "Housing")
	v.Set("comment", " rent ")
	v.Set("id", " 4 ")

	assert.Equal(t, AddForm{Date: "2024-01-05", Amount: "-200", Category: "Housing", Comment: " rent "}, AddFormFromValues(v))
	assert.Equal(t, DeleteForm{ID: "4"}, DeleteFormFromValues(v))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "ignored", Ignored.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "saved", Saved.String())
	assert.Equal(t, "failed", Failed.String())
}
