package memory

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"networth/internal/core"
)

func TestStoreAddListOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i, v := range []int64{10, -5, 0} {
		d, err := s.Add(ctx, core.Deal{Date: "d", Value: decimal.NewFromInt(v), Category: "x"})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), d.ID)
	}

	got, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, d := range got {
		assert.Equal(t, int64(i+1), d.ID)
	}
}

func TestStoreHistoryNewestFirstAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	add := func(v int64) core.Deal {
		t.Helper()
		d, err := s.Add(ctx, core.Deal{Date: "2024-01-01", Value: decimal.NewFromInt(v), Category: "Food"})
		require.NoError(t, err)
		return d
	}

	first := add(1)
	second := add(2)
	require.NoError(t, s.DeleteByID(ctx, second.ID))
	third := add(3)
	fourth := add(4)
	require.NoError(t, s.DeleteByID(ctx, first.ID))
	fifth := add(5)

	deals, err := s.ListAll(ctx)
	require.NoError(t, err)
	rows := core.History(deals)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	want := []string{idString(fifth), idString(fourth), idString(third)}
	assert.Equal(t, want, ids)

	for i := 1; i < len(deals); i++ {
		assert.Greater(t, deals[i].ID, deals[i-1].ID, "storage order follows ID")
	}
}

func idString(d core.Deal) string {
	return strconv.FormatInt(d.ID, 10)
}

func TestStoreDeleteNeverReusesIDs(t *testing.T) {
	ctx := context.Background()
	s := New(core.Deal{Category: "a"}, core.Deal{Category: "b"})

	require.NoError(t, s.DeleteByID(ctx, 2))
	d, err := s.Add(ctx, core.Deal{Category: "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.ID)

	got, _ := s.ListAll(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{1, 3}, []int64{got[0].ID, got[1].ID})
}

func TestStoreDeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.DeleteByID(ctx, 999))
	got, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New(core.Deal{Comment: "original"})

	got, _ := s.ListAll(ctx)
	got[0].Comment = "changed"

	again, _ := s.ListAll(ctx)
	assert.Equal(t, "original", again[0].Comment)
}
