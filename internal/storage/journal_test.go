package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harryphiles/trading-system-poc/internal/domain"
)

func newTestJournal(t *testing.T) *TradeJournal {
	t.Helper()
	j, err := NewTradeJournal(filepath.Join(t.TempDir(), "trades.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestTradeJournal_AppendAndLoad(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	tr := domain.Trade{
		ID:          "t-1",
		BuyOrderID:  "00000001",
		SellOrderID: "00000002",
		BuyUserID:   "alice",
		SellUserID:  "bob",
		Price:       decimal.RequireFromString("99.50"),
		Quantity:    7,
		ExecutedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, j.Append(ctx, tr))

	n, err := j.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	trades, err := j.Load(ctx)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, tr.ID, trades[0].ID)
	assert.Equal(t, tr.BuyOrderID, trades[0].BuyOrderID)
	assert.Equal(t, tr.SellOrderID, trades[0].SellOrderID)
	assert.True(t, trades[0].Price.Equal(tr.Price))
	assert.EqualValues(t, 7, trades[0].Quantity)
	assert.True(t, trades[0].ExecutedAt.Equal(tr.ExecutedAt))
}

func TestTradeJournal_DuplicateIDRejected(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	tr := domain.Trade{
		ID: "t-1", BuyOrderID: "b", SellOrderID: "s",
		BuyUserID: "a", SellUserID: "b",
		Price: decimal.NewFromInt(100), Quantity: 1,
		ExecutedAt: time.Now().UTC(),
	}
	require.NoError(t, j.Append(ctx, tr))
	assert.Error(t, j.Append(ctx, tr), "trade ids are unique")
}

func TestTradeJournal_EmptyCount(t *testing.T) {
	j := newTestJournal(t)

	n, err := j.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
