package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harryphiles/trading-system-poc/internal/book"
	"github.com/harryphiles/trading-system-poc/internal/domain"
	"github.com/harryphiles/trading-system-poc/pkg/safe"
)

// Matcher repeatedly pairs the best resting buy against the best resting
// sell while they cross (continuous double auction, greedy price-time
// priority). It holds no state of its own; everything lives in the book.
type Matcher struct{}

// Match runs the matching loop against the book.
//
// removed is the number of orders taken out of the priority sides because
// they filled completely; trades lists every execution in order. The trade
// price is always the sell (passive) side's resting price.
//
// Invoking Match on a non-crossing book returns (0, nil) and mutates
// nothing, which is what lets the processor re-run the full book on every
// cycle without drifting.
func (Matcher) Match(b *book.Book) (removed int, trades []domain.Trade) {
	for {
		buy := b.PeekBestBuy()
		sell := b.PeekBestSell()
		if buy == nil || sell == nil || sell.Price.GreaterThan(buy.Price) {
			return removed, trades
		}

		qty := min(buy.Quantity, sell.Quantity)
		trades = append(trades, domain.Trade{
			ID:          uuid.NewString(),
			BuyOrderID:  buy.ID,
			SellOrderID: sell.ID,
			BuyUserID:   buy.UserID,
			SellUserID:  sell.UserID,
			Price:       sell.Price,
			Quantity:    qty,
			ExecutedAt:  time.Now().UTC(),
		})

		buy.Quantity = safe.Sub(buy.Quantity, qty)
		sell.Quantity = safe.Sub(sell.Quantity, qty)
		if buy.Quantity < 0 || sell.Quantity < 0 {
			panic("MATCH_NEGATIVE_QTY: " + buy.ID + "/" + sell.ID)
		}
		buy.Status = domain.StatusPartiallyFilled
		sell.Status = domain.StatusPartiallyFilled

		if buy.Quantity == 0 {
			removed++
			fill(b, b.PopBestBuy, buy)
		}
		if sell.Quantity == 0 {
			removed++
			fill(b, b.PopBestSell, sell)
		}

		slog.Info("matched",
			slog.String("buy", buy.ID),
			slog.String("sell", sell.ID),
			slog.Int64("quantity", qty),
			slog.String("price", sell.Price.String()))
	}
}

// fill pops a fully consumed order off its side and archives it.
func fill(b *book.Book, pop func() *domain.Order, want *domain.Order) {
	got := pop()
	if got == nil || got.ID != want.ID {
		panic("MATCH_POP_MISMATCH: best order changed under the matcher")
	}
	got.Status = domain.StatusFilled
	b.ArchiveFilled(got)
}
