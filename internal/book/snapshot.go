package book

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

// Level is one aggregated price level of a depth snapshot.
type Level struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Orders   int             `json:"orders"`
}

// Snapshot captures the remaining depth of both sides, best price first.
// Used for the end-of-run report; it never mutates the book.
type Snapshot struct {
	Bids []Level `json:"bids"`
	Asks []Level `json:"asks"`
}

// Snapshot aggregates resting quantity per price level.
func (b *Book) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return Snapshot{
		Bids: b.depth(b.bids),
		Asks: b.depth(b.asks),
	}
}

func (b *Book) depth(tree *btree.BTreeG[*priceLevel]) []Level {
	var out []Level
	tree.Ascend(func(lvl *priceLevel) bool {
		agg := Level{Price: lvl.price, Orders: lvl.orders.Len()}
		for e := lvl.orders.Front(); e != nil; e = e.Next() {
			agg.Quantity += b.orders[e.Value.(string)].Quantity
		}
		out = append(out, agg)
		return true
	})
	return out
}
