package book

import (
	"container/list"
	"log/slog"
	"sync"

	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/harryphiles/trading-system-poc/internal/domain"
	"github.com/harryphiles/trading-system-poc/pkg/safe"
)

const btreeDegree = 8

// priceLevel holds the FIFO of order ids resting at a single price.
// Head of the list is the earliest arrival, so price-time priority is
// structural and never depends on comparator subtleties.
type priceLevel struct {
	price  decimal.Decimal
	orders *list.List // element values are order ids (string)
}

// locator records where an order currently lives so cancellation never scans.
// level is nil while the order is still waiting in the ingestion queue.
type locator struct {
	elem  *list.Element
	level *priceLevel
}

// Book owns all order storage and every state transition triggered by
// queueing, activation, matching and cancellation.
//
// The orders map is the single authoritative arena; the ingestion queue,
// the price levels and the filled archive hold order ids only. Each public
// operation takes the book's lock, and callers that need a stable view
// across several operations (the processor running the matcher) serialize
// at their own level on top.
type Book struct {
	mu sync.RWMutex

	orders   map[string]*domain.Order   // arena / id index
	queue    *list.List                 // ingestion FIFO of order ids
	bids     *btree.BTreeG[*priceLevel] // Min() is the highest price
	asks     *btree.BTreeG[*priceLevel] // Min() is the lowest price
	locators map[string]locator
	filled   []string // archive, completion order
	resting  int64    // total orders across bids and asks
}

// New creates an empty order book.
func New() *Book {
	return &Book{
		orders: make(map[string]*domain.Order),
		queue:  list.New(),
		bids: btree.NewG(btreeDegree, func(a, b *priceLevel) bool {
			return a.price.Cmp(b.price) > 0
		}),
		asks: btree.NewG(btreeDegree, func(a, b *priceLevel) bool {
			return a.price.Cmp(b.price) < 0
		}),
		locators: make(map[string]locator),
	}
}

// Submit appends the order to the ingestion queue and indexes it. O(1).
// The priority sides are untouched until ActivateNext.
func (b *Book) Submit(o *domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	elem := b.queue.PushBack(o.ID)
	b.orders[o.ID] = o
	b.locators[o.ID] = locator{elem: elem}
}

// ActivateNext pops the ingestion queue head into its priority side,
// transitioning PENDING -> PROCESSING. Returns nil when the queue is empty.
func (b *Book) ActivateNext() *domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	front := b.queue.Front()
	if front == nil {
		return nil
	}
	id := b.queue.Remove(front).(string)
	o, ok := b.orders[id]
	if !ok {
		panic("BOOK_QUEUE_DESYNC: queued id missing from arena: " + id)
	}
	o.Status = domain.StatusProcessing

	lvl := b.levelFor(o.Side, o.Price)
	elem := lvl.orders.PushBack(id)
	b.locators[id] = locator{elem: elem, level: lvl}
	b.resting = safe.Add(b.resting, 1)

	slog.Debug("order activated",
		slog.String("id", o.ID),
		slog.String("side", o.Side.String()),
		slog.String("price", o.Price.String()))
	return o
}

// Cancel removes an order from whichever live structure holds it and marks
// it CANCELLED. Returns false for unknown ids and for orders already in a
// terminal state; the book is left untouched in both failure cases.
func (b *Book) Cancel(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[id]
	if !ok {
		slog.Warn("cancel rejected: unknown order", slog.String("id", id))
		return false
	}
	if o.Status.IsTerminal() {
		slog.Warn("cancel rejected: terminal order",
			slog.String("id", id),
			slog.String("status", o.Status.String()))
		return false
	}

	loc := b.locators[id]
	switch o.Status {
	case domain.StatusPending:
		b.queue.Remove(loc.elem)
	case domain.StatusProcessing, domain.StatusPartiallyFilled:
		b.removeFromLevel(o, loc)
	}

	o.Status = domain.StatusCancelled
	delete(b.orders, id)
	delete(b.locators, id)

	slog.Info("order cancelled",
		slog.String("id", id),
		slog.Int("pending", b.queue.Len()),
		slog.Int64("resting", b.resting))
	return true
}

// PeekBestBuy returns the highest-priced, earliest buy order without
// removing it, or nil when the buy side is empty.
func (b *Book) PeekBestBuy() *domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.peekBest(b.bids)
}

// PeekBestSell returns the lowest-priced, earliest sell order without
// removing it, or nil when the sell side is empty.
func (b *Book) PeekBestSell() *domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.peekBest(b.asks)
}

// PopBestBuy removes and returns the best buy order, or nil.
func (b *Book) PopBestBuy() *domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.popBest(b.bids)
}

// PopBestSell removes and returns the best sell order, or nil.
func (b *Book) PopBestSell() *domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.popBest(b.asks)
}

// ArchiveFilled appends a fully executed order to the filled archive.
// The caller must already have popped it from its side and set FILLED.
func (b *Book) ArchiveFilled(o *domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if o.Status != domain.StatusFilled {
		panic("BOOK_ARCHIVE_NOT_FILLED: " + o.ID + " is " + o.Status.String())
	}
	if o.Quantity != 0 {
		panic("BOOK_ARCHIVE_RESIDUAL_QTY: " + o.ID)
	}
	b.filled = append(b.filled, o.ID)
}

// RestingCount returns the combined size of both priority sides.
func (b *Book) RestingCount() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.resting
}

// PendingCount returns the number of orders awaiting activation.
func (b *Book) PendingCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue.Len()
}

// TotalOrders returns the number of orders the book still knows about
// (everything ever submitted minus cancellations).
func (b *Book) TotalOrders() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}

// FilledCount returns the size of the filled archive.
func (b *Book) FilledCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.filled)
}

// FilledOrders returns the archive in completion order.
func (b *Book) FilledOrders() []*domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*domain.Order, 0, len(b.filled))
	for _, id := range b.filled {
		out = append(out, b.orders[id])
	}
	return out
}

// Get looks an order up by id.
func (b *Book) Get(id string) (*domain.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[id]
	return o, ok
}

func (b *Book) side(s domain.Side) *btree.BTreeG[*priceLevel] {
	if s == domain.SideBuy {
		return b.bids
	}
	return b.asks
}

// levelFor returns the level for (side, price), creating it if absent.
func (b *Book) levelFor(s domain.Side, price decimal.Decimal) *priceLevel {
	tree := b.side(s)
	if lvl, ok := tree.Get(&priceLevel{price: price}); ok {
		return lvl
	}
	lvl := &priceLevel{price: price, orders: list.New()}
	tree.ReplaceOrInsert(lvl)
	return lvl
}

func (b *Book) peekBest(tree *btree.BTreeG[*priceLevel]) *domain.Order {
	lvl, ok := tree.Min()
	if !ok {
		return nil
	}
	front := lvl.orders.Front()
	if front == nil {
		// Empty levels are deleted eagerly; seeing one means bookkeeping broke.
		panic("BOOK_EMPTY_LEVEL: " + lvl.price.String())
	}
	return b.orders[front.Value.(string)]
}

func (b *Book) popBest(tree *btree.BTreeG[*priceLevel]) *domain.Order {
	lvl, ok := tree.Min()
	if !ok {
		return nil
	}
	front := lvl.orders.Front()
	if front == nil {
		panic("BOOK_EMPTY_LEVEL: " + lvl.price.String())
	}
	id := lvl.orders.Remove(front).(string)
	if lvl.orders.Len() == 0 {
		tree.Delete(lvl)
	}

	o := b.orders[id]
	delete(b.locators, id)
	b.resting = safe.Sub(b.resting, 1)
	return o
}

func (b *Book) removeFromLevel(o *domain.Order, loc locator) {
	if loc.level == nil {
		panic("BOOK_LOCATOR_DESYNC: resting order has no level: " + o.ID)
	}
	loc.level.orders.Remove(loc.elem)
	if loc.level.orders.Len() == 0 {
		b.side(o.Side).Delete(loc.level)
	}
	b.resting = safe.Sub(b.resting, 1)
}
