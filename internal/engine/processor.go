package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harryphiles/trading-system-poc/internal/book"
	"github.com/harryphiles/trading-system-poc/internal/domain"
	"github.com/harryphiles/trading-system-poc/pkg/safe"
)

// Validation failures reported by Receive. Both are recoverable: the
// rejected order never touches the book and the processor stays usable.
var (
	ErrPriceNotPositive    = errors.New("order price must be positive")
	ErrQuantityNotPositive = errors.New("order quantity must be positive")
)

// Processor orchestrates submission, cancellation and the processing loop
// over one book. Its mutex is the single exclusive section the book's
// matching pass relies on: Receive, Cancel, ProcessOne and DrainAll never
// interleave against the same instance.
type Processor struct {
	mu      sync.Mutex
	book    *book.Book
	matcher Matcher
	seq     *Sequence

	transactions int64 // trade records ever produced, not orders

	// onTrade is the boundary used to notify collaborators (journal, UI)
	// of executions. Nil means no observer.
	onTrade func(domain.Trade)
}

// Option configures a Processor.
type Option func(*Processor)

// WithTradeCallback registers a callback invoked once per execution, in
// match order, while the processing cycle runs. Keep it cheap.
func WithTradeCallback(fn func(domain.Trade)) Option {
	return func(p *Processor) {
		p.onTrade = fn
	}
}

// WithSequence substitutes the id generator; used by tests and setups that
// need an explicit reset.
func WithSequence(seq *Sequence) Option {
	return func(p *Processor) {
		p.seq = seq
	}
}

// NewProcessor creates a processor owning its own sequence generator.
func NewProcessor(b *book.Book, opts ...Option) *Processor {
	p := &Processor{
		book: b,
		seq:  NewSequence(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Receive validates the order parameters, assigns an id and submits the
// order to the ingestion queue. Rejections create no state at all.
func (p *Processor) Receive(userID string, side domain.Side, price decimal.Decimal, quantity int64) (*domain.Order, error) {
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("receive for %s: %w", userID, ErrPriceNotPositive)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("receive for %s: %w", userID, ErrQuantityNotPositive)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	id, seq := p.seq.Next()
	o := &domain.Order{
		ID:        id,
		UserID:    userID,
		Side:      side,
		Price:     price,
		Quantity:  quantity,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
		Sequence:  seq,
	}
	p.book.Submit(o)

	slog.Info("order received",
		slog.String("id", o.ID),
		slog.Int("total", p.book.TotalOrders()),
		slog.Int("pending", p.book.PendingCount()))
	return o, nil
}

// Cancel delegates to the book. False means the id is unknown or the order
// already reached a terminal state.
func (p *Processor) Cancel(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.book.Cancel(id)
}

// ProcessOne activates the next queued order and re-runs matching against
// the whole book. No-op when the ingestion queue is empty.
func (p *Processor) ProcessOne() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processNext()
}

// DrainAll activates and matches until the ingestion queue is empty.
// Intended for batch/throughput runs, not steady-state operation.
func (p *Processor) DrainAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.processNext() {
	}
}

// Transactions returns the total number of trade records ever produced.
func (p *Processor) Transactions() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transactions
}

// Book exposes the underlying book for read accessors and reports.
func (p *Processor) Book() *book.Book {
	return p.book
}

// processNext runs one activation+match cycle. Caller holds p.mu.
//
// Matching the full book rather than only the activated order is
// deliberate: Match is idempotent on non-crossing state, so the repeated
// full pass stays behaviorally identical while being simpler to reason
// about.
func (p *Processor) processNext() bool {
	o := p.book.ActivateNext()
	if o == nil {
		return false
	}
	slog.Info("processing order", slog.String("id", o.ID))

	_, trades := p.matcher.Match(p.book)
	p.transactions = safe.Add(p.transactions, int64(len(trades)))
	if p.onTrade != nil {
		for _, tr := range trades {
			p.onTrade(tr)
		}
	}

	slog.Info("processing summary",
		slog.Int("total", p.book.TotalOrders()),
		slog.Int64("resting", p.book.RestingCount()),
		slog.Int("filled", p.book.FilledCount()),
		slog.Int64("transactions", p.transactions))
	return true
}
