package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harryphiles/trading-system-poc/internal/domain"
	"github.com/harryphiles/trading-system-poc/internal/engine"
	"github.com/harryphiles/trading-system-poc/internal/infra"
)

// Options bound the randomized order flow.
type Options struct {
	Duration          time.Duration
	OrdersPerSec      float64
	SubmitProbability float64
	PriceMin          float64
	PriceMax          float64
	QtyMin            int64
	QtyMax            int64
	Seed              int64 // 0 means time-based
}

// Driver feeds randomized orders into a processor, standing in for the
// external order flow the engine would normally receive. It is a
// collaborator of the core, not part of it.
type Driver struct {
	proc    *engine.Processor
	opts    Options
	rng     *rand.Rand
	limiter *infra.RateLimiter
}

// NewDriver creates a driver. A non-zero seed makes the run deterministic.
func NewDriver(proc *engine.Processor, opts Options) *Driver {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Driver{
		proc:    proc,
		opts:    opts,
		rng:     rand.New(rand.NewSource(seed)),
		limiter: infra.NewRateLimiter(1, opts.OrdersPerSec),
	}
}

// Run simulates steady-state trading until the duration elapses or the
// context is cancelled: each paced cycle maybe submits one random order,
// then processes one queued order.
func (d *Driver) Run(ctx context.Context) {
	deadline := time.Now().Add(d.opts.Duration)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			slog.Info("simulation interrupted")
			d.Report()
			return
		default:
		}

		d.limiter.Wait()

		if d.rng.Float64() < d.opts.SubmitProbability {
			userID, side, price, qty := d.randomOrder()
			if _, err := d.proc.Receive(userID, side, price, qty); err != nil {
				slog.Error("failed to submit random order", slog.Any("error", err))
			}
		}

		d.proc.ProcessOne()
	}

	slog.Info("simulation completed")
	d.Report()
}

// RunBatch submits n random orders up front and drains the queue in one
// go. Used to gauge matching throughput on large books.
func (d *Driver) RunBatch(n int) {
	t0 := time.Now()
	for i := 0; i < n; i++ {
		userID, side, price, qty := d.randomOrder()
		if _, err := d.proc.Receive(userID, side, price, qty); err != nil {
			slog.Error("failed to submit random order", slog.Any("error", err))
		}
	}
	t1 := time.Now()
	slog.Info("batch submitted",
		slog.Int("orders", n),
		slog.Duration("elapsed", t1.Sub(t0)))

	d.proc.DrainAll()
	slog.Info("batch matched",
		slog.Int("orders", n),
		slog.Duration("elapsed", time.Since(t1)))
}

// Report logs final totals and the remaining book depth.
func (d *Driver) Report() {
	b := d.proc.Book()
	slog.Info("final orderbook state",
		slog.Int("total", b.TotalOrders()),
		slog.Int("pending", b.PendingCount()),
		slog.Int64("resting", b.RestingCount()),
		slog.Int("filled", b.FilledCount()),
		slog.Int64("transactions", d.proc.Transactions()))

	snap := b.Snapshot()
	for _, lvl := range snap.Bids {
		slog.Info("remaining bids",
			slog.String("price", lvl.Price.String()),
			slog.Int64("quantity", lvl.Quantity),
			slog.Int("orders", lvl.Orders))
	}
	for _, lvl := range snap.Asks {
		slog.Info("remaining asks",
			slog.String("price", lvl.Price.String()),
			slog.Int64("quantity", lvl.Quantity),
			slog.Int("orders", lvl.Orders))
	}
}

// randomOrder draws one order's parameters: uniform side, a price inside
// the band rounded to 2dp, and a uniform quantity.
func (d *Driver) randomOrder() (userID string, side domain.Side, price decimal.Decimal, qty int64) {
	side = domain.SideBuy
	if d.rng.Intn(2) == 1 {
		side = domain.SideSell
	}

	raw := d.opts.PriceMin + d.rng.Float64()*(d.opts.PriceMax-d.opts.PriceMin)
	price = decimal.NewFromFloat(raw).Round(2)

	qty = d.opts.QtyMin + d.rng.Int63n(d.opts.QtyMax-d.opts.QtyMin+1)
	userID = fmt.Sprintf("user%d", d.rng.Intn(100)+1)
	return userID, side, price, qty
}
