package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harryphiles/trading-system-poc/internal/app"
	"github.com/harryphiles/trading-system-poc/internal/book"
	"github.com/harryphiles/trading-system-poc/internal/domain"
	"github.com/harryphiles/trading-system-poc/internal/engine"
	"github.com/harryphiles/trading-system-poc/internal/sim"
)

func main() {
	batch := flag.Int("batch", 0, "submit N orders and drain in one go instead of the timed simulation")
	flag.Parse()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []engine.Option
	if journal := bootstrap.Journal; journal != nil {
		opts = append(opts, engine.WithTradeCallback(func(tr domain.Trade) {
			if err := journal.Append(ctx, tr); err != nil {
				slog.Error("failed to journal trade",
					slog.String("trade", tr.ID),
					slog.Any("error", err))
			}
		}))
	}

	cfg := bootstrap.Config
	proc := engine.NewProcessor(book.New(), opts...)
	driver := sim.NewDriver(proc, sim.Options{
		Duration:          time.Duration(cfg.Sim.DurationSec) * time.Second,
		OrdersPerSec:      cfg.Sim.OrdersPerSec,
		SubmitProbability: cfg.Sim.SubmitProbability,
		PriceMin:          cfg.Sim.PriceMin,
		PriceMax:          cfg.Sim.PriceMax,
		QtyMin:            cfg.Sim.QtyMin,
		QtyMax:            cfg.Sim.QtyMax,
		Seed:              cfg.Sim.Seed,
	})

	if *batch > 0 {
		driver.RunBatch(*batch)
		driver.Report()
		return
	}

	driver.Run(ctx)
}
