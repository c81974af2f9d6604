package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/harryphiles/trading-system-poc/internal/infra"
	"github.com/harryphiles/trading-system-poc/internal/storage"
)

// Bootstrap orchestrates the application startup sequence:
// config, logging, workspace directories and the trade journal.
type Bootstrap struct {
	Config  *infra.Config
	Journal *storage.TradeJournal
}

// NewBootstrap creates a new Bootstrap instance.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization.
func (b *Bootstrap) Initialize() error {
	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		return err
	}
	b.Config = cfg

	slog.SetDefault(infra.NewLogger(cfg))
	slog.Info("bootstrapping",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version))

	if cfg.Journal.Enabled {
		path := cfg.Journal.Path
		if path == "" {
			dataDir := filepath.Join(infra.GetWorkspaceDir(), "data")
			if err := infra.EnsureDir(dataDir); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}
			path = filepath.Join(dataDir, "trades.db")
		}
		journal, err := storage.NewTradeJournal(path)
		if err != nil {
			return err
		}
		b.Journal = journal
		slog.Info("trade journal ready", slog.String("path", path))
	}

	return nil
}

// Close releases resources acquired during Initialize.
func (b *Bootstrap) Close() {
	if b.Journal != nil {
		if err := b.Journal.Close(); err != nil {
			slog.Error("failed to close trade journal", slog.Any("error", err))
		}
	}
}
