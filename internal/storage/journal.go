package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	_ "github.com/glebarez/go-sqlite"

	"github.com/harryphiles/trading-system-poc/internal/domain"
)

// TradeJournal appends executions to SQLite for post-run reporting.
// It is an observer of the engine, never a recovery source: the engine
// does not read it back and stays fully in-memory.
type TradeJournal struct {
	db *sql.DB
}

// NewTradeJournal opens (or creates) the journal database.
func NewTradeJournal(dbPath string) (*TradeJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			buy_order_id TEXT NOT NULL,
			sell_order_id TEXT NOT NULL,
			buy_user_id TEXT NOT NULL,
			sell_user_id TEXT NOT NULL,
			price TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			executed_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create trades table: %w", err)
	}

	return &TradeJournal{db: db}, nil
}

// Append stores one execution.
func (j *TradeJournal) Append(ctx context.Context, tr domain.Trade) error {
	_, err := j.db.ExecContext(ctx,
		"INSERT INTO trades (id, buy_order_id, sell_order_id, buy_user_id, sell_user_id, price, quantity, executed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		tr.ID, tr.BuyOrderID, tr.SellOrderID, tr.BuyUserID, tr.SellUserID,
		tr.Price.String(), tr.Quantity, tr.ExecutedAt.UnixMicro(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// Count returns the number of journaled trades.
func (j *TradeJournal) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trades").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return n, nil
}

// Load returns every journaled trade in execution order.
func (j *TradeJournal) Load(ctx context.Context) ([]domain.Trade, error) {
	rows, err := j.db.QueryContext(ctx,
		"SELECT id, buy_order_id, sell_order_id, buy_user_id, sell_user_id, price, quantity, executed_at FROM trades ORDER BY executed_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var tr domain.Trade
		var price string
		var executedAt int64
		if err := rows.Scan(&tr.ID, &tr.BuyOrderID, &tr.SellOrderID,
			&tr.BuyUserID, &tr.SellUserID, &price, &tr.Quantity, &executedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("corrupt price in journal: %w", err)
		}
		tr.Price = p
		tr.ExecutedAt = time.UnixMicro(executedAt).UTC()
		trades = append(trades, tr)
	}
	return trades, rows.Err()
}

// Close releases the database handle.
func (j *TradeJournal) Close() error {
	return j.db.Close()
}
