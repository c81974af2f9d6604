package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a single execution produced by the matcher.
// Price is always the passive (sell) side's resting price; the aggressive
// side never sets the trade price.
type Trade struct {
	ID          string
	BuyOrderID  string
	SellOrderID string
	BuyUserID   string
	SellUserID  string
	Price       decimal.Decimal
	Quantity    int64
	ExecutedAt  time.Time
}
