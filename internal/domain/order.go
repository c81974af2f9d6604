package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side uint8

const (
	SideBuy Side = iota + 1
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Status is the lifecycle state of an order.
//
// PENDING -> PROCESSING on activation, then PARTIALLY_FILLED / FILLED as
// matches consume quantity. FILLED and CANCELLED are terminal.
type Status uint8

const (
	StatusCancelled Status = iota
	StatusPending
	StatusProcessing
	StatusPartiallyFilled
	StatusFilled
)

func (s Status) String() string {
	switch s {
	case StatusCancelled:
		return "CANCELLED"
	case StatusPending:
		return "PENDING"
	case StatusProcessing:
		return "PROCESSING"
	case StatusPartiallyFilled:
		return "PARTIALLY_FILLED"
	case StatusFilled:
		return "FILLED"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusFilled || s == StatusCancelled
}

// Order represents a single resting or historical order.
//
// ID, CreatedAt and Sequence are immutable after creation. Quantity only
// ever decreases; reaching 0 means the order is FILLED and leaves the book.
type Order struct {
	ID        string
	UserID    string
	Side      Side
	Price     decimal.Decimal
	Quantity  int64
	Status    Status
	CreatedAt time.Time
	Sequence  uint64
}

// IsOpen checks if the order can still participate in matching.
func (o *Order) IsOpen() bool {
	return !o.Status.IsTerminal()
}
