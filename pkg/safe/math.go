package safe

import (
	"math"
)

// Sub performs int64 subtraction and panics on overflow/underflow.
// Quantity and counter mutations in the book go through here: an overflow
// indicates a bookkeeping bug, never a recoverable runtime condition.
func Sub(a, b int64) int64 {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		panic("SAFE_SUB_OVERFLOW")
	}
	return a - b
}

// Add performs int64 addition and panics on overflow/underflow.
func Add(a, b int64) int64 {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		panic("SAFE_ADD_OVERFLOW")
	}
	return a + b
}
