package safe

import (
	"math"
	"testing"
)

func TestSafeMath(t *testing.T) {
	tests := []struct {
		name string
		op   func(a, b int64) int64
		val1 int64
		val2 int64
		want int64
	}{
		{"Normal Add", Add, 10, 20, 30},
		{"Add Boundary", Add, math.MaxInt64 - 1, 1, math.MaxInt64},
		{"Normal Sub", Sub, 30, 10, 20},
		{"Sub To Zero", Sub, 10, 10, 0},
		{"Sub Boundary", Sub, math.MinInt64 + 1, 1, math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op(tt.val1, tt.val2); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMathPanic(t *testing.T) {
	t.Run("Add Overflow", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Should have panicked")
			}
		}()
		Add(math.MaxInt64, 1)
	})

	t.Run("Sub Underflow", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Should have panicked")
			}
		}()
		Sub(math.MinInt64, 1)
	})
}
