package model

import (
	"math"
	"strconv"
)

// Amount is a fixed-point quantity stored as integer hundredths of a unit.
// Stock quantities, thresholds and audit deltas all use Amount so repeated
// consumption never accumulates floating-point residue.
type Amount int64

func AmountFromFloat(f float64) Amount {
	return Amount(math.Round(f * 100))
}

func AmountFromInt(n int64) Amount {
	return Amount(n * 100)
}

func (a Amount) Float64() float64 {
	return float64(a) / 100
}

func (a Amount) Add(b Amount) Amount { return a + b }
func (a Amount) Sub(b Amount) Amount { return a - b }

func (a Amount) IsZero() bool     { return a == 0 }
func (a Amount) IsNegative() bool { return a < 0 }
func (a Amount) IsPositive() bool { return a > 0 }

func (a Amount) String() string {
	return strconv.FormatFloat(a.Float64(), 'f', -1, 64)
}
