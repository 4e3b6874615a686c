package rebalance

import (
	"fmt"
	"math"
)

// Percent is a percentage, 100 means the whole.
type Percent float64

// Tolerance used to compare percentages and sums of percentages.
const Tolerance = 1e-6

// Equal reports whether p and q differ by at most Tolerance.
func (p Percent) Equal(q Percent) bool {
	return math.Abs(float64(p-q)) <= Tolerance
}

// InRange reports whether p is within [0, 100].
func (p Percent) InRange() bool { return p >= 0 && p <= 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
