package rebalance

import (
	"errors"
	"fmt"
)

// ErrZeroPortfolioValue is returned when percentages are requested for a
// portfolio worth nothing.
var ErrZeroPortfolioValue = errors.New("no assets or cash in the portfolio")

// ErrPriceUnavailable is returned by a PriceSource that cannot produce a price.
var ErrPriceUnavailable = errors.New("price unavailable")

// AllocationSumError reports target percentages that do not add up to 100.
type AllocationSumError struct {
	Sum Percent
}

func (e *AllocationSumError) Error() string {
	return fmt.Sprintf("the sum of allocations (%s) must be 100%%", e.Sum)
}

// RangeError reports a target percentage outside of [0,100].
type RangeError struct {
	Label string
	Value Percent
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("allocation for %s (%v) must be between 0 and 100", e.Label, float64(e.Value))
}

// MissingTargetError reports a holding, or the cash, without target percentage.
type MissingTargetError struct {
	Label string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("missing allocation for %s", e.Label)
}

// UnknownTargetError reports a target percentage for a label that is neither
// a holding ticker nor the cash.
type UnknownTargetError struct {
	Label string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("allocation for %s does not match any holding", e.Label)
}
