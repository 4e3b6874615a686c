package rebalance

import (
	"errors"
	"maps"
	"slices"
)

// Target is the desired allocation: for each label (a holding ticker or the
// CashLabel) the percentage of the total portfolio value.
type Target map[string]Percent

// Labels returns the target labels, sorted.
func (t Target) Labels() []string {
	return slices.Sorted(maps.Keys(t))
}

// Sum returns the sum of all percentages.
func (t Target) Sum() Percent {
	var sum Percent
	for _, label := range t.Labels() {
		sum += t[label]
	}
	return sum
}

// Validate checks that every percentage is within [0,100] and that they add up
// to 100 within Tolerance.
//
// Range failures are reported as joined *RangeError, otherwise a bad sum is
// reported as an *AllocationSumError.
func (t Target) Validate() error {
	var errs []error
	for _, label := range t.Labels() {
		if p := t[label]; !p.InRange() {
			errs = append(errs, &RangeError{Label: label, Value: p})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if sum := t.Sum(); !sum.Equal(100) {
		return &AllocationSumError{Sum: sum}
	}
	return nil
}

// ValidateFor checks that t has exactly one entry per distinct ticker of s
// plus one for the cash, then validates the percentages.
func (t Target) ValidateFor(s *Snapshot) error {
	var errs []error
	labels := make(map[string]bool)
	for label := range s.Labels() {
		labels[label] = true
	}
	labels[CashLabel] = true

	for _, label := range t.Labels() {
		if !labels[label] {
			errs = append(errs, &UnknownTargetError{Label: label})
		}
	}
	for label := range s.Labels() {
		if _, ok := t[label]; !ok {
			errs = append(errs, &MissingTargetError{Label: label})
		}
	}
	if _, ok := t[CashLabel]; !ok {
		errs = append(errs, &MissingTargetError{Label: CashLabel})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return t.Validate()
}
