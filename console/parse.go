package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/rebalance"
	"github.com/shopspring/decimal"
)

// InputFormatError reports user input that cannot be accepted.
type InputFormatError struct {
	Input  string
	Reason string
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// ParseNonNegative parses a non negative number, like an amount of cash or a
// price.
func ParseNonNegative(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InputFormatError{Input: s, Reason: "not a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &InputFormatError{Input: s, Reason: "negative number"}
	}
	return d, nil
}

// ParsePositiveInt parses a strictly positive whole number of shares, written
// with decimal digits only.
func ParsePositiveInt(s string) (rebalance.Quantity, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return rebalance.Quantity{}, &InputFormatError{Input: s, Reason: "not an integer"}
	}
	if n <= 0 {
		return rebalance.Quantity{}, &InputFormatError{Input: s, Reason: "not positive"}
	}
	return rebalance.Q(n), nil
}

// ParsePercent parses a percentage within [0,100]. A trailing '%' is accepted.
func ParsePercent(s string) (rebalance.Percent, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, &InputFormatError{Input: s, Reason: "not a number"}
	}
	p := rebalance.Percent(d.InexactFloat64())
	if !p.InRange() {
		return 0, &InputFormatError{Input: s, Reason: "out of [0,100]"}
	}
	return p, nil
}

// ParseYesNo parses a y/n answer.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, &InputFormatError{Input: s, Reason: "expected y or n"}
}
