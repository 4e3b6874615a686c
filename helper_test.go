package rebalance

import "testing"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// must panics on error, for test fixtures only.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// holding is a helper for test to create a valid holding.
func holding(t *testing.T, ticker string, quantity int, price float64) Holding {
	t.Helper()
	h, err := NewHolding(ticker, Q(quantity), USD(price))
	if err != nil {
		t.Fatalf("NewHolding(%q, %d, %v) error = %v", ticker, quantity, price, err)
	}
	return h
}
