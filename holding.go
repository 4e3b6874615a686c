package rebalance

import (
	"fmt"
	"strings"
)

// CashLabel is the label of the cash line in allocations.
const CashLabel = "Cash"

// Holding is a single stock position.
//
// A Holding is a value: rebalancing never changes its quantity, it produces
// a delta instead.
type Holding struct {
	ticker   string
	quantity Quantity
	price    Money
}

// NewHolding returns a validated holding.
//
// The ticker is kept as typed, it must not be empty nor be the CashLabel.
// The quantity must be a positive whole number, and the price not negative.
func NewHolding(ticker string, quantity Quantity, price Money) (Holding, error) {
	ticker = strings.TrimSpace(ticker)
	switch {
	case ticker == "":
		return Holding{}, fmt.Errorf("ticker is empty")
	case strings.EqualFold(ticker, CashLabel):
		return Holding{}, fmt.Errorf("ticker %q is reserved for cash", ticker)
	case !quantity.IsPositive() || !quantity.IsWhole():
		return Holding{}, fmt.Errorf("quantity for %s must be a positive integer, got %v", ticker, quantity)
	case price.IsNegative():
		return Holding{}, fmt.Errorf("price for %s must not be negative, got %v", ticker, price)
	}
	return Holding{ticker: ticker, quantity: quantity, price: price}, nil
}

func (h Holding) Ticker() string     { return h.ticker }
func (h Holding) Quantity() Quantity { return h.quantity }
func (h Holding) Price() Money       { return h.price }

// Value returns quantity × price.
func (h Holding) Value() Money { return h.price.Mul(h.quantity) }

// String returns a one line description of the holding.
func (h Holding) String() string {
	return fmt.Sprintf("%s: %v shares @ %v per share. Total = %v", h.ticker, h.quantity, h.price, h.Value())
}
