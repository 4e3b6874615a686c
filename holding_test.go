package rebalance

import (
	"math"
	"testing"
)

func TestNewHolding(t *testing.T) {
	tests := []struct {
		name     string
		ticker   string
		quantity Quantity
		price    Money
		wantErr  bool
	}{
		{name: "valid", ticker: "AAPL", quantity: Q(10), price: USD(150)},
		{name: "zero price", ticker: "AAPL", quantity: Q(10), price: USD(0)},
		{name: "case preserved", ticker: "brk.b", quantity: Q(1), price: USD(1)},
		{name: "empty ticker", ticker: " ", quantity: Q(10), price: USD(1), wantErr: true},
		{name: "cash ticker", ticker: "cash", quantity: Q(10), price: USD(1), wantErr: true},
		{name: "zero quantity", ticker: "AAPL", quantity: Q(0), price: USD(1), wantErr: true},
		{name: "negative quantity", ticker: "AAPL", quantity: Q(-3), price: USD(1), wantErr: true},
		{name: "fractional quantity", ticker: "AAPL", quantity: Q(1.5), price: USD(1), wantErr: true},
		{name: "negative price", ticker: "AAPL", quantity: Q(1), price: USD(-1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHolding(tt.ticker, tt.quantity, tt.price)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewHolding() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && h.Ticker() != tt.ticker {
				t.Errorf("Ticker() = %q, want %q", h.Ticker(), tt.ticker)
			}
		})
	}
}

func TestHolding_Value(t *testing.T) {
	tests := []struct {
		quantity int
		price    float64
	}{
		{10, 100},
		{3, 33.33},
		{7, 0.1},
		{1000, 123.456},
		{5, 0},
	}
	for _, tt := range tests {
		h := holding(t, "T", tt.quantity, tt.price)
		got := h.Value().AsFloat()
		want := float64(tt.quantity) * tt.price
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%d × %v: Value() = %v, want %v", tt.quantity, tt.price, got, want)
		}
	}
}

func TestHolding_String(t *testing.T) {
	h := holding(t, "AAA", 10, 100)
	want := "AAA: 10 shares @ $100.00 per share. Total = $1,000.00"
	if got := h.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
