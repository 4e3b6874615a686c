package rebalance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestStaticPrices(t *testing.T) {
	src := StaticPrices{
		"AAA":  decimal.NewFromInt(100),
		"bbb":  decimal.RequireFromString("12.5"),
		"ZERO": decimal.Zero,
	}
	tests := []struct {
		ticker  string
		want    string
		wantErr bool
	}{
		{"AAA", "100", false},
		{"aaa", "100", false},
		{"BBB", "12.5", false},
		{"ZERO", "", true},
		{"CCC", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			got, err := src.Price(context.Background(), tt.ticker)
			if tt.wantErr {
				if !errors.Is(err, ErrPriceUnavailable) {
					t.Errorf("Price(%q) error = %v, want %v", tt.ticker, err, ErrPriceUnavailable)
				}
				return
			}
			if err != nil {
				t.Fatalf("Price(%q) unexpected error: %v", tt.ticker, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Price(%q) = %v, want %v", tt.ticker, got, tt.want)
			}
		})
	}
}

func TestNoPrices(t *testing.T) {
	if _, err := NoPrices.Price(context.Background(), "AAA"); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("NoPrices.Price() error = %v, want %v", err, ErrPriceUnavailable)
	}
}

func TestSources(t *testing.T) {
	first := StaticPrices{"AAA": decimal.NewFromInt(1)}
	second := StaticPrices{"AAA": decimal.NewFromInt(2), "BBB": decimal.NewFromInt(3)}
	src := Sources{NoPrices, first, second}

	tests := []struct {
		ticker  string
		want    int64
		wantErr bool
	}{
		{"AAA", 1, false},
		{"BBB", 3, false},
		{"CCC", 0, true},
	}
	for _, tt := range tests {
		got, err := src.Price(context.Background(), tt.ticker)
		if (err != nil) != tt.wantErr {
			t.Errorf("Sources.Price(%q) error = %v, wantErr %v", tt.ticker, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrPriceUnavailable) {
				t.Errorf("Sources.Price(%q) error = %v, want %v", tt.ticker, err, ErrPriceUnavailable)
			}
			continue
		}
		if !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("Sources.Price(%q) = %v, want %d", tt.ticker, got, tt.want)
		}
	}
}

func TestSources_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	failing := PriceSourceFunc(func(ctx context.Context, ticker string) (decimal.Decimal, error) {
		calls.Add(1)
		return decimal.Zero, ctx.Err()
	})
	_, err := Sources{failing, failing}.Price(ctx, "AAA")
	if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("Price() error = %v, want cancelled and unavailable", err)
	}
	if calls.Load() != 1 {
		t.Errorf("sources called %d times, want 1", calls.Load())
	}
}

func TestFetchPrices(t *testing.T) {
	var calls atomic.Int32
	static := StaticPrices{"AAA": decimal.NewFromInt(100), "BBB": decimal.NewFromInt(20)}
	src := PriceSourceFunc(func(ctx context.Context, ticker string) (decimal.Decimal, error) {
		calls.Add(1)
		return static.Price(ctx, ticker)
	})

	got, err := FetchPrices(context.Background(), src, "AAA", "CCC", "BBB", "AAA")
	if err != nil {
		t.Fatalf("FetchPrices() error = %v", err)
	}
	want := map[string]decimal.Decimal{
		"AAA": decimal.NewFromInt(100),
		"BBB": decimal.NewFromInt(20),
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("FetchPrices() mismatch (-want +got):\n%s", diff)
	}
	if calls.Load() != 3 {
		t.Errorf("source called %d times, want 3 (one per distinct ticker)", calls.Load())
	}
}

func TestFetchPrices_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := PriceSourceFunc(func(ctx context.Context, ticker string) (decimal.Decimal, error) {
		return decimal.Zero, unavailable(ticker, "%v", ctx.Err())
	})
	if _, err := FetchPrices(ctx, src, "AAA"); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchPrices() error = %v, want %v", err, context.Canceled)
	}
}
