package rebalance

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// PriceSource returns the current price of a ticker.
//
// Any failure (network, unknown ticker, empty answer) is reported with an
// error wrapping ErrPriceUnavailable. A returned price is always positive.
type PriceSource interface {
	Price(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// PriceSourceFunc adapts a function to the PriceSource interface.
type PriceSourceFunc func(ctx context.Context, ticker string) (decimal.Decimal, error)

func (f PriceSourceFunc) Price(ctx context.Context, ticker string) (decimal.Decimal, error) {
	return f(ctx, ticker)
}

// unavailable returns an error wrapping ErrPriceUnavailable.
func unavailable(ticker string, format string, args ...any) error {
	return fmt.Errorf("%w for %q: %s", ErrPriceUnavailable, ticker, fmt.Sprintf(format, args...))
}

// checkPrice rejects zero and negative quotes.
func checkPrice(ticker string, price decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, unavailable(ticker, "invalid quote %v", price)
	}
	return price, nil
}

// NoPrices is a PriceSource that never has a price.
var NoPrices PriceSource = PriceSourceFunc(func(_ context.Context, ticker string) (decimal.Decimal, error) {
	return decimal.Zero, unavailable(ticker, "no price source")
})

// StaticPrices is a PriceSource of known prices, keyed by ticker.
// Lookups are case insensitive.
type StaticPrices map[string]decimal.Decimal

func (s StaticPrices) Price(_ context.Context, ticker string) (decimal.Decimal, error) {
	if p, ok := s[ticker]; ok {
		return checkPrice(ticker, p)
	}
	for k, p := range s {
		if strings.EqualFold(k, ticker) {
			return checkPrice(ticker, p)
		}
	}
	return decimal.Zero, unavailable(ticker, "unknown ticker")
}

// Sources is a PriceSource that asks each source in turn and returns the first price.
type Sources []PriceSource

func (s Sources) Price(ctx context.Context, ticker string) (decimal.Decimal, error) {
	for i, src := range s {
		p, err := src.Price(ctx, ticker)
		if err == nil {
			return p, nil
		}
		if ctx.Err() != nil {
			return decimal.Zero, fmt.Errorf("%w: %w", ErrPriceUnavailable, ctx.Err())
		}
		log.Debug().Err(err).Str("ticker", ticker).Int("source", i).Msg("price source failed, trying next")
	}
	return decimal.Zero, unavailable(ticker, "no source has a price")
}

// maxConcurrentLookups bounds the number of simultaneous price lookups.
const maxConcurrentLookups = 4

// FetchPrices looks up the distinct tickers concurrently.
//
// Only the prices found are returned, the caller decides how to handle the
// missing ones. The lookups stop early only if ctx is cancelled.
func FetchPrices(ctx context.Context, src PriceSource, tickers ...string) (map[string]decimal.Decimal, error) {
	var mu sync.Mutex
	prices := make(map[string]decimal.Decimal)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	seen := make(map[string]bool)
	for _, ticker := range tickers {
		if seen[ticker] {
			continue
		}
		seen[ticker] = true
		g.Go(func() error {
			p, err := src.Price(ctx, ticker)
			if err != nil {
				log.Info().Err(err).Str("ticker", ticker).Msg("no price")
				return ctx.Err()
			}
			mu.Lock()
			prices[ticker] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}
