// Package yahoo provides a price source backed by Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"

	"github.com/etnz/rebalance"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// Source implements rebalance.PriceSource using go-yfinance.
type Source struct {
	log   zerolog.Logger
	quote func(symbol string) (float64, error)
}

// New creates a new Yahoo Finance price source.
func New(log zerolog.Logger) *Source {
	return &Source{
		log:   log.With().Str("source", "yahoo").Logger(),
		quote: latestPrice,
	}
}

// Price returns the current market price of ticker.
func (s *Source) Price(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("%w for %q: %w", rebalance.ErrPriceUnavailable, ticker, err)
	}
	p, err := s.quote(ticker)
	if err != nil {
		s.log.Debug().Err(err).Str("ticker", ticker).Msg("quote failed")
		return decimal.Zero, fmt.Errorf("%w for %q: yahoo: %w", rebalance.ErrPriceUnavailable, ticker, err)
	}
	if p <= 0 {
		return decimal.Zero, fmt.Errorf("%w for %q: yahoo: no price", rebalance.ErrPriceUnavailable, ticker)
	}
	s.log.Debug().Str("ticker", ticker).Float64("price", p).Msg("quote")
	return decimal.NewFromFloat(p), nil
}

// latestPrice returns the regular market price, or the last daily close when
// the market price is not available.
func latestPrice(symbol string) (float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	// Try Quote first (faster)
	if quote, err := t.Quote(); err == nil && quote != nil && quote.RegularMarketPrice > 0 {
		return quote.RegularMarketPrice, nil
	}

	bars, err := t.History(models.HistoryParams{
		Period:   "1d",
		Interval: "1d",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get history: %w", err)
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("empty history for %s", symbol)
	}
	return bars[len(bars)-1].Close, nil
}
