package rebalance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EODHDAPIKeyEnv is the environment variable holding the EODHD API key.
const EODHDAPIKeyEnv = "EODHD_API_KEY"

const eodhdBaseURL = "https://eodhd.com/api"

// quoteCacheTTL is how long a quote is reused from the disk cache.
const quoteCacheTTL = 15 * time.Minute

// EODHD is a PriceSource using the EOD Historical Data real-time API.
// You can get an API key at https://eodhd.com/
type EODHD struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewEODHD returns an EODHD price source. Quotes are cached on disk for a
// few minutes.
func NewEODHD(apiKey string) (*EODHD, error) {
	if apiKey == "" {
		return nil, errors.New("EODHD API key is not set. Use -eodhd-api-key flag or " + EODHDAPIKeyEnv + " environment variable")
	}
	return &EODHD{apiKey: apiKey, baseURL: eodhdBaseURL, client: newCachingClient(quoteCacheTTL)}, nil
}

// eodhdTicker returns the EODHD code for ticker: plain tickers are assumed to
// be traded in the US.
func eodhdTicker(ticker string) string {
	ticker = strings.ToUpper(ticker)
	if !strings.Contains(ticker, ".") {
		ticker += ".US"
	}
	return ticker
}

// Price returns the latest traded price.
func (e *EODHD) Price(ctx context.Context, ticker string) (decimal.Decimal, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {
	//   "code": "AAPL.US",
	//   "timestamp": 1727467200,
	//   "gmtoffset": 0,
	//   "open": 228.46,
	//   "high": 229.52,
	//   "low": 227.3,
	//   "close": 227.79,
	//   "volume": 34025967,
	//   "previousClose": 227.52,
	//   "change": 0.27,
	//   "change_p": 0.1187
	// }
	// unknown tickers are answered with "NA" values.
	addr := fmt.Sprintf("%s/real-time/%s?fmt=json&api_token=%s", e.baseURL, url.PathEscape(eodhdTicker(ticker)), url.QueryEscape(e.apiKey))

	var info struct {
		Code  string          `json:"code"`
		Close decimal.Decimal `json:"close"`
	}
	if err := jwget(ctx, e.client, addr, &info); err != nil {
		return decimal.Zero, unavailable(ticker, "eodhd: %v", err)
	}
	return checkPrice(ticker, info.Close)
}
