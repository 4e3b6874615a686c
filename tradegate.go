package rebalance

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const tradegateBaseURL = "https://www.tradegate.de"

var isinPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// IsISIN reports whether s looks like an ISIN.
func IsISIN(s string) bool {
	return isinPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// Tradegate is a PriceSource using the latest trade on Tradegate.
//
// Only tickers that are ISINs can be looked up. Prices are quoted in EUR.
type Tradegate struct {
	baseURL string
	client  *http.Client
}

// NewTradegate returns a Tradegate price source.
func NewTradegate() *Tradegate {
	return &Tradegate{baseURL: tradegateBaseURL, client: &http.Client{Timeout: 30 * time.Second}}
}

// Price returns the last traded price, or the bid if there was no trade yet.
func (t *Tradegate) Price(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if !IsISIN(ticker) {
		return decimal.Zero, unavailable(ticker, "tradegate: not an ISIN")
	}
	addr := t.baseURL + "/refresh.php?isin=" + url.QueryEscape(strings.ToUpper(ticker))

	var jobj any
	if err := jwget(ctx, t.client, addr, &jobj); err != nil {
		return decimal.Zero, unavailable(ticker, "tradegate: %v", err)
	}

	// last is the last transaction, moves slower than the bid, but the bid can be 0.
	for _, path := range []string{"$.last", "$.bid"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		val, ok := tradegateValue(jval)
		if !ok || !val.IsPositive() {
			// tradegate shows an empty last as "./."
			log.Debug().Str("ticker", ticker).Str("path", path).Interface("value", jval).Msg("tradegate: empty value")
			continue
		}
		return val, nil
	}
	return decimal.Zero, unavailable(ticker, "tradegate: neither last nor bid")
}

// tradegateValue reads a number that this API returns either as a float or
// as a string, possibly in the german format ("1.234,5").
func tradegateValue(jval any) (decimal.Decimal, bool) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		v = strings.ReplaceAll(v, " ", "")
		if strings.Contains(v, ",") {
			v = strings.ReplaceAll(v, ".", "")
			v = strings.ReplaceAll(v, ",", ".")
		}
		d, err := decimal.NewFromString(v)
		return d, err == nil
	}
	return decimal.Zero, false
}
