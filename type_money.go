package rebalance

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the reporting currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of the given value and currency.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, rounded to
// the currency fraction.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	f := cur.Formatter()
	if dec.Abs().LessThanOrEqual(maxMinorUnits) {
		return f.Format(dec.IntPart())
	}
	return formatLarge(f, dec)
}

// maxMinorUnits is the largest amount, in minor units, go-money can format.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// formatLarge lays out an integer amount of minor units beyond int64 the way
// go-money's Formatter does.
func formatLarge(f *money.Formatter, minor decimal.Decimal) string {
	sa := minor.Abs().String()
	if len(sa) <= f.Fraction {
		sa = strings.Repeat("0", f.Fraction-len(sa)+1) + sa
	}
	if f.Thousand != "" {
		for i := len(sa) - f.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + f.Thousand + sa[i:]
		}
	}
	if f.Fraction > 0 {
		sa = sa[:len(sa)-f.Fraction] + f.Decimal + sa[len(sa)-f.Fraction:]
	}
	sa = strings.Replace(f.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

func (m Money) Currency() string          { return m.cur }
func (m Money) Decimal() decimal.Decimal  { return m.value }
func (m Money) Equal(n Money) bool        { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool              { return m.value.IsZero() }
func (m Money) IsPositive() bool          { return m.value.IsPositive() }
func (m Money) IsNegative() bool          { return m.value.IsNegative() }
func (m Money) Neg() Money                { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money      { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) DivPrice(n Money) Quantity { return Quantity{value: m.value.Div(n.value)} }

// Ratio returns m/n as a percentage. n must not be zero.
func (m Money) Ratio(n Money) Percent {
	return Percent(m.value.Div(n.value).Mul(hundred).InexactFloat64())
}

// Part returns p percent of m.
func (m Money) Part(p Percent) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(float64(p))).Div(hundred), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

var hundred = decimal.NewFromInt(100)

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// AsFloat returns an approximation of the value, for display only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
