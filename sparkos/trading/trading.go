// Package trading implements the closed-form trading tools: position size,
// profit and loss, and risk/reward. All functions are pure.
package trading

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"tradecalc/sparkos/calc"
)

var (
	// ErrMissingFields rejects any input that is zero, blank or not a number.
	ErrMissingFields = errors.New("please fill all fields")
	// ErrZeroRisk rejects a risk/reward query whose stop equals its entry.
	ErrZeroRisk = errors.New("stop loss equals entry")
)

// DefaultGoodRatio is the reward:risk ratio at and above which a setup is
// flagged as good.
const DefaultGoodRatio = 2

// Options tune result formatting and the risk/reward verdict.
type Options struct {
	Currency  string
	GoodRatio float64
}

func (o Options) withDefaults() Options {
	if o.Currency == "" {
		o.Currency = "$"
	}
	if o.GoodRatio <= 0 {
		o.GoodRatio = DefaultGoodRatio
	}
	return o
}

// ParseField parses a form field. Blank or unparsable text yields NaN, which
// every tool rejects.
func ParseField(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func validate(fields ...float64) error {
	for _, f := range fields {
		if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrMissingFields
		}
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// money renders d as a grouped, 2-place amount: "$1,234.50", "-$12.00".
func money(currency string, d decimal.Decimal) string {
	s := calc.GroupThousands(d.Abs().StringFixed(2))
	if d.Round(2).IsNegative() {
		return "-" + currency + s
	}
	return currency + s
}

// signed renders d with 2 places and an explicit sign for non-negative values.
func signed(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return d.StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}
