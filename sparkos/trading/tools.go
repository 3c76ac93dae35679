package trading

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Result is the output of one tool.
type Result interface {
	// Headline is the highlighted value.
	Headline() string
	// Lines are the labelled detail rows.
	Lines() []string
	// Good reports whether the headline is shown in the positive colour.
	Good() bool
}

// Position is the output of PositionSize.
type Position struct {
	RiskAmount  decimal.Decimal
	Size        decimal.Decimal
	Leverage    decimal.Decimal
	PerUnitRisk decimal.Decimal

	opts Options
}

// PositionSize sizes a position so that hitting the stop loses riskPercent
// of the account. stopLoss is the per-unit distance to the stop.
func PositionSize(account, riskPercent, stopLoss float64, opts Options) (Position, error) {
	if err := validate(account, riskPercent, stopLoss); err != nil {
		return Position{}, err
	}
	acct := decimal.NewFromFloat(account)
	stop := decimal.NewFromFloat(stopLoss)

	risk := acct.Mul(decimal.NewFromFloat(riskPercent)).Div(hundred)
	size := risk.Div(stop)
	return Position{
		RiskAmount:  risk,
		Size:        size,
		Leverage:    size.Mul(hundred).Div(acct),
		PerUnitRisk: stop,
		opts:        opts.withDefaults(),
	}, nil
}

func (p Position) Headline() string { return p.Size.StringFixed(2) + " units" }

func (p Position) Lines() []string {
	return []string{
		"Risk Amount: " + money(p.opts.Currency, p.RiskAmount),
		"Leverage Needed: " + p.Leverage.StringFixed(2) + "x",
		"Per Unit Risk: " + money(p.opts.Currency, p.PerUnitRisk),
	}
}

func (p Position) Good() bool { return true }

// PnL is the output of ProfitLoss.
type PnL struct {
	PriceDiff decimal.Decimal
	Amount    decimal.Decimal
	ReturnPct decimal.Decimal
	Size      decimal.Decimal

	opts Options
}

// ProfitLoss computes the outcome of closing size units bought at entry
// and sold at exit.
func ProfitLoss(entry, exit, size float64, opts Options) (PnL, error) {
	if err := validate(entry, exit, size); err != nil {
		return PnL{}, err
	}
	in := decimal.NewFromFloat(entry)
	diff := decimal.NewFromFloat(exit).Sub(in)
	units := decimal.NewFromFloat(size)
	return PnL{
		PriceDiff: diff,
		Amount:    diff.Mul(units),
		ReturnPct: diff.Div(in).Mul(hundred),
		Size:      units,
		opts:      opts.withDefaults(),
	}, nil
}

// Profit reports whether the trade did not lose money.
func (p PnL) Profit() bool { return !p.Amount.IsNegative() }

func (p PnL) Headline() string {
	if p.Profit() {
		return "+" + money(p.opts.Currency, p.Amount)
	}
	return money(p.opts.Currency, p.Amount)
}

func (p PnL) Lines() []string {
	return []string{
		"Percentage Return: " + signed(p.ReturnPct) + "%",
		"Price Movement: " + signed(p.PriceDiff),
		"Position Size: " + p.Size.String() + " units",
	}
}

func (p PnL) Good() bool { return p.Profit() }

// RR is the output of RiskReward.
type RR struct {
	Risk      decimal.Decimal
	Reward    decimal.Decimal
	Ratio     decimal.Decimal
	RiskPct   decimal.Decimal
	RewardPct decimal.Decimal
	GoodRatio bool

	opts Options
}

// RiskReward compares the distance to the stop with the distance to the target.
func RiskReward(entry, stopLoss, takeProfit float64, opts Options) (RR, error) {
	if err := validate(entry, stopLoss, takeProfit); err != nil {
		return RR{}, err
	}
	opts = opts.withDefaults()
	in := decimal.NewFromFloat(entry)
	risk := in.Sub(decimal.NewFromFloat(stopLoss)).Abs()
	if risk.IsZero() {
		return RR{}, ErrZeroRisk
	}
	reward := decimal.NewFromFloat(takeProfit).Sub(in).Abs()
	ratio := reward.Div(risk)
	return RR{
		Risk:      risk,
		Reward:    reward,
		Ratio:     ratio,
		RiskPct:   risk.Div(in).Mul(hundred),
		RewardPct: reward.Div(in).Mul(hundred),
		GoodRatio: ratio.GreaterThanOrEqual(decimal.NewFromFloat(opts.GoodRatio)),
		opts:      opts,
	}, nil
}

// RatioText is the ratio as shown to the user, e.g. "1:3.00".
func (r RR) RatioText() string { return "1:" + r.Ratio.StringFixed(2) }

func (r RR) Headline() string { return r.RatioText() }

func (r RR) Verdict() string {
	if r.GoodRatio {
		return "Good risk/reward ratio"
	}
	return fmt.Sprintf("Consider better ratio (aim for 1:%s+)", decimal.NewFromFloat(r.opts.GoodRatio).String())
}

func (r RR) Lines() []string {
	return []string{
		fmt.Sprintf("Risk Amount: %s (%s%%)", money(r.opts.Currency, r.Risk), r.RiskPct.StringFixed(2)),
		fmt.Sprintf("Reward Amount: %s (%s%%)", money(r.opts.Currency, r.Reward), r.RewardPct.StringFixed(2)),
		r.Verdict(),
	}
}

func (r RR) Good() bool { return r.GoodRatio }
