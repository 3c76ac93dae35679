package trading

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestPositionSize(t *testing.T) {
	g := NewWithT(t)

	p, err := PositionSize(10000, 1, 50, Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.RiskAmount.StringFixed(2)).To(Equal("100.00"))
	g.Expect(p.Size.StringFixed(2)).To(Equal("2.00"))
	g.Expect(p.Leverage.StringFixed(2)).To(Equal("0.02"))
	g.Expect(p.Headline()).To(Equal("2.00 units"))
	g.Expect(p.Lines()).To(Equal([]string{
		"Risk Amount: $100.00",
		"Leverage Needed: 0.02x",
		"Per Unit Risk: $50.00",
	}))
}

func TestPositionSizeGroupsLargeAmounts(t *testing.T) {
	g := NewWithT(t)

	p, err := PositionSize(2500000, 2, 0.5, Options{Currency: "€"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.Lines()[0]).To(Equal("Risk Amount: €50,000.00"))
	g.Expect(p.Headline()).To(Equal("100000.00 units"))
}

func TestProfitLoss(t *testing.T) {
	g := NewWithT(t)

	win, err := ProfitLoss(100, 110, 5, Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(win.Profit()).To(BeTrue())
	g.Expect(win.Headline()).To(Equal("+$50.00"))
	g.Expect(win.Lines()).To(ConsistOf(
		"Percentage Return: +10.00%",
		"Price Movement: +10.00",
		"Position Size: 5 units",
	))

	loss, err := ProfitLoss(200, 150, 3, Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(loss.Profit()).To(BeFalse())
	g.Expect(loss.Good()).To(BeFalse())
	g.Expect(loss.Headline()).To(Equal("-$150.00"))
	g.Expect(loss.Lines()[0]).To(Equal("Percentage Return: -25.00%"))
}

func TestRiskReward(t *testing.T) {
	g := NewWithT(t)

	rr, err := RiskReward(100, 90, 130, Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rr.Risk.String()).To(Equal("10"))
	g.Expect(rr.Reward.String()).To(Equal("30"))
	g.Expect(rr.RatioText()).To(Equal("1:3.00"))
	g.Expect(rr.GoodRatio).To(BeTrue())
	g.Expect(rr.Lines()).To(Equal([]string{
		"Risk Amount: $10.00 (10.00%)",
		"Reward Amount: $30.00 (30.00%)",
		"Good risk/reward ratio",
	}))

	poor, err := RiskReward(100, 90, 115, Options{GoodRatio: 2})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(poor.RatioText()).To(Equal("1:1.50"))
	g.Expect(poor.Good()).To(BeFalse())
	g.Expect(poor.Verdict()).To(Equal("Consider better ratio (aim for 1:2+)"))

	_, err = RiskReward(100, 100, 120, Options{})
	g.Expect(err).To(MatchError(ErrZeroRisk))
}

func TestMissingFieldsRejected(t *testing.T) {
	g := NewWithT(t)
	nan := math.NaN()

	for _, tool := range []Tool{ToolPosition, ToolPnL, ToolRiskReward} {
		for _, in := range [][3]float64{
			{0, 1, 1},
			{1, 0, 1},
			{1, 1, 0},
			{nan, 1, 1},
			{1, math.Inf(1), 1},
		} {
			res, err := tool.Compute(in[0], in[1], in[2], Options{})
			g.Expect(err).To(MatchError(ErrMissingFields), "%s %v", tool, in)
			g.Expect(res).To(BeNil())
		}
	}
}

func TestParseField(t *testing.T) {
	g := NewWithT(t)

	g.Expect(ParseField(" 1,250.5 ")).To(Equal(1250.5))
	g.Expect(ParseField("-3")).To(Equal(-3.0))
	g.Expect(math.IsNaN(ParseField(""))).To(BeTrue())
	g.Expect(math.IsNaN(ParseField("abc"))).To(BeTrue())
}

func TestForm(t *testing.T) {
	g := NewWithT(t)

	var f Form
	for _, r := range "10000" {
		f.Edit(r)
	}
	f.NextField()
	f.Edit('1')
	f.NextField()
	f.Edit('5')
	f.Edit('0')
	g.Expect(f.Edit('x')).To(BeFalse())

	res, err := f.Compute(Options{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Headline()).To(Equal("2.00 units"))

	f.NextTool()
	g.Expect(f.Tool).To(Equal(ToolPnL))
	g.Expect(f.Focus).To(Equal(0))
	_, err = f.Compute(Options{})
	g.Expect(err).To(MatchError(ErrMissingFields))

	f.Edit('-')
	f.Edit('.')
	g.Expect(f.Edit('.')).To(BeFalse())
	g.Expect(f.Edit('-')).To(BeFalse())
	g.Expect(f.Field(0)).To(Equal("-."))
	f.Backspace()
	g.Expect(f.Field(0)).To(Equal("-"))

	f.PrevField()
	g.Expect(f.Focus).To(Equal(2))
	f.Clear()
	g.Expect(f.Values()).To(Equal([3]string{}))

	f.NextTool()
	f.NextTool()
	g.Expect(f.Tool).To(Equal(ToolPosition))
	g.Expect(f.Field(0)).To(Equal("10000"))
}
