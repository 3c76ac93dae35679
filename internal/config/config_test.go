package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/onsi/gomega"

	"tradecalc/sparkos/calc"
)

func TestDefaultIsValid(t *testing.T) {
	g := gomega.NewWithT(t)

	c := Default()
	g.Expect(c.Validate()).To(gomega.Succeed())
	cc := c.CalcConfig()
	g.Expect(cc.FlashTicks).To(gomega.BeEquivalentTo(300))
	g.Expect(cc.ErrorTicks).To(gomega.BeEquivalentTo(1500))
	g.Expect(cc.Precision).To(gomega.BeEquivalentTo(8))
	g.Expect(cc.Mode).To(gomega.Equal(calc.EvalStandard))
	g.Expect(c.TradingOptions().GoodRatio).To(gomega.Equal(2.0))
}

func TestLoadOverridesDefaults(t *testing.T) {
	g := gomega.NewWithT(t)

	path := filepath.Join(t.TempDir(), "tradecalc.yaml")
	doc := "calculator:\n  evaluation: chain\n  error_ms: 900\ntrading:\n  currency: \"€\"\n"
	g.Expect(os.WriteFile(path, []byte(doc), 0o644)).To(gomega.Succeed())

	c, err := Load(path)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(c.CalcConfig().Mode).To(gomega.Equal(calc.EvalChain))
	g.Expect(c.Calculator.ErrorMS).To(gomega.Equal(900))
	g.Expect(c.Calculator.FlashMS).To(gomega.Equal(300))
	g.Expect(c.Trading.Currency).To(gomega.Equal("€"))
	g.Expect(c.Display.Scale).To(gomega.Equal(2))
}

func TestLoadEmptyPath(t *testing.T) {
	g := gomega.NewWithT(t)

	c, err := Load("")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(c).To(gomega.Equal(Default()))
}

func TestLoadMissingFile(t *testing.T) {
	g := gomega.NewWithT(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	g.Expect(err).To(gomega.MatchError(os.ErrNotExist))
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "display:\n  colour: red\n",
		"bad scale":      "display:\n  scale: 0\n",
		"zero flash":     "calculator:\n  flash_ms: 0\n",
		"bad precision":  "calculator:\n  precision: 40\n",
		"bad evaluation": "calculator:\n  evaluation: rpn\n",
		"bad ratio":      "trading:\n  good_ratio: -1\n",
		"not yaml":       "calculator: [1, 2\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			g := gomega.NewWithT(t)
			c := Default()
			g.Expect(Parse([]byte(doc), &c)).NotTo(gomega.Succeed())
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	g := gomega.NewWithT(t)

	c := Default()
	g.Expect(Parse(nil, &c)).To(gomega.Succeed())
	g.Expect(c).To(gomega.Equal(Default()))
}
