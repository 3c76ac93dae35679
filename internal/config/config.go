// Package config loads the optional YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tradecalc/sparkos/calc"
	"tradecalc/sparkos/trading"
)

type Config struct {
	Display struct {
		Scale int `yaml:"scale"`
	} `yaml:"display"`
	Calculator struct {
		FlashMS    int    `yaml:"flash_ms"`
		ErrorMS    int    `yaml:"error_ms"`
		Precision  int    `yaml:"precision"`
		Evaluation string `yaml:"evaluation"` // standard | chain
		TapeSize   int    `yaml:"tape_size"`
	} `yaml:"calculator"`
	Trading struct {
		GoodRatio float64 `yaml:"good_ratio"`
		Currency  string  `yaml:"currency"`
	} `yaml:"trading"`
	Headless struct {
		Hz int `yaml:"hz"`
	} `yaml:"headless"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Display.Scale = 2
	c.Calculator.FlashMS = calc.DefaultFlashTicks
	c.Calculator.ErrorMS = calc.DefaultErrorTicks
	c.Calculator.Precision = calc.DefaultPrecision
	c.Calculator.Evaluation = calc.EvalStandard.String()
	c.Calculator.TapeSize = calc.DefaultTapeSize
	c.Trading.GoodRatio = trading.DefaultGoodRatio
	c.Trading.Currency = "$"
	c.Headless.Hz = 60
	return c
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := Parse(b, &c); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML into c, keeping fields the document does not set, and
// validates the result.
func Parse(b []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

// Validate rejects out-of-range values.
func (c Config) Validate() error {
	var errs []error
	if c.Display.Scale < 1 || c.Display.Scale > 8 {
		errs = append(errs, fmt.Errorf("display.scale %d out of range 1..8", c.Display.Scale))
	}
	if c.Calculator.FlashMS <= 0 {
		errs = append(errs, fmt.Errorf("calculator.flash_ms must be positive"))
	}
	if c.Calculator.ErrorMS <= 0 {
		errs = append(errs, fmt.Errorf("calculator.error_ms must be positive"))
	}
	if c.Calculator.Precision < 1 || c.Calculator.Precision > 15 {
		errs = append(errs, fmt.Errorf("calculator.precision %d out of range 1..15", c.Calculator.Precision))
	}
	if _, err := calc.ParseEvalMode(c.Calculator.Evaluation); err != nil {
		errs = append(errs, fmt.Errorf("calculator.evaluation: %w", err))
	}
	if c.Trading.GoodRatio <= 0 {
		errs = append(errs, fmt.Errorf("trading.good_ratio must be positive"))
	}
	if c.Headless.Hz <= 0 {
		errs = append(errs, fmt.Errorf("headless.hz must be positive"))
	}
	return errors.Join(errs...)
}

// CalcConfig maps the calculator section; one tick is one millisecond.
func (c Config) CalcConfig() calc.Config {
	mode, _ := calc.ParseEvalMode(c.Calculator.Evaluation)
	return calc.Config{
		FlashTicks: uint64(c.Calculator.FlashMS),
		ErrorTicks: uint64(c.Calculator.ErrorMS),
		Precision:  int32(c.Calculator.Precision),
		Mode:       mode,
		TapeSize:   c.Calculator.TapeSize,
	}
}

func (c Config) TradingOptions() trading.Options {
	return trading.Options{Currency: c.Trading.Currency, GoodRatio: c.Trading.GoodRatio}
}
