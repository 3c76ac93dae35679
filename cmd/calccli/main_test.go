package main

import (
	"bytes"
	"strings"
	"testing"

	"tradecalc/internal/config"
)

func runLines(t *testing.T, cfg config.Config, lines ...string) []string {
	t.Helper()
	var out bytes.Buffer
	if err := run(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestRunEvaluatesKeyLines(t *testing.T) {
	got := runLines(t, config.Default(), "2+", "3*4", "=")
	want := []string{
		"2 +",
		"2 + 3 * 4",
		"2 + 3 * 4 = 14",
		"14",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRunChainMode(t *testing.T) {
	got := runLines(t, config.Default(), "mode chain", "2+3*4=")
	if got[0] != "mode: chain" || got[1] != "2 + 3 * 4 = 20" {
		t.Fatalf("got %q", got)
	}
}

func TestRunDivideByZero(t *testing.T) {
	got := runLines(t, config.Default(), "10/0=", "5")
	if !strings.HasPrefix(got[0], "error: ") || !strings.Contains(got[0], "division by zero") {
		t.Fatalf("error line=%q", got[0])
	}
	if got[1] != "Error" {
		t.Fatalf("view=%q, want Error", got[1])
	}
	// The next key drops the error and starts over.
	if got[2] != "5" {
		t.Fatalf("view=%q, want 5", got[2])
	}
}

func TestErrorClearsAfterDelay(t *testing.T) {
	var out bytes.Buffer
	var clock uint64
	cfg := config.Default()
	s := newSession(&out, cfg, func() uint64 { return clock })

	s.line("10/0=")
	if !s.ctrl.View().Error {
		t.Fatal("expected error")
	}

	clock = uint64(cfg.Calculator.ErrorMS) - 1
	s.line("")
	if !s.ctrl.View().Error {
		t.Fatal("error cleared early")
	}

	clock = uint64(cfg.Calculator.ErrorMS)
	s.line("")
	if v := s.ctrl.View(); v.Error || v.Display != "0" {
		t.Fatalf("view=%+v, want reset", v)
	}
}

func TestRunTradingCommands(t *testing.T) {
	got := runLines(t, config.Default(), "pos 10000 1 50", "rr 100 90 130", "pl 100 0 5", "rr 1 2")
	want := []string{
		"2.00 units",
		"  Risk Amount: $100.00",
		"  Leverage Needed: 0.02x",
		"  Per Unit Risk: $50.00",
		"1:3.00",
		"  Risk Amount: $10.00 (10.00%)",
		"  Reward Amount: $30.00 (30.00%)",
		"  Good risk/reward ratio",
		"Please fill all fields",
		"usage: rr <Entry Price> <Stop Loss> <Take Profit>",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestRunQuitStopsReading(t *testing.T) {
	got := runLines(t, config.Default(), "7", "quit", "8")
	if len(got) != 1 || got[0] != "7" {
		t.Fatalf("got %q", got)
	}
}

func TestRunMemoryIndicator(t *testing.T) {
	got := runLines(t, config.Default(), "9m", "c")
	if got[0] != "M 9" || got[1] != "M 0" {
		t.Fatalf("got %q", got)
	}
}
