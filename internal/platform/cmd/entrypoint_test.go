package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type entryTestConfig struct {
	Addr string `env:"BTOFLOW_CMDTEST_ADDR" envDefault:"127.0.0.1:8080"`
	Mode string `env:"BTOFLOW_CMDTEST_MODE" envDefault:"serve"`
}

func TestParseConfigLayersEnvUnderFlags(t *testing.T) {
	t.Setenv("BTOFLOW_CMDTEST_ADDR", "env:9000")

	var cfg entryTestConfig
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	fs := flag.NewFlagSet("entry", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "addr")
	if err := ParseArgs(fs, []string{"-addr", "flag:9001"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	if cfg.Addr != "flag:9001" {
		t.Fatalf("addr = %q, want flag value", cfg.Addr)
	}
	if cfg.Mode != "serve" {
		t.Fatalf("mode = %q, want env default", cfg.Mode)
	}
}

func TestParseConfigFromArgs(t *testing.T) {
	t.Setenv("BTOFLOW_CMDTEST_MODE", "maintenance")

	var cfg entryTestConfig
	fs := flag.NewFlagSet("entry", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", "", "addr")
	if err := ParseConfigFromArgs(&cfg, fs, nil); err != nil {
		t.Fatalf("parse config from args: %v", err)
	}
	if cfg.Mode != "maintenance" {
		t.Fatalf("mode = %q, want env value", cfg.Mode)
	}
}

func TestParseArgsNilParser(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected error for nil flag set")
	}
}

func TestRunWithTelemetryValidation(t *testing.T) {
	run := func(context.Context) error { return nil }
	if err := RunWithTelemetry(context.Background(), "  ", run); err == nil {
		t.Fatal("expected error for blank service name")
	}
	if err := RunWithTelemetry(context.Background(), ServiceAllocation, nil); err == nil {
		t.Fatal("expected error for nil run function")
	}
}

func TestRunWithTelemetryPropagatesRunError(t *testing.T) {
	t.Setenv("BTOFLOW_OTEL_ENDPOINT", "")

	want := errors.New("run failed")
	err := RunWithTelemetry(context.Background(), ServiceAllocation, func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want run error", err)
	}
}
