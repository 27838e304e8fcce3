// Package allocation parses allocation service flags and launches the service.
package allocation

import (
	"context"
	"flag"

	"github.com/kaijietay/btoflow/internal/allocation/app"
	entrypoint "github.com/kaijietay/btoflow/internal/platform/cmd"
)

// Config holds allocation command configuration.
type Config struct {
	Port int `env:"BTOFLOW_PORT" envDefault:"8080"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The allocation HTTP server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the allocation HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAllocation, func(context.Context) error {
		return app.Run(ctx, cfg.Port)
	})
}
