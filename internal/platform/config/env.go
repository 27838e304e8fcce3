package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from environment variables using its `env` struct
// tags. target must be a pointer to a struct.
func ParseEnv(target any) error {
	if target == nil {
		return fmt.Errorf("parse env: nil target")
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
