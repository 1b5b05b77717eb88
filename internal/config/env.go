// Package config reads titfortat settings from the environment and maps
// command failures to process exit codes.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every env tag, so a field tagged `env:"ROUNDS"`
// reads TITFORTAT_ROUNDS.
const Prefix = "TITFORTAT_"

// ParseEnv fills target from TITFORTAT_ variables. Unset variables keep
// their envDefault.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: Prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
