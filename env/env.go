// Package env defines the environment surface consumers step against: a
// registered scene bound to a physics provider, exposing the derived-state
// data layer for observation code.
package env

import (
	"context"

	"github.com/viam-labs/simkit/collection"
)

// An Environment is one instantiated scene configuration. Step granularity
// follows the config's decimation: one Step covers decimation physics steps.
//
// Environments are single-threaded like everything above the provider; the
// caller that steps the environment is the only one reading its data.
type Environment interface {
	// ID returns the registered environment ID this instance was built from.
	ID() string
	// Reset returns the environment to its spawn state.
	Reset(ctx context.Context) error
	// Step advances the environment by one environment step.
	Step(ctx context.Context) error
	// Data exposes the derived physical state of the tracked collection.
	Data() *collection.Data
	// Close releases the physics view; the environment and its data fail
	// fast on any use afterwards.
	Close(ctx context.Context) error
}
