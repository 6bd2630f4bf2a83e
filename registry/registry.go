// Package registry operates the global registry of environments, binding an
// environment ID string to the constructor that builds it from a config.
package registry

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/viam-labs/simkit/config"
	"github.com/viam-labs/simkit/env"
)

// A CreateEnvironment creates an environment from a given config.
type CreateEnvironment func(ctx context.Context, cfg *config.Config, logger golog.Logger) (env.Environment, error)

var environmentRegistry = map[string]CreateEnvironment{}

// RegisterEnvironment registers an environment ID to a creator. It panics on
// a duplicate or nil registration since both are programming errors caught
// at init time.
func RegisterEnvironment(id string, creator CreateEnvironment) {
	if id == "" {
		panic(errors.New("trying to register an environment with an empty id"))
	}
	if creator == nil {
		panic(errors.Errorf("trying to register a nil creator for environment %s", id))
	}
	if _, old := environmentRegistry[id]; old {
		panic(errors.Errorf("trying to register two environments with same id %s", id))
	}
	environmentRegistry[id] = creator
}

// EnvironmentLookup looks up an environment creator by ID. nil is returned
// if there is no creator registered.
func EnvironmentLookup(id string) CreateEnvironment {
	if creator, ok := environmentRegistry[id]; ok {
		return creator
	}
	return nil
}

// RegisteredEnvironments returns a copy of the registered environments.
func RegisteredEnvironments() map[string]CreateEnvironment {
	copied := make(map[string]CreateEnvironment, len(environmentRegistry))
	for id, creator := range environmentRegistry {
		copied[id] = creator
	}
	return copied
}
