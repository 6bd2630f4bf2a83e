// Package franka registers the franka-cabinet environment: the built-in
// scene with a franka arm, an articulated cabinet, and a dynamic cube,
// served by the playback provider.
package franka

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/simkit/config"
	"github.com/viam-labs/simkit/env"
	"github.com/viam-labs/simkit/physics/fake"
	"github.com/viam-labs/simkit/registry"
)

// EnvID is the registered environment ID.
const EnvID = "franka-cabinet-v0"

func init() {
	registry.RegisterEnvironment(EnvID, NewEnvironment)
}

// NewEnvironment builds the franka-cabinet environment from cfg, or from
// config.FrankaCabinetConfig() when cfg is nil.
func NewEnvironment(ctx context.Context, cfg *config.Config, logger golog.Logger) (env.Environment, error) {
	if cfg == nil {
		cfg = config.FrankaCabinetConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tracked := cfg.TrackedEntities()
	if len(tracked) == 0 {
		return nil, errors.Errorf("config for %s declares no tracked entities", EnvID)
	}

	gravity := r3.Vector{Z: -cfg.Sim.Gravity()}
	bodies := make([]fake.Body, 0, len(tracked))
	names := make([]string, 0, len(tracked))
	for _, e := range tracked {
		body := fake.Body{
			Name: e.Name,
			Mass: e.Attributes.Float64("mass", 1),
		}
		if e.Frame != nil {
			tr := e.Frame.Translation
			body.Spawn = r3.Vector{X: tr[0], Y: tr[1], Z: tr[2]}
		}
		// free rigid objects report gravitational acceleration; fixed-base
		// articulations report none
		if e.Type == config.EntityTypeRigidObject && !e.Attributes.Bool("fix_root_link", false) {
			body.LinAcc = gravity
		}
		bodies = append(bodies, body)
		names = append(names, e.Name)
	}

	view, err := fake.NewView(bodies, cfg.NumInstances, cfg.EnvSpacing, gravity, logger)
	if err != nil {
		return nil, err
	}
	return env.NewBatched(EnvID, cfg, view, names, logger)
}
