// Package config describes simulated scenes and environments declaratively.
// A Config names an environment, the number of parallel instances, the
// simulation stepping parameters, and the entities spawned into every
// instance. Nothing here steps physics; the host simulator consumes these
// descriptions when instantiating the scene.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// EntityType classifies a scene entity.
type EntityType string

// The entity types a scene may declare.
const (
	EntityTypeGroundPlane  = EntityType("ground_plane")
	EntityTypeRigidObject  = EntityType("rigid_object")
	EntityTypeArticulation = EntityType("articulation")
	EntityTypeLight        = EntityType("light")
)

// trackedTypes are the entity types whose rigid bodies the data layer tracks.
var trackedTypes = map[EntityType]bool{
	EntityTypeRigidObject:  true,
	EntityTypeArticulation: true,
}

// A Frame is an entity's initial pose in its instance's local frame.
// Orientation is a wxyz quaternion; the zero value means identity.
type Frame struct {
	Translation [3]float64 `json:"translation"`
	Orientation [4]float64 `json:"orientation"`
}

// Quaternion returns the frame's orientation, defaulting an all-zero
// quaternion to identity so an omitted field stays valid.
func (f *Frame) Quaternion() [4]float64 {
	if f.Orientation == ([4]float64{}) {
		return [4]float64{1, 0, 0, 0}
	}
	return f.Orientation
}

// An Entity describes one spawned scene member.
type Entity struct {
	Name  string     `json:"name"`
	Type  EntityType `json:"type"`
	Model string     `json:"model,omitempty"`
	Frame *Frame     `json:"frame,omitempty"`
	// JointPositions seeds an articulation's joints by name.
	JointPositions map[string]float64 `json:"joint_positions,omitempty"`
	Attributes     AttributeMap       `json:"attributes,omitempty"`
}

// Validate ensures all parts of the entity are valid.
func (e *Entity) Validate(path string) error {
	if e.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	switch e.Type {
	case EntityTypeGroundPlane, EntityTypeRigidObject, EntityTypeArticulation, EntityTypeLight:
	case "":
		return utils.NewConfigValidationFieldRequiredError(path, "type")
	default:
		return utils.NewConfigValidationError(path, errors.Errorf("unknown entity type %q", e.Type))
	}
	if len(e.JointPositions) != 0 && e.Type != EntityTypeArticulation {
		return utils.NewConfigValidationError(path,
			errors.Errorf("joint_positions only apply to articulations, not %q", e.Type))
	}
	return nil
}

// Tracked tells whether the entity contributes a body to the tracked rigid
// object collection.
func (e *Entity) Tracked() bool {
	return trackedTypes[e.Type]
}

// Sim holds the host simulator stepping parameters.
type Sim struct {
	// Dt is the physics step in seconds.
	Dt float64 `json:"dt"`
	// Decimation is the number of physics steps per environment step.
	Decimation int `json:"decimation"`
	// EpisodeLengthSec bounds an episode in simulated seconds.
	EpisodeLengthSec float64 `json:"episode_length_sec"`
	// GravityMagnitude is m/s^2 along -z; 9.81 when zero.
	GravityMagnitude float64 `json:"gravity_magnitude,omitempty"`
}

// Validate ensures all parts of the sim settings are valid.
func (s *Sim) Validate(path string) error {
	if s.Dt <= 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("dt must be positive, got %f", s.Dt))
	}
	if s.Decimation < 1 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("decimation must be at least 1, got %d", s.Decimation))
	}
	if s.GravityMagnitude < 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("gravity magnitude must be non-negative, got %f", s.GravityMagnitude))
	}
	return nil
}

// Gravity returns the gravity magnitude with the default applied.
func (s *Sim) Gravity() float64 {
	if s.GravityMagnitude == 0 {
		return 9.81
	}
	return s.GravityMagnitude
}

// A Config is a full environment description.
type Config struct {
	// Environment is the registered environment ID this scene belongs to.
	Environment string `json:"environment"`
	// NumInstances is how many parallel copies of the scene to simulate.
	NumInstances int `json:"num_instances"`
	// EnvSpacing is the distance between neighboring instances in meters.
	EnvSpacing float64 `json:"env_spacing"`
	Sim      Sim      `json:"sim"`
	Entities []Entity `json:"entities"`
}

// Validate ensures all parts of the config are valid, aggregating every
// problem found rather than stopping at the first.
func (c *Config) Validate() error {
	var allErrs error
	if c.Environment == "" {
		allErrs = multierr.Append(allErrs, utils.NewConfigValidationFieldRequiredError("", "environment"))
	}
	if c.NumInstances <= 0 {
		allErrs = multierr.Append(allErrs,
			errors.Errorf("num_instances must be positive, got %d", c.NumInstances))
	}
	if err := c.Sim.Validate("sim"); err != nil {
		allErrs = multierr.Append(allErrs, err)
	}
	seen := map[string]bool{}
	for i := range c.Entities {
		e := &c.Entities[i]
		if err := e.Validate(fmt.Sprintf("entities.%d", i)); err != nil {
			allErrs = multierr.Append(allErrs, err)
			continue
		}
		if seen[e.Name] {
			allErrs = multierr.Append(allErrs,
				errors.Errorf("duplicate entity name %q", e.Name))
		}
		seen[e.Name] = true
	}
	return allErrs
}

// TrackedEntities returns, in declaration order, the entities whose bodies
// form the rigid object collection.
func (c *Config) TrackedEntities() []Entity {
	var tracked []Entity
	for _, e := range c.Entities {
		if e.Tracked() {
			tracked = append(tracked, e)
		}
	}
	return tracked
}

// FindEntity returns the named entity, or nil.
func (c *Config) FindEntity(name string) *Entity {
	for i := range c.Entities {
		if c.Entities[i].Name == name {
			return &c.Entities[i]
		}
	}
	return nil
}
