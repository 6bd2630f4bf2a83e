// Package physics describes the contract of the external physics-state
// provider that owns the actual simulation. Nothing in this module steps
// physics; consumers read batched state out of a host-owned View.
package physics

import (
	"github.com/golang/geo/r3"
	"gorgonia.org/tensor"
)

// Component widths of the buffers a View exchanges.
const (
	// TransformDim is position xyz plus orientation quaternion.
	TransformDim = 7
	// VelocityDim is linear plus angular velocity.
	VelocityDim = 6
	// AccelerationDim is linear plus angular acceleration.
	AccelerationDim = 6
	// MassDim is the scalar mass.
	MassDim = 1
	// InertiaDim is the row-major 3x3 inertia tensor about the center of mass.
	InertiaDim = 9
)

// View is a read-only window onto the rigid bodies tracked by the host
// simulator. All buffers are float64 tensors whose leading axis is the
// combined body index of length Count. That axis is object-major,
// instance-minor: body (instance i, object j) lives at row j*numInstances+i.
//
// Orientation quaternions in Transforms are in xyzw order, matching the
// provider's wire layout; callers convert to wxyz before exposing them.
//
// A View is only valid while the host simulation that produced it is alive.
// Implementations fail loudly rather than degrade: any shape or availability
// problem is an error.
type View interface {
	// Count returns the number of tracked bodies across all instances.
	Count() int
	// Transforms returns a (Count, TransformDim) tensor of pos xyz + quat xyzw.
	Transforms() (*tensor.Dense, error)
	// Velocities returns a (Count, VelocityDim) tensor of lin + ang velocity
	// of each body's center of mass, in the world frame.
	Velocities() (*tensor.Dense, error)
	// Accelerations returns a (Count, AccelerationDim) tensor of lin + ang
	// acceleration of each body's center of mass, in the world frame.
	Accelerations() (*tensor.Dense, error)
	// Masses returns a (Count, MassDim) tensor of body masses.
	Masses() (*tensor.Dense, error)
	// Inertias returns a (Count, InertiaDim) tensor of inertia tensors.
	Inertias() (*tensor.Dense, error)
	// Gravity returns the world-frame gravity vector.
	Gravity() r3.Vector
}
