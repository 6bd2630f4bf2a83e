// Package fake implements a deterministic in-memory physics.View. It is not a
// physics engine; it plays back closed-form rigid motions (constant linear
// velocity, constant yaw rate) so the data layer above it can be exercised
// without the host simulator.
package fake

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/viam-labs/simkit/physics"
)

// Body is the motion template for one tracked object. Every instance gets its
// own copy of the body, offset along x by the view's instance spacing.
type Body struct {
	Name    string
	Mass    float64 // kg; defaults to 1 when zero
	Spawn   r3.Vector
	LinVel  r3.Vector // constant world-frame linear velocity
	YawRate float64   // rad/s spin about world z
	LinAcc  r3.Vector // constant reported linear acceleration
}

// View is a fake physics.View. Step advances its internal clock; all state
// reads are closed-form functions of that clock, so a sequence of reads
// between steps is exactly repeatable.
type View struct {
	bodies       []Body
	numInstances int
	spacing      float64
	gravity      r3.Vector
	elapsed      float64
	logger       golog.Logger
}

// NewView returns a fake view tracking len(bodies) objects in each of
// numInstances parallel instances.
func NewView(bodies []Body, numInstances int, spacing float64, gravity r3.Vector, logger golog.Logger) (*View, error) {
	if len(bodies) == 0 {
		return nil, errors.New("fake view needs at least one body")
	}
	if numInstances <= 0 {
		return nil, errors.Errorf("number of instances must be positive, got %d", numInstances)
	}
	logger.Debugf("fake physics view tracking %d bodies across %d instances", len(bodies), numInstances)
	return &View{
		bodies:       bodies,
		numInstances: numInstances,
		spacing:      spacing,
		gravity:      gravity,
		logger:       logger,
	}, nil
}

// Step advances the playback clock by dt seconds.
func (v *View) Step(dt float64) {
	v.elapsed += dt
}

// Reset rewinds the playback clock to zero, returning every body to its
// spawn state.
func (v *View) Reset() {
	v.elapsed = 0
}

// Elapsed returns the playback clock in seconds.
func (v *View) Elapsed() float64 {
	return v.elapsed
}

// BodyNames returns the object names in tracked order.
func (v *View) BodyNames() []string {
	names := make([]string, 0, len(v.bodies))
	for _, b := range v.bodies {
		names = append(names, b.Name)
	}
	return names
}

// Count returns bodies times instances.
func (v *View) Count() int {
	return len(v.bodies) * v.numInstances
}

// Gravity returns the configured gravity vector.
func (v *View) Gravity() r3.Vector {
	return v.gravity
}

// Transforms returns (Count, 7) poses: pos xyz + quat xyzw, object-major.
func (v *View) Transforms() (*tensor.Dense, error) {
	return v.batch(physics.TransformDim, func(b Body, inst int, row []float64) {
		pos := b.Spawn.Add(b.LinVel.Mul(v.elapsed))
		pos.X += float64(inst) * v.spacing
		yaw := b.YawRate * v.elapsed
		row[0], row[1], row[2] = pos.X, pos.Y, pos.Z
		// quaternion for a rotation of yaw about z, xyzw order
		row[3], row[4] = 0, 0
		row[5] = math.Sin(yaw / 2)
		row[6] = math.Cos(yaw / 2)
	}), nil
}

// Velocities returns (Count, 6) world-frame lin + ang velocities.
func (v *View) Velocities() (*tensor.Dense, error) {
	return v.batch(physics.VelocityDim, func(b Body, inst int, row []float64) {
		row[0], row[1], row[2] = b.LinVel.X, b.LinVel.Y, b.LinVel.Z
		row[3], row[4] = 0, 0
		row[5] = b.YawRate
	}), nil
}

// Accelerations returns (Count, 6) world-frame lin + ang accelerations.
func (v *View) Accelerations() (*tensor.Dense, error) {
	return v.batch(physics.AccelerationDim, func(b Body, inst int, row []float64) {
		row[0], row[1], row[2] = b.LinAcc.X, b.LinAcc.Y, b.LinAcc.Z
		row[3], row[4], row[5] = 0, 0, 0
	}), nil
}

// Masses returns (Count, 1) body masses.
func (v *View) Masses() (*tensor.Dense, error) {
	return v.batch(physics.MassDim, func(b Body, inst int, row []float64) {
		row[0] = b.mass()
	}), nil
}

// Inertias returns (Count, 9) inertia tensors, modeled as m*I for simplicity.
func (v *View) Inertias() (*tensor.Dense, error) {
	return v.batch(physics.InertiaDim, func(b Body, inst int, row []float64) {
		m := b.mass()
		row[0], row[4], row[8] = m, m, m
	}), nil
}

func (b Body) mass() float64 {
	if b.Mass == 0 {
		return 1
	}
	return b.Mass
}

// batch fills a (Count, k) tensor in the provider's object-major row order.
func (v *View) batch(k int, fill func(b Body, inst int, row []float64)) *tensor.Dense {
	backing := make([]float64, v.Count()*k)
	for j, b := range v.bodies {
		for i := 0; i < v.numInstances; i++ {
			row := backing[(j*v.numInstances+i)*k:][:k]
			fill(b, i, row)
		}
	}
	return tensor.New(tensor.WithShape(v.Count(), k), tensor.WithBacking(backing))
}
