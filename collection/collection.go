// Package collection exposes lazily computed physical state for a collection
// of rigid bodies tracked across parallel simulation instances.
//
// All exposed quantities are float64 tensors shaped
// (instances, objects, components) in the simulation world frame unless the
// accessor says otherwise. Orientation quaternions are wxyz. Positions and
// orientations are of each body's actor frame; velocities and accelerations
// are of its center-of-mass frame. The two frames may differ, and consumers
// must not conflate them.
//
// State is read through a non-owning physics.Handle and cached against the
// simulation timestamp: a read recomputes its quantity only when the cache
// was stamped before the current simulation time, so repeated reads within
// one step cost one provider fetch. Update advances the timestamp.
//
// A Data container is driven from the single thread stepping the simulation;
// it performs no locking.
package collection

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/viam-labs/simkit/physics"
	"github.com/viam-labs/simkit/spatialmath"
)

// StateDim is pos(3) + quat wxyz(4) + lin vel(3) + ang vel(3).
const StateDim = 13

// Data is the derived-state container for one rigid object collection.
type Data struct {
	handle       *physics.Handle
	logger       golog.Logger
	numObjects   int
	numInstances int
	simTimestamp float64

	// world-frame gravity direction and body-frame forward vector, tiled
	// (instances, objects, 3); fixed at construction.
	gravityVecW *tensor.Dense
	forwardVecB *tensor.Dense

	// ObjectNames holds the object names in tracked order.
	ObjectNames []string

	// DefaultObjectState is the spawn state [pos, quat, lin vel, ang vel],
	// shape (instances, objects, 13). Read once at construction.
	DefaultObjectState *tensor.Dense
	// DefaultMass is the body mass read from the provider, shape
	// (instances, objects, 1).
	DefaultMass *tensor.Dense
	// DefaultInertia is the inertia tensor about the center of mass in
	// row-major order, shape (instances, objects, 9).
	DefaultInertia *tensor.Dense

	stateW TimestampedBuffer
	accW   TimestampedBuffer
}

// NewData builds a container over handle tracking numObjects objects per
// instance. The provider's body count must be an exact multiple of
// numObjects; anything else is a configuration mismatch and an error. names
// may be nil, otherwise it must have one name per object.
func NewData(handle *physics.Handle, numObjects int, names []string, logger golog.Logger) (*Data, error) {
	view, err := handle.View()
	if err != nil {
		return nil, err
	}
	if numObjects <= 0 {
		return nil, errors.Errorf("number of objects must be positive, got %d", numObjects)
	}
	count := view.Count()
	if count%numObjects != 0 {
		return nil, errors.Errorf(
			"provider tracks %d bodies, not divisible into objects of %d", count, numObjects)
	}
	numInstances := count / numObjects
	if names != nil && len(names) != numObjects {
		return nil, errors.Errorf("got %d object names for %d objects", len(names), numObjects)
	}

	d := &Data{
		handle:       handle,
		logger:       logger,
		numObjects:   numObjects,
		numInstances: numInstances,
		ObjectNames:  names,
	}
	d.stateW = NewTimestampedBuffer()
	d.accW = NewTimestampedBuffer()
	d.gravityVecW = d.tiledVec(spatialmath.Normalize(view.Gravity()))
	d.forwardVecB = d.tiledVec(r3.Vector{X: 1})

	if err := d.readDefaults(view); err != nil {
		return nil, err
	}
	logger.Debugf("object collection data tracking %d objects across %d instances", numObjects, numInstances)
	return d, nil
}

// NumObjects returns the number of tracked objects per instance.
func (d *Data) NumObjects() int {
	return d.numObjects
}

// NumInstances returns the number of parallel simulation instances.
func (d *Data) NumInstances() int {
	return d.numInstances
}

// SimTimestamp returns the current simulation time in seconds.
func (d *Data) SimTimestamp() float64 {
	return d.simTimestamp
}

// GravityVecW returns the unit gravity direction in the world frame, tiled
// (instances, objects, 3).
func (d *Data) GravityVecW() *tensor.Dense {
	return d.gravityVecW
}

// ForwardVecB returns the body-frame forward direction (1,0,0), tiled
// (instances, objects, 3).
func (d *Data) ForwardVecB() *tensor.Dense {
	return d.forwardVecB
}

// Update advances the simulation timestamp by dt seconds, marking every
// cached quantity stale. dt must be positive; the simulation time never
// decreases.
func (d *Data) Update(dt float64) error {
	if dt <= 0 {
		return errors.Errorf("time step must be positive, got %f", dt)
	}
	d.simTimestamp += dt
	return nil
}

// ObjectStateW returns [pos, quat, lin vel, ang vel] in the world frame,
// shape (instances, objects, 13). Position and orientation are of the actor
// frame; velocities are of the center-of-mass frame.
func (d *Data) ObjectStateW() (*tensor.Dense, error) {
	if !d.stateW.Fresh(d.simTimestamp) {
		view, err := d.handle.View()
		if err != nil {
			return nil, err
		}
		poses, err := view.Transforms()
		if err != nil {
			return nil, err
		}
		pose, err := d.viewToDataOrder(poses, physics.TransformDim)
		if err != nil {
			return nil, err
		}
		// provider quaternions are xyzw; canonical order is wxyz
		raw := pose.Data().([]float64)
		for off := 0; off < len(raw); off += physics.TransformDim {
			spatialmath.XYZWToWXYZ(raw[off+3 : off+7])
		}
		vels, err := view.Velocities()
		if err != nil {
			return nil, err
		}
		vel, err := d.viewToDataOrder(vels, physics.VelocityDim)
		if err != nil {
			return nil, err
		}
		d.stateW.Set(d.concatComponents(pose, vel), d.simTimestamp)
	}
	return d.stateW.Data, nil
}

// ObjectAccW returns [lin acc, ang acc] of the center-of-mass frame in the
// world frame, shape (instances, objects, 6).
func (d *Data) ObjectAccW() (*tensor.Dense, error) {
	if !d.accW.Fresh(d.simTimestamp) {
		view, err := d.handle.View()
		if err != nil {
			return nil, err
		}
		accs, err := view.Accelerations()
		if err != nil {
			return nil, err
		}
		acc, err := d.viewToDataOrder(accs, physics.AccelerationDim)
		if err != nil {
			return nil, err
		}
		d.accW.Set(acc, d.simTimestamp)
	}
	return d.accW.Data, nil
}

// ObjectPosW returns the actor-frame position, shape (instances, objects, 3).
func (d *Data) ObjectPosW() (*tensor.Dense, error) {
	state, err := d.ObjectStateW()
	if err != nil {
		return nil, err
	}
	return d.sliceComponents(state, StateDim, 0, 3), nil
}

// ObjectQuatW returns the actor-frame orientation in wxyz order, shape
// (instances, objects, 4).
func (d *Data) ObjectQuatW() (*tensor.Dense, error) {
	state, err := d.ObjectStateW()
	if err != nil {
		return nil, err
	}
	return d.sliceComponents(state, StateDim, 3, 7), nil
}

// ObjectVelW returns [lin vel, ang vel] of the center-of-mass frame, shape
// (instances, objects, 6).
func (d *Data) ObjectVelW() (*tensor.Dense, error) {
	state, err := d.ObjectStateW()
	if err != nil {
		return nil, err
	}
	return d.sliceComponents(state, StateDim, 7, 13), nil
}

// ObjectLinVelW returns the world-frame linear velocity, shape
// (instances, objects, 3).
func (d *Data) ObjectLinVelW() (*tensor.Dense, error) {
	state, err := d.ObjectStateW()
	if err != nil {
		return nil, err
	}
	return d.sliceComponents(state, StateDim, 7, 10), nil
}

// ObjectAngVelW returns the world-frame angular velocity, shape
// (instances, objects, 3).
func (d *Data) ObjectAngVelW() (*tensor.Dense, error) {
	state, err := d.ObjectStateW()
	if err != nil {
		return nil, err
	}
	return d.sliceComponents(state, StateDim, 10, 13), nil
}

// ObjectLinAccW returns the world-frame linear acceleration, shape
// (instances, objects, 3).
func (d *Data) ObjectLinAccW() (*tensor.Dense, error) {
	acc, err := d.ObjectAccW()
	if err != nil {
		return nil, err
	}
	return d.sliceComponents(acc, physics.AccelerationDim, 0, 3), nil
}

// ObjectAngAccW returns the world-frame angular acceleration, shape
// (instances, objects, 3).
func (d *Data) ObjectAngAccW() (*tensor.Dense, error) {
	acc, err := d.ObjectAccW()
	if err != nil {
		return nil, err
	}
	return d.sliceComponents(acc, physics.AccelerationDim, 3, 6), nil
}

// ObjectLinVelB returns the center-of-mass linear velocity expressed in each
// body's actor frame, shape (instances, objects, 3).
func (d *Data) ObjectLinVelB() (*tensor.Dense, error) {
	vel, err := d.ObjectLinVelW()
	if err != nil {
		return nil, err
	}
	return d.rotateIntoBody(vel)
}

// ObjectAngVelB returns the center-of-mass angular velocity expressed in each
// body's actor frame, shape (instances, objects, 3).
func (d *Data) ObjectAngVelB() (*tensor.Dense, error) {
	vel, err := d.ObjectAngVelW()
	if err != nil {
		return nil, err
	}
	return d.rotateIntoBody(vel)
}

// ProjectedGravityB returns the unit gravity direction projected into each
// body's frame, shape (instances, objects, 3).
func (d *Data) ProjectedGravityB() (*tensor.Dense, error) {
	return d.rotateIntoBody(d.gravityVecW)
}

// HeadingW returns the yaw heading of each body in radians, computed from
// the body-frame forward vector (1,0,0) rotated into the world frame. Shape
// is (instances, objects).
func (d *Data) HeadingW() (*tensor.Dense, error) {
	quats, err := d.ObjectQuatW()
	if err != nil {
		return nil, err
	}
	qraw := quats.Data().([]float64)
	out := make([]float64, d.numInstances*d.numObjects)
	for n := range out {
		q := spatialmath.QuatFromWXYZ([4]float64{qraw[n*4], qraw[n*4+1], qraw[n*4+2], qraw[n*4+3]})
		out[n] = spatialmath.Heading(q)
	}
	return tensor.New(tensor.WithShape(d.numInstances, d.numObjects), tensor.WithBacking(out)), nil
}

// readDefaults captures the immutable spawn-time defaults from the view.
func (d *Data) readDefaults(view physics.View) error {
	state, err := d.ObjectStateW()
	if err != nil {
		return err
	}
	d.DefaultObjectState = state.Clone().(*tensor.Dense)
	// the first real read must still recompute against live state
	d.stateW = NewTimestampedBuffer()

	masses, err := view.Masses()
	if err != nil {
		return err
	}
	if d.DefaultMass, err = d.viewToDataOrder(masses, physics.MassDim); err != nil {
		return err
	}
	inertias, err := view.Inertias()
	if err != nil {
		return err
	}
	if d.DefaultInertia, err = d.viewToDataOrder(inertias, physics.InertiaDim); err != nil {
		return err
	}
	return nil
}

// viewToDataOrder reorders a provider buffer of shape
// (objects*instances, k), object-major, into the caller-facing canonical
// order (instances, objects, k): out[i][j] == in[j*numInstances+i].
// Downstream consumers index by [instance, object, ...], so this reorder is
// a contract, not an optimization.
func (d *Data) viewToDataOrder(src *tensor.Dense, k int) (*tensor.Dense, error) {
	shape := src.Shape()
	if len(shape) != 2 || shape[0] != d.numObjects*d.numInstances || shape[1] != k {
		return nil, errors.Errorf(
			"provider buffer has shape %v, want (%d, %d)", shape, d.numObjects*d.numInstances, k)
	}
	in := src.Data().([]float64)
	out := make([]float64, len(in))
	for j := 0; j < d.numObjects; j++ {
		for i := 0; i < d.numInstances; i++ {
			copy(out[(i*d.numObjects+j)*k:][:k], in[(j*d.numInstances+i)*k:][:k])
		}
	}
	return tensor.New(tensor.WithShape(d.numInstances, d.numObjects, k), tensor.WithBacking(out)), nil
}

// concatComponents joins two (instances, objects, k) tensors along the
// component axis.
func (d *Data) concatComponents(a, b *tensor.Dense) *tensor.Dense {
	ka := a.Shape()[2]
	kb := b.Shape()[2]
	araw := a.Data().([]float64)
	braw := b.Data().([]float64)
	rows := d.numInstances * d.numObjects
	out := make([]float64, rows*(ka+kb))
	for n := 0; n < rows; n++ {
		copy(out[n*(ka+kb):], araw[n*ka:][:ka])
		copy(out[n*(ka+kb)+ka:], braw[n*kb:][:kb])
	}
	return tensor.New(
		tensor.WithShape(d.numInstances, d.numObjects, ka+kb), tensor.WithBacking(out))
}

// sliceComponents copies components [lo, hi) out of a (instances, objects, k)
// tensor into a fresh (instances, objects, hi-lo) tensor.
func (d *Data) sliceComponents(src *tensor.Dense, k, lo, hi int) *tensor.Dense {
	raw := src.Data().([]float64)
	w := hi - lo
	rows := d.numInstances * d.numObjects
	out := make([]float64, rows*w)
	for n := 0; n < rows; n++ {
		copy(out[n*w:][:w], raw[n*k+lo:][:w])
	}
	return tensor.New(tensor.WithShape(d.numInstances, d.numObjects, w), tensor.WithBacking(out))
}

// rotateIntoBody rotates (instances, objects, 3) world-frame vectors into
// each body's actor frame via the inverse of the body orientation.
func (d *Data) rotateIntoBody(vecs *tensor.Dense) (*tensor.Dense, error) {
	quats, err := d.ObjectQuatW()
	if err != nil {
		return nil, err
	}
	qraw := quats.Data().([]float64)
	vraw := vecs.Data().([]float64)
	rows := d.numInstances * d.numObjects
	out := make([]float64, rows*3)
	for n := 0; n < rows; n++ {
		q := spatialmath.QuatFromWXYZ([4]float64{qraw[n*4], qraw[n*4+1], qraw[n*4+2], qraw[n*4+3]})
		v := r3.Vector{X: vraw[n*3], Y: vraw[n*3+1], Z: vraw[n*3+2]}
		rv := spatialmath.QuatRotateInverse(q, v)
		out[n*3], out[n*3+1], out[n*3+2] = rv.X, rv.Y, rv.Z
	}
	return tensor.New(
		tensor.WithShape(d.numInstances, d.numObjects, 3), tensor.WithBacking(out)), nil
}

// tiledVec tiles v into an (instances, objects, 3) constant tensor.
func (d *Data) tiledVec(v r3.Vector) *tensor.Dense {
	rows := d.numInstances * d.numObjects
	out := make([]float64, rows*3)
	for n := 0; n < rows; n++ {
		out[n*3], out[n*3+1], out[n*3+2] = v.X, v.Y, v.Z
	}
	return tensor.New(tensor.WithShape(d.numInstances, d.numObjects, 3), tensor.WithBacking(out))
}
