// Package inject provides injectable mocks of simkit interfaces for testing.
package inject

import (
	"github.com/golang/geo/r3"
	"gorgonia.org/tensor"

	"github.com/viam-labs/simkit/physics"
)

// PhysicsView is an injected physics.View. Any *Func field that is set
// overrides the embedded View's method; unset funcs fall through.
type PhysicsView struct {
	physics.View
	CountFunc         func() int
	TransformsFunc    func() (*tensor.Dense, error)
	VelocitiesFunc    func() (*tensor.Dense, error)
	AccelerationsFunc func() (*tensor.Dense, error)
	MassesFunc        func() (*tensor.Dense, error)
	InertiasFunc      func() (*tensor.Dense, error)
	GravityFunc       func() r3.Vector
}

// Count calls the injected Count or the real version.
func (v *PhysicsView) Count() int {
	if v.CountFunc == nil {
		return v.View.Count()
	}
	return v.CountFunc()
}

// Transforms calls the injected Transforms or the real version.
func (v *PhysicsView) Transforms() (*tensor.Dense, error) {
	if v.TransformsFunc == nil {
		return v.View.Transforms()
	}
	return v.TransformsFunc()
}

// Velocities calls the injected Velocities or the real version.
func (v *PhysicsView) Velocities() (*tensor.Dense, error) {
	if v.VelocitiesFunc == nil {
		return v.View.Velocities()
	}
	return v.VelocitiesFunc()
}

// Accelerations calls the injected Accelerations or the real version.
func (v *PhysicsView) Accelerations() (*tensor.Dense, error) {
	if v.AccelerationsFunc == nil {
		return v.View.Accelerations()
	}
	return v.AccelerationsFunc()
}

// Masses calls the injected Masses or the real version.
func (v *PhysicsView) Masses() (*tensor.Dense, error) {
	if v.MassesFunc == nil {
		return v.View.Masses()
	}
	return v.MassesFunc()
}

// Inertias calls the injected Inertias or the real version.
func (v *PhysicsView) Inertias() (*tensor.Dense, error) {
	if v.InertiasFunc == nil {
		return v.View.Inertias()
	}
	return v.InertiasFunc()
}

// Gravity calls the injected Gravity or the real version.
func (v *PhysicsView) Gravity() r3.Vector {
	if v.GravityFunc == nil {
		return v.View.Gravity()
	}
	return v.GravityFunc()
}
