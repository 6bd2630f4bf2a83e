package franka

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/viam-labs/simkit/config"
	"github.com/viam-labs/simkit/physics"
	"github.com/viam-labs/simkit/registry"
)

func TestRegistration(t *testing.T) {
	test.That(t, registry.EnvironmentLookup(EnvID), test.ShouldNotBeNil)
}

func TestNewEnvironment(t *testing.T) {
	logger := golog.NewTestLogger(t)
	ctx := context.Background()

	e, err := NewEnvironment(ctx, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, e.ID(), test.ShouldEqual, EnvID)

	data := e.Data()
	test.That(t, data.NumInstances(), test.ShouldEqual, 1)
	test.That(t, data.NumObjects(), test.ShouldEqual, 3)
	test.That(t, data.ObjectNames, test.ShouldResemble, []string{"robot", "cabinet", "cube"})

	// cabinet spawns at its configured height
	pos, err := data.ObjectPosW()
	test.That(t, err, test.ShouldBeNil)
	raw := pos.Data().([]float64)
	test.That(t, raw[1*3+2], test.ShouldAlmostEqual, 0.4)
	// cube spawns above the scene
	test.That(t, raw[2*3+2], test.ShouldAlmostEqual, 1.2)

	// the free cube reports gravitational acceleration; the arm does not
	linAcc, err := data.ObjectLinAccW()
	test.That(t, err, test.ShouldBeNil)
	la := linAcc.Data().([]float64)
	test.That(t, la[0*3+2], test.ShouldAlmostEqual, 0)
	test.That(t, la[2*3+2], test.ShouldAlmostEqual, -9.81)

	test.That(t, e.Close(ctx), test.ShouldBeNil)
	// a fresh cache can still be served; the next recompute fails fast
	test.That(t, data.Update(0.1), test.ShouldBeNil)
	_, err = data.ObjectStateW()
	test.That(t, err, test.ShouldBeError, physics.ErrViewReleased)
}

func TestNewEnvironmentRejectsBadConfig(t *testing.T) {
	logger := golog.NewTestLogger(t)
	ctx := context.Background()

	cfg := config.FrankaCabinetConfig()
	cfg.NumInstances = 0
	_, err := NewEnvironment(ctx, cfg, logger)
	test.That(t, err, test.ShouldNotBeNil)

	cfg = config.FrankaCabinetConfig()
	cfg.Entities = cfg.Entities[:1] // ground plane only, nothing tracked
	_, err = NewEnvironment(ctx, cfg, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no tracked entities")
}

func TestEnvironmentStepLoop(t *testing.T) {
	logger := golog.NewTestLogger(t)
	ctx := context.Background()

	cfg := config.FrankaCabinetConfig()
	cfg.NumInstances = 4
	e, err := NewEnvironment(ctx, cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	defer func() { test.That(t, e.Close(ctx), test.ShouldBeNil) }()

	data := e.Data()
	test.That(t, data.NumInstances(), test.ShouldEqual, 4)

	for i := 0; i < 10; i++ {
		test.That(t, e.Step(ctx), test.ShouldBeNil)
	}
	// 10 env steps of decimation 2 at 120 Hz
	test.That(t, data.SimTimestamp(), test.ShouldAlmostEqual, 10*2.0/120.0)

	// reset rewinds the provider but never simulation time
	before := data.SimTimestamp()
	test.That(t, e.Reset(ctx), test.ShouldBeNil)
	test.That(t, data.SimTimestamp(), test.ShouldEqual, before)
}
