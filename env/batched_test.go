package env_test

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/viam-labs/simkit/config"
	"github.com/viam-labs/simkit/env"
	"github.com/viam-labs/simkit/physics"
	"github.com/viam-labs/simkit/physics/fake"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:  "batched-test-v0",
		NumInstances: 2,
		Sim:          config.Sim{Dt: 0.01, Decimation: 4, EpisodeLengthSec: 1},
	}
}

func newTestEnv(t *testing.T) (*env.Batched, *fake.View) {
	t.Helper()
	logger := golog.NewTestLogger(t)
	view, err := fake.NewView(
		[]fake.Body{{Name: "cube", LinVel: r3.Vector{X: 1}}},
		2, 0, r3.Vector{Z: -9.81}, logger,
	)
	test.That(t, err, test.ShouldBeNil)
	e, err := env.NewBatched("batched-test-v0", testConfig(), view, view.BodyNames(), logger)
	test.That(t, err, test.ShouldBeNil)
	return e, view
}

func TestNewBatchedNeedsObjects(t *testing.T) {
	logger := golog.NewTestLogger(t)
	view, err := fake.NewView(
		[]fake.Body{{Name: "cube"}}, 1, 0, r3.Vector{}, logger,
	)
	test.That(t, err, test.ShouldBeNil)
	_, err = env.NewBatched("x-v0", testConfig(), view, nil, logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBatchedStepAdvancesDecimated(t *testing.T) {
	ctx := context.Background()
	e, view := newTestEnv(t)
	test.That(t, e.StepDt(), test.ShouldAlmostEqual, 0.04)

	test.That(t, e.Step(ctx), test.ShouldBeNil)
	test.That(t, view.Elapsed(), test.ShouldAlmostEqual, 0.04)
	test.That(t, e.Data().SimTimestamp(), test.ShouldAlmostEqual, 0.04)

	pos, err := e.Data().ObjectPosW()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pos.Data().([]float64)[0], test.ShouldAlmostEqual, 0.04)
}

func TestBatchedStepHonorsContext(t *testing.T) {
	e, _ := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.That(t, e.Step(ctx), test.ShouldBeError, context.Canceled)
}

func TestBatchedCloseFailsFast(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEnv(t)
	test.That(t, e.Close(ctx), test.ShouldBeNil)
	test.That(t, e.Step(ctx), test.ShouldBeError, physics.ErrViewReleased)
	test.That(t, e.Reset(ctx), test.ShouldBeError, physics.ErrViewReleased)
	_, err := e.Data().ObjectStateW()
	test.That(t, err, test.ShouldBeError, physics.ErrViewReleased)
}
