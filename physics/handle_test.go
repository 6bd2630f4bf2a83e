package physics_test

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/viam-labs/simkit/physics"
	"github.com/viam-labs/simkit/physics/fake"
)

func TestHandleRelease(t *testing.T) {
	logger := golog.NewTestLogger(t)
	view, err := fake.NewView(
		[]fake.Body{{Name: "cube"}},
		2, 0, r3.Vector{Z: -9.81}, logger,
	)
	test.That(t, err, test.ShouldBeNil)

	handle := physics.NewHandle(view)
	test.That(t, handle.Released(), test.ShouldBeFalse)

	got, err := handle.View()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldEqual, view)

	handle.Release()
	test.That(t, handle.Released(), test.ShouldBeTrue)
	_, err = handle.View()
	test.That(t, err, test.ShouldBeError, physics.ErrViewReleased)

	// Release is idempotent
	handle.Release()
	_, err = handle.View()
	test.That(t, err, test.ShouldBeError, physics.ErrViewReleased)
}
