package env

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/viam-labs/simkit/collection"
	"github.com/viam-labs/simkit/config"
	"github.com/viam-labs/simkit/physics"
)

// A PlaybackView is a physics view the environment drives itself, used when
// running against the in-process playback provider instead of a live host
// simulator (which steps on its own).
type PlaybackView interface {
	physics.View
	// Step advances the provider's clock by dt seconds.
	Step(dt float64)
	// Reset rewinds the provider to its spawn state.
	Reset()
}

// Batched is an Environment over a playback provider: one tracked rigid
// object collection simulated across cfg.NumInstances parallel instances.
type Batched struct {
	id     string
	cfg    *config.Config
	view   PlaybackView
	handle *physics.Handle
	data   *collection.Data
	stepDt float64
	logger golog.Logger
}

// NewBatched builds an environment with the given registered ID over view.
// names lists the tracked objects per instance, in provider order.
func NewBatched(
	id string,
	cfg *config.Config,
	view PlaybackView,
	names []string,
	logger golog.Logger,
) (*Batched, error) {
	if len(names) == 0 {
		return nil, errors.New("environment needs at least one tracked object")
	}
	handle := physics.NewHandle(view)
	data, err := collection.NewData(handle, len(names), names, logger)
	if err != nil {
		return nil, err
	}
	return &Batched{
		id:     id,
		cfg:    cfg,
		view:   view,
		handle: handle,
		data:   data,
		stepDt: cfg.Sim.Dt * float64(cfg.Sim.Decimation),
		logger: logger,
	}, nil
}

// ID returns the registered environment ID.
func (b *Batched) ID() string {
	return b.id
}

// StepDt returns the simulated seconds covered by one Step.
func (b *Batched) StepDt() float64 {
	return b.stepDt
}

// Reset rewinds the provider to its spawn state. Simulation time does not
// rewind; the next read simply recomputes against the spawn state.
func (b *Batched) Reset(ctx context.Context) error {
	if b.handle.Released() {
		return physics.ErrViewReleased
	}
	b.view.Reset()
	return nil
}

// Step advances physics by the config's decimation and marks all derived
// state stale.
func (b *Batched) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.handle.Released() {
		return physics.ErrViewReleased
	}
	for i := 0; i < b.cfg.Sim.Decimation; i++ {
		b.view.Step(b.cfg.Sim.Dt)
	}
	return b.data.Update(b.stepDt)
}

// Data exposes the derived state of the tracked collection.
func (b *Batched) Data() *collection.Data {
	return b.data
}

// Close releases the physics view. All further use of the environment and
// its data returns physics.ErrViewReleased.
func (b *Batched) Close(ctx context.Context) error {
	b.handle.Release()
	return nil
}
