package physics

import "github.com/pkg/errors"

// ErrViewReleased is returned when a Handle is used after Release.
var ErrViewReleased = errors.New("physics view has been released")

// Handle is a non-owning observation handle to a View. Data containers hold a
// Handle instead of the View itself so they never extend the host provider's
// lifetime; once the provider goes away the owner calls Release and any
// further use fails fast with ErrViewReleased instead of touching a dead view.
//
// A Handle is not synchronized. Like the containers built on it, it is meant
// to be driven from the single thread stepping the simulation.
type Handle struct {
	view View
}

// NewHandle wraps view in a non-owning handle.
func NewHandle(view View) *Handle {
	return &Handle{view: view}
}

// View returns the underlying view, or ErrViewReleased after Release.
func (h *Handle) View() (View, error) {
	if h.view == nil {
		return nil, ErrViewReleased
	}
	return h.view, nil
}

// Released tells whether Release has been called.
func (h *Handle) Released() bool {
	return h.view == nil
}

// Release severs the handle from its view. Idempotent.
func (h *Handle) Release() {
	h.view = nil
}
