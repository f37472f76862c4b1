// Package sampler probes the OS for the currently focused window. Probe
// failures are swallowed: the tracker only ever sees a sample or nil.
package sampler

import "github.com/twlf/activity-tracker/internal/core/model"

// Sampler returns the current foreground window, or nil when there is no
// loggable foreground window this tick. Implementations apply the exclusion
// predicate before returning.
type Sampler interface {
	Sample() *model.WindowSample
}

// Func adapts a plain function to the Sampler interface.
type Func func() *model.WindowSample

// Sample calls f.
func (f Func) Sample() *model.WindowSample {
	return f()
}
