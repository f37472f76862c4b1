//go:build !windows

package sampler

import (
	"github.com/twlf/activity-tracker/internal/core/classifier"
	"github.com/twlf/activity-tracker/internal/core/model"
)

// ForegroundSampler is a stub on platforms without a foreground-window probe.
// It always reports no loggable window, so the tracker idles.
type ForegroundSampler struct{}

// NewForegroundSampler creates the stub sampler. The exclusion predicate is
// accepted for interface parity and ignored.
func NewForegroundSampler(_ classifier.ProcessExcluder) *ForegroundSampler {
	return &ForegroundSampler{}
}

// Sample always returns nil.
func (s *ForegroundSampler) Sample() *model.WindowSample {
	return nil
}
