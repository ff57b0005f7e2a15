package session

import (
	"fmt"
	"math"
	"sync"
)

// Playback rate presets.
var (
	DefaultRateSteps = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0}
	DefaultRate      = 1.0
	MinRate          = 0.5
	MaxRate          = 2.0
)

// RateController manages the playback-rate multiplier with discrete steps.
// Arbitrary requested rates snap to the nearest preset so the UI and the
// audio clock always agree on one of a few well-known values.
type RateController struct {
	mu    sync.RWMutex
	rate  float64
	steps []float64
	index int
}

// NewRateController creates a rate controller with the default steps.
func NewRateController() *RateController {
	return NewRateControllerWithSteps(DefaultRateSteps)
}

// NewRateControllerWithSteps creates a rate controller with custom steps.
func NewRateControllerWithSteps(steps []float64) *RateController {
	if len(steps) == 0 {
		steps = DefaultRateSteps
	}

	index := 0
	for i, step := range steps {
		if math.Abs(step-DefaultRate) < 0.001 {
			index = i
			break
		}
	}

	return &RateController{
		rate:  steps[index],
		steps: steps,
		index: index,
	}
}

// Rate returns the current rate.
func (rc *RateController) Rate() float64 {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.rate
}

// SetRate snaps the requested rate to the nearest step and returns the
// value actually applied.
func (rc *RateController) SetRate(rate float64) (float64, error) {
	if rate < MinRate || rate > MaxRate {
		return 0, fmt.Errorf("rate %.2f out of range [%.2f, %.2f]", rate, MinRate, MaxRate)
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	nearest := 0
	minDiff := math.MaxFloat64
	for i, step := range rc.steps {
		if diff := math.Abs(step - rate); diff < minDiff {
			minDiff = diff
			nearest = i
		}
	}

	rc.index = nearest
	rc.rate = rc.steps[nearest]
	return rc.rate, nil
}

// NextStep moves to the next faster preset and returns it. At the top step
// the rate is unchanged.
func (rc *RateController) NextStep() float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.index < len(rc.steps)-1 {
		rc.index++
		rc.rate = rc.steps[rc.index]
	}
	return rc.rate
}

// PrevStep moves to the next slower preset and returns it. At the bottom
// step the rate is unchanged.
func (rc *RateController) PrevStep() float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.index > 0 {
		rc.index--
		rc.rate = rc.steps[rc.index]
	}
	return rc.rate
}
