package timing

import (
	"sort"
	"sync"
	"time"
)

// Tracker resolution constants.
const (
	// boundaryTolerance widens each word's window when no word contains the
	// clock exactly, absorbing estimation error and timer skew.
	boundaryTolerance = 0.1
	// trailingGapLimit is how long after a word's end it is still considered
	// active, covering inter-word pauses.
	trailingGapLimit = 0.5
	// leadInLookahead is how early the first word lights up before it is
	// actually spoken, covering leading silence.
	leadInLookahead = 1.0

	// minTickInterval throttles periodic re-evaluation; ticks arriving
	// sooner than this since the previous evaluation are dropped.
	minTickInterval = 16 * time.Millisecond
)

// TrackerState is the lifecycle state of a Tracker.
type TrackerState int

const (
	// TrackerIdle means no timings are loaded or playback is stopped.
	TrackerIdle TrackerState = iota
	// TrackerTracking means the tracker is following a live clock.
	TrackerTracking
)

// String returns the string representation of the state.
func (s TrackerState) String() string {
	switch s {
	case TrackerIdle:
		return "idle"
	case TrackerTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Tracker maps a continuously advancing playback clock to the index of the
// currently spoken word. It owns no audio resource; callers feed it clock
// samples from whatever is actually playing audio.
//
// The tracker is scheduler-agnostic: Tick can be driven by a timer, an
// animation-frame callback, or a test harness. Pause and seek paths should
// call Reevaluate so the index is correct immediately rather than on the
// next tick.
type Tracker struct {
	mu       sync.RWMutex
	timings  []WordTiming
	current  int
	state    TrackerState
	lastEval time.Time

	onChangeCallbacks []func(int)
}

// NewTracker creates a tracker with no timings loaded.
func NewTracker() *Tracker {
	return &Tracker{current: -1, state: TrackerIdle}
}

// Start loads a timing schedule and begins tracking. Any previous schedule
// is replaced and the active index reset.
func (t *Tracker) Start(timings []WordTiming) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timings = timings
	t.current = -1
	t.state = TrackerTracking
	t.lastEval = time.Time{}
}

// Stop halts tracking and clears the schedule.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timings = nil
	t.current = -1
	t.state = TrackerIdle
}

// State returns the tracker lifecycle state.
func (t *Tracker) State() TrackerState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// CurrentIndex returns the most recently resolved word index, or -1.
func (t *Tracker) CurrentIndex() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Timings returns the loaded schedule.
func (t *Tracker) Timings() []WordTiming {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.timings
}

// OnWordChange registers a callback invoked whenever the active index
// changes. Callbacks run synchronously on the evaluating goroutine.
func (t *Tracker) OnWordChange(callback func(index int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChangeCallbacks = append(t.onChangeCallbacks, callback)
}

// Tick evaluates the clock sample at the given wall time. Samples arriving
// within minTickInterval of the previous evaluation are dropped.
func (t *Tracker) Tick(now time.Time, currentTime float64) {
	t.mu.Lock()
	if t.state != TrackerTracking {
		t.mu.Unlock()
		return
	}
	if !t.lastEval.IsZero() && now.Sub(t.lastEval) < minTickInterval {
		t.mu.Unlock()
		return
	}
	t.lastEval = now
	t.evaluateLocked(currentTime)
	t.mu.Unlock()
}

// Reevaluate forces an immediate evaluation, bypassing the tick throttle.
// Call it on pause and seek so the displayed index is correct right away.
func (t *Tracker) Reevaluate(currentTime float64) {
	t.mu.Lock()
	if t.state != TrackerTracking {
		t.mu.Unlock()
		return
	}
	t.lastEval = time.Now()
	t.evaluateLocked(currentTime)
	t.mu.Unlock()
}

// evaluateLocked resolves and stores the active index. Change callbacks run
// under the lock and must be cheap index handoffs.
func (t *Tracker) evaluateLocked(currentTime float64) {
	index := resolveActiveIndex(t.timings, currentTime)
	if index == t.current {
		return
	}
	t.current = index
	for _, callback := range t.onChangeCallbacks {
		if callback != nil {
			callback(index)
		}
	}
}

// ResolveActiveIndex resolves the active word for a clock value without
// touching tracker state. Deterministic: the same schedule and clock always
// produce the same index.
func (t *Tracker) ResolveActiveIndex(currentTime float64) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return resolveActiveIndex(t.timings, currentTime)
}

// resolveActiveIndex applies an ordered fallback cascade. Ordering matters:
// the later rules are broader and would mask the precise match if tried
// first.
func resolveActiveIndex(timings []WordTiming, currentTime float64) int {
	if len(timings) == 0 {
		return -1
	}

	// Rule 1: exact containment, binary search on start times.
	if i := searchContaining(timings, currentTime); i >= 0 {
		return i
	}

	// Rule 2: tolerant match. Widen each window by the boundary tolerance
	// and pick the word whose own boundary is closest to the clock.
	best := -1
	bestDist := boundaryTolerance + 1
	for i, w := range timings {
		if currentTime < w.Start-boundaryTolerance || currentTime > w.End+boundaryTolerance {
			continue
		}
		dist := 0.0
		if currentTime < w.Start {
			dist = w.Start - currentTime
		} else if currentTime > w.End {
			dist = currentTime - w.End
		}
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best >= 0 {
		return best
	}

	// Rule 3: most recently started word, accepted only during the short
	// gap right after it ends.
	for i := len(timings) - 1; i >= 0; i-- {
		if timings[i].Start <= currentTime {
			if currentTime-timings[i].End <= trailingGapLimit {
				return i
			}
			break
		}
	}

	// Rule 4: just before the first word, highlight it early.
	if first := timings[0].Start; currentTime < first && first-currentTime <= leadInLookahead {
		return 0
	}

	// Rule 5: nothing is active.
	return -1
}

// searchContaining binary-searches for a word whose [Start, End] interval
// contains the clock value, assuming timings sorted by Start. Returns -1
// when no word contains it exactly.
func searchContaining(timings []WordTiming, currentTime float64) int {
	// First index with Start > currentTime; the candidate precedes it.
	i := sort.Search(len(timings), func(i int) bool {
		return timings[i].Start > currentTime
	})
	if i == 0 {
		return -1
	}
	if w := timings[i-1]; w.Start <= currentTime && currentTime <= w.End {
		return i - 1
	}
	return -1
}
