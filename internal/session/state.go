package session

// State represents the playback lifecycle of the session.
type State int

const (
	// StateIdle indicates no item is loaded.
	StateIdle State = iota
	// StateLoading indicates an item's track is being prepared.
	StateLoading
	// StateReady indicates a track is loaded and can start.
	StateReady
	// StatePlaying indicates audio is playing and tracking is live.
	StatePlaying
	// StatePaused indicates playback is paused.
	StatePaused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// StateMachine manages playback state transitions.
type StateMachine struct {
	current     State
	transitions map[State][]State
	onEnter     map[State]func()
	onExit      map[State]func()
}

// NewStateMachine creates a state machine with the valid transitions.
// Loading is reachable from everywhere: switching items restarts the
// pipeline regardless of what playback was doing.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateIdle,
		transitions: map[State][]State{
			StateIdle:    {StateLoading},
			StateLoading: {StateReady, StateLoading, StateIdle},
			StateReady:   {StatePlaying, StateLoading, StateIdle},
			StatePlaying: {StatePaused, StateReady, StateLoading, StateIdle},
			StatePaused:  {StatePlaying, StateLoading, StateIdle},
		},
		onEnter: make(map[State]func()),
		onExit:  make(map[State]func()),
	}
}

// Transition attempts to move to the given state, returning whether the
// move was valid.
func (sm *StateMachine) Transition(to State) bool {
	valid := false
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	if exitFn := sm.onExit[sm.current]; exitFn != nil {
		exitFn()
	}
	sm.current = to
	if enterFn := sm.onEnter[to]; enterFn != nil {
		enterFn()
	}
	return true
}

// Current returns the current state.
func (sm *StateMachine) Current() State {
	return sm.current
}

// OnEnter registers a callback for entering a state.
func (sm *StateMachine) OnEnter(state State, fn func()) {
	sm.onEnter[state] = fn
}

// OnExit registers a callback for exiting a state.
func (sm *StateMachine) OnExit(state State, fn func()) {
	sm.onExit[state] = fn
}
