package session

import "testing"

// TestStateString tests the String() method for State.
func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateIdle, "idle"},
		{StateLoading, "loading"},
		{StateReady, "ready"},
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{State(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("State.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestStateMachineTransitions tests valid and invalid transitions.
func TestStateMachineTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []State
		want []bool
	}{
		{
			name: "full playback cycle",
			path: []State{StateLoading, StateReady, StatePlaying, StatePaused, StatePlaying, StateReady},
			want: []bool{true, true, true, true, true, true},
		},
		{
			name: "cannot play from idle",
			path: []State{StatePlaying},
			want: []bool{false},
		},
		{
			name: "switch item while playing",
			path: []State{StateLoading, StateReady, StatePlaying, StateLoading},
			want: []bool{true, true, true, true},
		},
		{
			name: "loading restarts while loading",
			path: []State{StateLoading, StateLoading},
			want: []bool{true, true},
		},
		{
			name: "paused cannot become ready",
			path: []State{StateLoading, StateReady, StatePlaying, StatePaused, StateReady},
			want: []bool{true, true, true, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewStateMachine()
			for i, to := range tt.path {
				if got := sm.Transition(to); got != tt.want[i] {
					t.Errorf("step %d: Transition(%v) = %v, want %v", i, to, got, tt.want[i])
				}
			}
		})
	}
}

// TestStateMachineCallbacks verifies enter/exit hooks fire on transition.
func TestStateMachineCallbacks(t *testing.T) {
	sm := NewStateMachine()

	var events []string
	sm.OnExit(StateIdle, func() { events = append(events, "exit idle") })
	sm.OnEnter(StateLoading, func() { events = append(events, "enter loading") })

	if !sm.Transition(StateLoading) {
		t.Fatal("Transition(loading) failed")
	}
	if len(events) != 2 || events[0] != "exit idle" || events[1] != "enter loading" {
		t.Errorf("events = %v, want [exit idle, enter loading]", events)
	}

	// Invalid transition fires nothing.
	events = nil
	if sm.Transition(StatePaused) {
		t.Fatal("Transition(paused) from loading succeeded, want failure")
	}
	if len(events) != 0 {
		t.Errorf("events after invalid transition = %v, want none", events)
	}
}
