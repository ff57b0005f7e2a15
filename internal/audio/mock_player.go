package audio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MockPlayer simulates audio playback without touching an audio device. It
// honors the same clock semantics as Player and additionally lets tests move
// the clock by hand, so tracking logic can be driven deterministically.
type MockPlayer struct {
	state atomic.Int32

	data     []byte
	duration time.Duration

	base   time.Duration
	anchor time.Time
	rate   float64

	// manual freezes the wall clock; position only moves via Advance and
	// Seek.
	manual bool

	volume float64

	callbacks MockCallbacks

	mu sync.RWMutex

	playCount   atomic.Int64
	pauseCount  atomic.Int64
	resumeCount atomic.Int64
	stopCount   atomic.Int64
}

// MockCallbacks provides hooks for tests.
type MockCallbacks struct {
	OnPlay   func(audio []byte)
	OnPause  func()
	OnResume func()
	OnStop   func()
}

// NewMockPlayer creates a mock player with a manually driven clock. Use
// Advance to move the position.
func NewMockPlayer() *MockPlayer {
	mp := &MockPlayer{rate: 1.0, volume: 1.0, manual: true}
	mp.state.Store(int32(StateStopped))
	return mp
}

// NewRealtimeMockPlayer creates a mock player whose clock advances with wall
// time, like the real device player.
func NewRealtimeMockPlayer() *MockPlayer {
	mp := NewMockPlayer()
	mp.manual = false
	return mp
}

// SetCallbacks installs test hooks.
func (mp *MockPlayer) SetCallbacks(callbacks MockCallbacks) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.callbacks = callbacks
}

// SetDuration overrides the simulated track length.
func (mp *MockPlayer) SetDuration(duration time.Duration) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.duration = duration
}

// Advance moves the manual clock forward.
func (mp *MockPlayer) Advance(delta time.Duration) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.base += time.Duration(float64(delta) * mp.rate)
	if mp.base > mp.duration {
		mp.base = mp.duration
	}
}

// Play starts simulated playback of the given data.
func (mp *MockPlayer) Play(audio []byte) error {
	mp.mu.Lock()

	if PlayerState(mp.state.Load()) == StateClosed {
		mp.mu.Unlock()
		return errors.New("player is closed")
	}

	mp.data = make([]byte, len(audio))
	copy(mp.data, audio)

	// Same duration math as the device player: PCM16 mono at 44.1kHz.
	samples := len(audio) / 2
	mp.duration = time.Duration(samples) * time.Second / time.Duration(44100)

	mp.base = 0
	mp.anchor = time.Now()
	mp.state.Store(int32(StatePlaying))
	mp.playCount.Add(1)

	onPlay := mp.callbacks.OnPlay
	mp.mu.Unlock()

	if onPlay != nil {
		onPlay(audio)
	}
	return nil
}

// Pause pauses simulated playback.
func (mp *MockPlayer) Pause() error {
	mp.mu.Lock()

	if current := PlayerState(mp.state.Load()); current != StatePlaying {
		mp.mu.Unlock()
		return fmt.Errorf("cannot pause: player is %s", current)
	}

	mp.base = mp.positionLocked()
	mp.state.Store(int32(StatePaused))
	mp.pauseCount.Add(1)

	onPause := mp.callbacks.OnPause
	mp.mu.Unlock()

	if onPause != nil {
		onPause()
	}
	return nil
}

// Resume resumes simulated playback.
func (mp *MockPlayer) Resume() error {
	mp.mu.Lock()

	if current := PlayerState(mp.state.Load()); current != StatePaused {
		mp.mu.Unlock()
		return fmt.Errorf("cannot resume: player is %s", current)
	}

	mp.anchor = time.Now()
	mp.state.Store(int32(StatePlaying))
	mp.resumeCount.Add(1)

	onResume := mp.callbacks.OnResume
	mp.mu.Unlock()

	if onResume != nil {
		onResume()
	}
	return nil
}

// Stop halts simulated playback.
func (mp *MockPlayer) Stop() error {
	mp.mu.Lock()

	current := PlayerState(mp.state.Load())
	if current == StateStopped || current == StateClosed {
		mp.mu.Unlock()
		return nil
	}

	mp.data = nil
	mp.duration = 0
	mp.base = 0
	mp.state.Store(int32(StateStopped))
	mp.stopCount.Add(1)

	onStop := mp.callbacks.OnStop
	mp.mu.Unlock()

	if onStop != nil {
		onStop()
	}
	return nil
}

// Seek moves the simulated position.
func (mp *MockPlayer) Seek(position time.Duration) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	current := PlayerState(mp.state.Load())
	if current != StatePlaying && current != StatePaused {
		return fmt.Errorf("cannot seek: player is %s", current)
	}

	if position < 0 {
		position = 0
	}
	if position > mp.duration {
		position = mp.duration
	}
	mp.base = position
	mp.anchor = time.Now()
	return nil
}

// SetRate sets the clock-rate multiplier.
func (mp *MockPlayer) SetRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("rate must be positive, got %f", rate)
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.base = mp.positionLocked()
	mp.anchor = time.Now()
	mp.rate = rate
	return nil
}

// Rate returns the clock-rate multiplier.
func (mp *MockPlayer) Rate() float64 {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.rate
}

// Position returns the simulated playback position.
func (mp *MockPlayer) Position() time.Duration {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.positionLocked()
}

func (mp *MockPlayer) positionLocked() time.Duration {
	if PlayerState(mp.state.Load()) != StatePlaying {
		if PlayerState(mp.state.Load()) == StatePaused {
			return mp.base
		}
		return 0
	}
	if mp.manual {
		return mp.base
	}
	pos := mp.base + time.Duration(float64(time.Since(mp.anchor))*mp.rate)
	if pos > mp.duration {
		pos = mp.duration
	}
	return pos
}

// Duration returns the simulated track length.
func (mp *MockPlayer) Duration() time.Duration {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.duration
}

// IsPlaying reports whether the simulated track is playing and not yet
// exhausted.
func (mp *MockPlayer) IsPlaying() bool {
	if PlayerState(mp.state.Load()) != StatePlaying {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.positionLocked() < mp.duration
}

// SetVolume records the volume; the mock produces no sound.
func (mp *MockPlayer) SetVolume(volume float64) error {
	if volume < 0.0 || volume > 1.0 {
		return fmt.Errorf("volume must be between 0.0 and 1.0, got %f", volume)
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.volume = volume
	return nil
}

// Close marks the player closed.
func (mp *MockPlayer) Close() error {
	_ = mp.Stop()
	mp.state.Store(int32(StateClosed))
	return nil
}

// State returns the current simulated state.
func (mp *MockPlayer) State() PlayerState {
	return PlayerState(mp.state.Load())
}

// Metrics returns call counts for assertions.
func (mp *MockPlayer) Metrics() (plays, pauses, resumes, stops int64) {
	return mp.playCount.Load(), mp.pauseCount.Load(), mp.resumeCount.Load(), mp.stopCount.Load()
}
