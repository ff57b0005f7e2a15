package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// PlayerState represents the current state of a player.
type PlayerState int32

const (
	StateStopped PlayerState = iota
	StatePlaying
	StatePaused
	StateClosed
)

// String returns the string representation of the state.
func (s PlayerState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// PlayerConfig contains configuration for the audio player.
type PlayerConfig struct {
	SampleRate int // 44100 or 48000 Hz only
	Channels   int // 1 = mono, 2 = stereo
	BitDepth   int // 16 bits per sample
	BufferSize int // device buffer size in bytes
}

// DefaultPlayerConfig returns the default player configuration.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		SampleRate: 44100,
		Channels:   1, // mono for speech
		BitDepth:   16,
		BufferSize: 4096,
	}
}

func validateConfig(config PlayerConfig) error {
	if config.SampleRate != 44100 && config.SampleRate != 48000 {
		return fmt.Errorf("sample rate must be 44100 or 48000 Hz, got %d", config.SampleRate)
	}
	if config.Channels != 1 && config.Channels != 2 {
		return fmt.Errorf("channels must be 1 (mono) or 2 (stereo), got %d", config.Channels)
	}
	if config.BitDepth != 16 {
		return fmt.Errorf("bit depth must be 16, got %d", config.BitDepth)
	}
	if config.BufferSize <= 0 {
		return errors.New("buffer size must be positive")
	}
	return nil
}

// Player plays PCM audio through oto and doubles as the playback clock.
// Position is derived from wall time with pause and rate bookkeeping, so it
// keeps advancing smoothly even for silent preview tracks.
type Player struct {
	context *oto.Context
	player  *oto.Player

	// Keep audio data alive during playback; oto reads from it lazily.
	activeData   []byte
	activeReader *bytes.Reader
	duration     time.Duration

	state atomic.Int32

	// Clock bookkeeping: position = base + (now - anchor) * rate while
	// playing, base while paused or stopped.
	base   time.Duration
	anchor time.Time
	rate   float64

	volume float64

	sampleRate int
	channels   int
	bitDepth   int

	mu      sync.RWMutex
	stateMu sync.Mutex // serializes state changes
}

// NewPlayer creates an audio player backed by an oto context.
func NewPlayer(config PlayerConfig) (*Player, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	op := &oto.NewContextOptions{
		SampleRate:   config.SampleRate,
		ChannelCount: config.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(config.BufferSize) * time.Second / time.Duration(config.SampleRate*config.Channels*2),
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	p := &Player{
		context:    ctx,
		rate:       1.0,
		volume:     1.0,
		sampleRate: config.SampleRate,
		channels:   config.Channels,
		bitDepth:   config.BitDepth,
	}
	p.state.Store(int32(StateStopped))
	return p, nil
}

// Play starts playback of PCM audio data from the beginning.
func (p *Player) Play(audio []byte) error {
	if len(audio) == 0 {
		return errors.New("audio data is empty")
	}

	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if PlayerState(p.state.Load()) == StateClosed {
		return errors.New("player is closed")
	}
	if err := p.stopInternal(); err != nil {
		return fmt.Errorf("failed to stop current playback: %w", err)
	}

	// Own the data so the caller cannot mutate it mid-playback.
	data := make([]byte, len(audio))
	copy(data, audio)

	bytesPerSample := p.bitDepth / 8
	samples := len(data) / (p.channels * bytesPerSample)
	duration := time.Duration(samples) * time.Second / time.Duration(p.sampleRate)

	reader := bytes.NewReader(data)
	player := p.context.NewPlayer(reader)
	if player == nil {
		return errors.New("failed to create oto player")
	}
	player.SetVolume(p.getVolume())

	p.mu.Lock()
	p.player = player
	p.activeData = data
	p.activeReader = reader
	p.duration = duration
	p.base = 0
	p.anchor = time.Now()
	p.mu.Unlock()

	player.Play()
	p.state.Store(int32(StatePlaying))
	return nil
}

// Pause pauses the current playback.
func (p *Player) Pause() error {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if current := PlayerState(p.state.Load()); current != StatePlaying {
		return fmt.Errorf("cannot pause: player is %s", current)
	}

	p.mu.Lock()
	if p.player != nil {
		p.player.Pause()
	}
	p.base = p.positionLocked()
	p.mu.Unlock()

	p.state.Store(int32(StatePaused))
	return nil
}

// Resume continues playback from the paused position.
func (p *Player) Resume() error {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if current := PlayerState(p.state.Load()); current != StatePaused {
		return fmt.Errorf("cannot resume: player is %s", current)
	}

	p.mu.Lock()
	if p.player != nil {
		p.player.Play()
	}
	p.anchor = time.Now()
	p.mu.Unlock()

	p.state.Store(int32(StatePlaying))
	return nil
}

// Stop halts playback and releases the active stream.
func (p *Player) Stop() error {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.stopInternal()
}

func (p *Player) stopInternal() error {
	current := PlayerState(p.state.Load())
	if current == StateStopped || current == StateClosed {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		p.player.Pause()
		p.player.Close()
		p.player = nil
	}
	p.activeData = nil
	p.activeReader = nil
	p.duration = 0
	p.base = 0

	p.state.Store(int32(StateStopped))
	return nil
}

// Seek moves playback to the given position. The clock jumps immediately;
// the device stream follows on its next read.
func (p *Player) Seek(position time.Duration) error {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	current := PlayerState(p.state.Load())
	if current != StatePlaying && current != StatePaused {
		return fmt.Errorf("cannot seek: player is %s", current)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if position < 0 {
		position = 0
	}
	if position > p.duration {
		position = p.duration
	}

	if p.player != nil {
		bytesPerSecond := int64(p.sampleRate * p.channels * p.bitDepth / 8)
		offset := int64(position.Seconds() * float64(bytesPerSecond))
		// Align to a whole sample frame.
		frame := int64(p.channels * p.bitDepth / 8)
		offset -= offset % frame
		if _, err := p.player.Seek(offset, io.SeekStart); err != nil {
			return fmt.Errorf("seek failed: %w", err)
		}
	}

	p.base = position
	p.anchor = time.Now()
	return nil
}

// SetRate sets the playback-rate multiplier used by the clock. The current
// position is pinned first so a rate change never jumps the clock.
func (p *Player) SetRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("rate must be positive, got %f", rate)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = p.positionLocked()
	p.anchor = time.Now()
	p.rate = rate
	return nil
}

// Rate returns the current playback-rate multiplier.
func (p *Player) Rate() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rate
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	switch PlayerState(p.state.Load()) {
	case StatePlaying:
		pos := p.base + time.Duration(float64(time.Since(p.anchor))*p.rate)
		if pos > p.duration {
			pos = p.duration
		}
		return pos
	case StatePaused:
		return p.base
	default:
		return 0
	}
}

// Duration returns the length of the loaded audio track.
func (p *Player) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.duration
}

// IsPlaying returns whether audio is currently playing and the track has
// not run out.
func (p *Player) IsPlaying() bool {
	if PlayerState(p.state.Load()) != StatePlaying {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.positionLocked() < p.duration
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (p *Player) SetVolume(volume float64) error {
	if volume < 0.0 || volume > 1.0 {
		return fmt.Errorf("volume must be between 0.0 and 1.0, got %f", volume)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
	if p.player != nil {
		p.player.SetVolume(volume)
	}
	return nil
}

func (p *Player) getVolume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volume
}

// Close releases the audio device.
func (p *Player) Close() error {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if err := p.stopInternal(); err != nil {
		return fmt.Errorf("error stopping playback during close: %w", err)
	}

	p.mu.Lock()
	// oto.Context has no Close in v3; drop the reference and let it be
	// collected.
	p.context = nil
	p.mu.Unlock()

	p.state.Store(int32(StateClosed))
	return nil
}

// State returns the current player state.
func (p *Player) State() PlayerState {
	return PlayerState(p.state.Load())
}

// Silence returns a silent PCM16 track of the given length. The CLI uses it
// as a clock track when no synthesized audio is available.
func Silence(seconds float64, sampleRate, channels int) []byte {
	if seconds <= 0 {
		return nil
	}
	samples := int(seconds * float64(sampleRate))
	return make([]byte, samples*channels*2)
}
