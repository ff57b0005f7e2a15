package audio

import (
	"testing"
	"time"
)

// TestValidateConfig checks player configuration bounds.
func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  PlayerConfig
		wantErr bool
	}{
		{"default", DefaultPlayerConfig(), false},
		{"48k stereo", PlayerConfig{SampleRate: 48000, Channels: 2, BitDepth: 16, BufferSize: 4096}, false},
		{"bad sample rate", PlayerConfig{SampleRate: 22050, Channels: 1, BitDepth: 16, BufferSize: 4096}, true},
		{"bad channels", PlayerConfig{SampleRate: 44100, Channels: 3, BitDepth: 16, BufferSize: 4096}, true},
		{"bad bit depth", PlayerConfig{SampleRate: 44100, Channels: 1, BitDepth: 8, BufferSize: 4096}, true},
		{"bad buffer", PlayerConfig{SampleRate: 44100, Channels: 1, BitDepth: 16, BufferSize: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSilence verifies silent track sizing.
func TestSilence(t *testing.T) {
	tests := []struct {
		name      string
		seconds   float64
		rate      int
		channels  int
		wantBytes int
	}{
		{"one second mono", 1.0, 44100, 1, 88200},
		{"half second stereo", 0.5, 48000, 2, 96000},
		{"zero", 0, 44100, 1, 0},
		{"negative", -2, 44100, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Silence(tt.seconds, tt.rate, tt.channels)); got != tt.wantBytes {
				t.Errorf("len(Silence()) = %d, want %d", got, tt.wantBytes)
			}
		})
	}
}

// TestMockPlayerLifecycle verifies state transitions and the manual clock.
func TestMockPlayerLifecycle(t *testing.T) {
	mp := NewMockPlayer()

	if err := mp.Pause(); err == nil {
		t.Error("Pause() on stopped player succeeded, want error")
	}

	// One second of PCM16 mono at 44.1kHz.
	if err := mp.Play(make([]byte, 88200)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if got := mp.Duration(); got != time.Second {
		t.Errorf("Duration() = %v, want 1s", got)
	}
	if !mp.IsPlaying() {
		t.Error("IsPlaying() = false after Play()")
	}

	mp.Advance(300 * time.Millisecond)
	if got := mp.Position(); got != 300*time.Millisecond {
		t.Errorf("Position() = %v, want 300ms", got)
	}

	if err := mp.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if got := mp.Position(); got != 300*time.Millisecond {
		t.Errorf("paused Position() = %v, want 300ms", got)
	}

	if err := mp.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if err := mp.Seek(800 * time.Millisecond); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if got := mp.Position(); got != 800*time.Millisecond {
		t.Errorf("Position() after seek = %v, want 800ms", got)
	}

	// The clock clamps at the end of the track.
	mp.Advance(5 * time.Second)
	if got := mp.Position(); got != time.Second {
		t.Errorf("Position() past end = %v, want 1s", got)
	}
	if mp.IsPlaying() {
		t.Error("IsPlaying() = true at end of track")
	}

	if err := mp.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if got := mp.Position(); got != 0 {
		t.Errorf("stopped Position() = %v, want 0", got)
	}

	plays, pauses, resumes, stops := mp.Metrics()
	if plays != 1 || pauses != 1 || resumes != 1 || stops != 1 {
		t.Errorf("Metrics() = %d/%d/%d/%d, want 1/1/1/1", plays, pauses, resumes, stops)
	}
}

// TestMockPlayerRate verifies the rate multiplier scales manual advances.
func TestMockPlayerRate(t *testing.T) {
	mp := NewMockPlayer()
	if err := mp.Play(make([]byte, 882000)); err != nil { // 10s
		t.Fatalf("Play() error = %v", err)
	}
	if err := mp.SetRate(2.0); err != nil {
		t.Fatalf("SetRate() error = %v", err)
	}
	mp.Advance(time.Second)
	if got := mp.Position(); got != 2*time.Second {
		t.Errorf("Position() = %v at 2x rate, want 2s", got)
	}

	if err := mp.SetRate(0); err == nil {
		t.Error("SetRate(0) succeeded, want error")
	}
}

// TestMockPlayerSeekBounds verifies seek clamping.
func TestMockPlayerSeekBounds(t *testing.T) {
	mp := NewMockPlayer()
	if err := mp.Play(make([]byte, 88200)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if err := mp.Seek(-time.Second); err != nil {
		t.Fatalf("Seek(-1s) error = %v", err)
	}
	if got := mp.Position(); got != 0 {
		t.Errorf("Position() after negative seek = %v, want 0", got)
	}

	if err := mp.Seek(time.Minute); err != nil {
		t.Fatalf("Seek(1m) error = %v", err)
	}
	if got := mp.Position(); got != time.Second {
		t.Errorf("Position() after overlong seek = %v, want 1s", got)
	}
}
