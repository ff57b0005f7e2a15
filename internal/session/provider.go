package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/lexio-app/lexio/internal/audio"
	"github.com/lexio-app/lexio/internal/timing"
)

// Track bundles everything needed to play one item: audio data, its
// duration in seconds, and the word-timing schedule.
type Track struct {
	Audio    []byte              `json:"audio"`
	Duration float64             `json:"duration"`
	Timings  []timing.WordTiming `json:"timings"`
}

// TrackProvider prepares the track for an item. Implementations must honor
// context cancellation: a provider result for a superseded load is discarded
// either way, but cancelling lets slow fetches stop early.
type TrackProvider interface {
	Track(ctx context.Context, item Item) (Track, error)
}

// EstimatorProvider synthesizes silent preview tracks with estimated word
// timings. It is the degrade path when no vendor synthesis is available:
// the silence gives the clock something to play while the estimator supplies
// the schedule.
type EstimatorProvider struct {
	SampleRate     int     // PCM sample rate of the silent track
	WordsPerMinute float64 // assumed speaking rate; 0 means 150
}

// Track implements TrackProvider.
func (p EstimatorProvider) Track(ctx context.Context, item Item) (Track, error) {
	if err := ctx.Err(); err != nil {
		return Track{}, err
	}

	wpm := p.WordsPerMinute
	if wpm <= 0 {
		wpm = 150
	}
	sampleRate := p.SampleRate
	if sampleRate <= 0 {
		sampleRate = 44100
	}

	words := len(strings.Fields(item.Text))
	if words == 0 {
		return Track{}, nil
	}

	duration := float64(words) * 60.0 / wpm
	return Track{
		Audio:    audio.Silence(duration, sampleRate, 1),
		Duration: duration,
		Timings:  timing.EstimateWordTimings(item.Text, duration),
	}, nil
}

// AlignmentProvider serves vendor synthesis results when they exist and
// falls back otherwise. Results are keyed by item ID.
type AlignmentProvider struct {
	Results  map[string]timing.SpeechResult
	Fallback TrackProvider
}

// Track implements TrackProvider.
func (p AlignmentProvider) Track(ctx context.Context, item Item) (Track, error) {
	result, ok := p.Results[item.ID]
	if !ok || !result.HasAlignment() {
		if p.Fallback != nil {
			return p.Fallback.Track(ctx, item)
		}
		return Track{}, nil
	}

	if err := ctx.Err(); err != nil {
		return Track{}, err
	}

	data, err := base64.StdEncoding.DecodeString(result.AudioBase64)
	if err != nil {
		return Track{}, fmt.Errorf("decoding vendor audio: %w", err)
	}

	timings := timing.ToWordTimings(*result.Alignment)

	// Duration comes from the alignment itself; the audio payload may be
	// in any codec and is handed to the player untouched.
	duration := 0.0
	if len(timings) > 0 {
		duration = timings[len(timings)-1].End
	}

	return Track{Audio: data, Duration: duration, Timings: timings}, nil
}
