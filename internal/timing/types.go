package timing

import "strings"

// WordTiming is the canonical timing record for a single spoken token.
// Start and End are offsets into the audio track in seconds.
type WordTiming struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// IsWhitespace reports whether the entry is a whitespace run emitted by the
// estimator. Whitespace entries keep token indices aligned with the source
// text but never represent spoken audio.
func (w WordTiming) IsWhitespace() bool {
	return strings.TrimSpace(w.Text) == ""
}

// Duration returns the span of the timing in seconds.
func (w WordTiming) Duration() float64 {
	return w.End - w.Start
}

// CharacterAlignment holds per-character timestamps as returned by vendors
// that align audio at character rather than word granularity. All three
// slices are index-aligned; entries may be missing timing data, in which
// case the corresponding start/end is nil.
type CharacterAlignment struct {
	Characters []string   `json:"characters"`
	Starts     []*float64 `json:"character_start_times_seconds"`
	Ends       []*float64 `json:"character_end_times_seconds"`
}

// Len returns the number of characters carried by the alignment, bounded by
// the shortest of the three slices so ragged vendor payloads cannot cause
// out-of-range reads.
func (a CharacterAlignment) Len() int {
	n := len(a.Characters)
	if len(a.Starts) < n {
		n = len(a.Starts)
	}
	if len(a.Ends) < n {
		n = len(a.Ends)
	}
	return n
}

// SpeechResult is the vendor synthesis response envelope: base64 audio plus
// an optional character alignment.
type SpeechResult struct {
	AudioBase64 string              `json:"audio_base64"`
	Alignment   *CharacterAlignment `json:"alignment,omitempty"`
}

// HasAlignment reports whether the result carries usable character timing.
func (r SpeechResult) HasAlignment() bool {
	return r.Alignment != nil && r.Alignment.Len() > 0
}
