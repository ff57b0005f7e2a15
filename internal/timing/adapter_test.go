package timing

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

// alignmentFromText builds a fully timed alignment where each character
// occupies a fixed step of the track, matching vendor character output.
func alignmentFromText(text string, step float64) CharacterAlignment {
	runes := []rune(text)
	a := CharacterAlignment{
		Characters: make([]string, len(runes)),
		Starts:     make([]*float64, len(runes)),
		Ends:       make([]*float64, len(runes)),
	}
	for i, r := range runes {
		start := float64(i) * step
		end := float64(i+1) * step
		a.Characters[i] = string(r)
		a.Starts[i] = &start
		a.Ends[i] = &end
	}
	return a
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestToWordTimingsBasic checks word boundaries and timestamps for the
// canonical two-word case.
func TestToWordTimingsBasic(t *testing.T) {
	words := ToWordTimings(alignmentFromText("hi there.", 0.1))

	if len(words) != 2 {
		t.Fatalf("ToWordTimings() returned %d words, want 2", len(words))
	}
	if words[0].Text != "hi" {
		t.Errorf("words[0].Text = %q, want %q", words[0].Text, "hi")
	}
	if !almostEqual(words[0].Start, 0.0) || !almostEqual(words[0].End, 0.2) {
		t.Errorf("words[0] spans [%v, %v], want [0.0, 0.2]", words[0].Start, words[0].End)
	}
	if words[1].Text != "there." {
		t.Errorf("words[1].Text = %q, want %q", words[1].Text, "there.")
	}
	if !almostEqual(words[1].Start, 0.3) {
		t.Errorf("words[1].Start = %v, want 0.3", words[1].Start)
	}
}

// TestToWordTimingsPunctuation verifies that binding punctuation closes the
// word it follows instead of starting a new one.
func TestToWordTimingsPunctuation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"comma binds left", "a,b", []string{"a,", "b"}},
		{"sentence end", "done. next", []string{"done.", "next"}},
		{"question mark", "why?ok", []string{"why?", "ok"}},
		{"colon and semicolon", "a:b;c", []string{"a:", "b;", "c"}},
		{"trailing word no punctuation", "plain text", []string{"plain", "text"}},
		{"multiple spaces collapse", "a   b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := ToWordTimings(alignmentFromText(tt.text, 0.05))
			got := make([]string, len(words))
			for i, w := range words {
				got[i] = w.Text
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("words = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestToWordTimingsMissingTiming verifies untimed characters are dropped
// silently rather than failing the conversion.
func TestToWordTimingsMissingTiming(t *testing.T) {
	a := alignmentFromText("cat dog", 0.1)

	// Strip timing from 'o' (index 5); the word should survive as "dg".
	a.Starts[5] = nil
	a.Ends[5] = nil

	words := ToWordTimings(a)
	if len(words) != 2 {
		t.Fatalf("ToWordTimings() returned %d words, want 2", len(words))
	}
	if words[1].Text != "dg" {
		t.Errorf("words[1].Text = %q, want %q (untimed character dropped)", words[1].Text, "dg")
	}
}

// TestToWordTimingsEmpty verifies empty and degenerate inputs yield an empty
// slice, never a panic.
func TestToWordTimingsEmpty(t *testing.T) {
	tests := []struct {
		name      string
		alignment CharacterAlignment
	}{
		{"zero value", CharacterAlignment{}},
		{"whitespace only", alignmentFromText("   ", 0.1)},
		{"ragged arrays", CharacterAlignment{Characters: []string{"a", "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := ToWordTimings(tt.alignment)
			if len(words) != 0 {
				t.Errorf("ToWordTimings() returned %d words, want 0", len(words))
			}
		})
	}
}

// TestToWordTimingsIdempotent verifies re-running the conversion yields an
// identical result.
func TestToWordTimingsIdempotent(t *testing.T) {
	a := alignmentFromText("The quick brown fox, jumps.", 0.08)

	first := ToWordTimings(a)
	second := ToWordTimings(a)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated conversion differs:\nfirst  = %v\nsecond = %v", first, second)
	}
}

// TestToWordTimingsReconstruction verifies output words reproduce the input
// words in order and never exceed the source in total length.
func TestToWordTimingsReconstruction(t *testing.T) {
	text := "Reading aloud, one word at a time. Why not?"
	words := ToWordTimings(alignmentFromText(text, 0.04))

	got := make([]string, len(words))
	total := 0
	for i, w := range words {
		got[i] = w.Text
		total += len(w.Text)
	}

	if want := strings.Fields(text); !reflect.DeepEqual(got, want) {
		t.Errorf("reconstructed words = %v, want %v", got, want)
	}
	if total > len(text) {
		t.Errorf("total word length %d exceeds source length %d", total, len(text))
	}

	for i := 1; i < len(words); i++ {
		if words[i].Start < words[i-1].Start {
			t.Errorf("starts not non-decreasing at %d: %v < %v", i, words[i].Start, words[i-1].Start)
		}
	}
}
