package timing

import (
	"strings"
	"unicode"
)

// isBindingPunct reports whether the character closes the word it follows.
// These marks are appended to the current word and immediately terminate it.
func isBindingPunct(c string) bool {
	switch c {
	case ".", "!", "?", ";", ":", ",":
		return true
	}
	return false
}

func isWhitespaceChar(c string) bool {
	if c == "" {
		return true
	}
	for _, r := range c {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// ToWordTimings collapses a character alignment into word timings. Characters
// accumulate into the current word; whitespace terminates it, and binding
// punctuation is appended and then terminates it. Characters without numeric
// timestamps are skipped entirely, which can silently drop text from the
// output. That loss is accepted: partial timings beat no timings.
//
// The transform is pure and never fails; an empty or nil alignment yields an
// empty slice.
func ToWordTimings(alignment CharacterAlignment) []WordTiming {
	n := alignment.Len()
	words := make([]WordTiming, 0, n/4)

	var buf strings.Builder
	var start, end float64
	open := false

	flush := func() {
		if !open {
			return
		}
		text := strings.TrimSpace(buf.String())
		if text != "" {
			words = append(words, WordTiming{Text: text, Start: start, End: end})
		}
		buf.Reset()
		open = false
	}

	for i := 0; i < n; i++ {
		c := alignment.Characters[i]

		if isWhitespaceChar(c) {
			flush()
			continue
		}

		// Untimed characters contribute nothing, not even text.
		if alignment.Starts[i] == nil || alignment.Ends[i] == nil {
			continue
		}

		if !open {
			start = *alignment.Starts[i]
			open = true
		}
		end = *alignment.Ends[i]
		buf.WriteString(c)

		if isBindingPunct(c) {
			flush()
		}
	}

	flush()
	return words
}
