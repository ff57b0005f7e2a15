package timing

import (
	"unicode"
	"unicode/utf8"
)

// Estimation constants. The schedule reserves a little leading silence,
// spends most of the track on speech, and leaves the remainder as implicit
// trailing silence via the fit rescale.
const (
	leadInFraction = 0.04 // fraction of the track before the first word
	speechFraction = 0.92 // fraction of the track available for speech

	longWordChars  = 8 // words longer than this speak slower
	shortWordChars = 4 // words shorter than this speak faster
	longWordScale  = 1.2
	shortWordScale = 0.8

	sentencePause  = 0.5  // after . ! ?
	clausePause    = 0.3  // after , ; :
	interWordPause = 0.1  // after anything else
	whitespaceSpan = 0.05 // width of a whitespace token

	fitMargin = 0.98 // rescale target when the schedule overruns the track

	fallbackWordsPerMinute = 150 // used when the audio duration is unknown
)

// SplitTokens splits text into alternating word and whitespace-run tokens.
// Concatenating the tokens in order reproduces the input exactly.
func SplitTokens(text string) []string {
	if text == "" {
		return nil
	}

	tokens := make([]string, 0, len(text)/5)
	start := 0
	first, _ := utf8.DecodeRuneInString(text)
	inSpace := unicode.IsSpace(first)

	for i, r := range text {
		if unicode.IsSpace(r) == inSpace {
			continue
		}
		tokens = append(tokens, text[start:i])
		start = i
		inSpace = !inSpace
	}
	return append(tokens, text[start:])
}

// EstimateWordTimings synthesizes a plausible word-timing schedule from text
// alone, scaled to fit the known audio duration. It is a fallback for when no
// vendor alignment exists and must be replaced by real timings whenever they
// become available.
//
// Whitespace runs are emitted as their own entries so token indices line up
// with the source text; they occupy a tiny fixed span and never count as
// spoken words. Empty text yields an empty slice.
func EstimateWordTimings(text string, audioDuration float64) []WordTiming {
	tokens := SplitTokens(text)

	wordCount := 0
	for _, tok := range tokens {
		if !isWhitespaceToken(tok) {
			wordCount++
		}
	}
	if wordCount == 0 {
		return []WordTiming{}
	}

	if audioDuration <= 0 {
		audioDuration = float64(wordCount) * 60.0 / fallbackWordsPerMinute
	}

	nominal := audioDuration * speechFraction / float64(wordCount)
	cursor := audioDuration * leadInFraction

	timings := make([]WordTiming, 0, len(tokens))
	for _, tok := range tokens {
		if isWhitespaceToken(tok) {
			timings = append(timings, WordTiming{Text: tok, Start: cursor, End: cursor + whitespaceSpan})
			cursor += whitespaceSpan
			continue
		}

		dur := nominal
		switch n := len([]rune(tok)); {
		case n > longWordChars:
			dur *= longWordScale
		case n < shortWordChars:
			dur *= shortWordScale
		}

		timings = append(timings, WordTiming{Text: tok, Start: cursor, End: cursor + dur})
		cursor += dur + pauseAfter(tok)
	}

	// Rescale if the provisional schedule overruns the real track.
	if last := timings[len(timings)-1].End; last > audioDuration {
		scale := audioDuration * fitMargin / last
		for i := range timings {
			timings[i].Start *= scale
			timings[i].End *= scale
		}
	}

	return timings
}

func isWhitespaceToken(tok string) bool {
	for _, r := range tok {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// pauseAfter returns the gap inserted after a spoken word, keyed on its
// trailing punctuation.
func pauseAfter(word string) float64 {
	runes := []rune(word)
	switch runes[len(runes)-1] {
	case '.', '!', '?':
		return sentencePause
	case ',', ';', ':':
		return clausePause
	}
	return interWordPause
}
