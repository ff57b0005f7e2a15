// Package timing derives and tracks per-word timestamps for spoken audio.
// It normalizes vendor character alignments into word timings, synthesizes
// fallback timings from text when no vendor data exists, and maps a live
// playback clock to the currently spoken word.
package timing
