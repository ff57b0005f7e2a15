// Package audio provides cross-platform audio playback on top of oto/v3.
// The players double as the playback clock for word tracking: they expose a
// monotonic position derived from wall time, pause bookkeeping, and the
// playback rate.
package audio
