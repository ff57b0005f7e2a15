// Package session sequences content items through playback. It owns the
// queue, the transport surface (play, pause, seek, rate, next, previous),
// and the wiring between the audio clock and the word tracker. Switching
// items always tears down the previous item's timing state before the new
// item's pipeline runs; a generation counter discards results from loads
// that were superseded mid-flight.
package session
