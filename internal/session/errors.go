package session

import "errors"

// Common errors for the playback session.
var (
	ErrNoItems          = errors.New("queue has no items")
	ErrIndexOutOfRange  = errors.New("item index out of range")
	ErrItemNotFound     = errors.New("item not found in queue")
	ErrNothingToPlay    = errors.New("no item selected to play")
	ErrNotPlaying       = errors.New("playback is not active")
	ErrNotPaused        = errors.New("playback is not paused")
	ErrNoTrack          = errors.New("no track loaded for the current item")
	ErrProviderRequired = errors.New("session requires a track provider")
	ErrPlayerRequired   = errors.New("session requires a player")
)
