package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lexio-app/lexio/internal/cache"
	"github.com/lexio-app/lexio/internal/timing"
)

// Player is the audio collaborator the session drives. The session owns no
// audio resource itself; it issues transport commands and reads the clock.
type Player interface {
	Play(audio []byte) error
	Pause() error
	Resume() error
	Stop() error
	Seek(position time.Duration) error
	SetRate(rate float64) error
	Position() time.Duration
	Duration() time.Duration
	IsPlaying() bool
}

// Config holds the session's collaborators and policy.
type Config struct {
	Provider TrackProvider
	Player   Player
	Cache    *cache.MemoryCache // optional timing/track cache
	Loop     bool               // wrap to the first item at the end of the queue
	AutoPlay bool               // start playback as soon as a track is ready
}

// Session maintains the ordered content queue, the current item, and the
// live word index. All transport commands go through it.
type Session struct {
	mu sync.Mutex

	items   []Item
	current int // -1 when the queue is empty

	machine *StateMachine
	tracker *timing.Tracker
	track   Track

	player   Player
	provider TrackProvider
	cache    *cache.MemoryCache
	rates    *RateController

	loop     bool
	autoPlay bool

	// generation guards against stale async results: every item switch,
	// removal of the playing item, and clear bumps it, and a load result
	// is applied only if its generation is still current.
	generation uint64
	loadCancel context.CancelFunc
	loadWg     sync.WaitGroup

	lastErr error

	onItemChange  []func(index int)
	onStateChange []func(State)
}

// New creates a session. The provider and player are required.
func New(cfg Config) (*Session, error) {
	if cfg.Provider == nil {
		return nil, ErrProviderRequired
	}
	if cfg.Player == nil {
		return nil, ErrPlayerRequired
	}

	return &Session{
		current:  -1,
		machine:  NewStateMachine(),
		tracker:  timing.NewTracker(),
		player:   cfg.Player,
		provider: cfg.Provider,
		cache:    cfg.Cache,
		rates:    NewRateController(),
		loop:     cfg.Loop,
		autoPlay: cfg.AutoPlay,
	}, nil
}

// SetQueue replaces the queue contents. Playback stops; the first item is
// selected but not started.
func (s *Session) SetQueue(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetPlaybackLocked()
	s.items = append([]Item(nil), items...)
	if len(s.items) > 0 {
		s.current = 0
	} else {
		s.current = -1
	}
}

// Append adds an item to the end of the queue.
func (s *Session) Append(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	if s.current < 0 {
		s.current = 0
	}
}

// Items returns a copy of the queue.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// CurrentIndex returns the selected item index, or -1.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentItem returns the selected item.
func (s *Session) CurrentItem() (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < 0 || s.current >= len(s.items) {
		return Item{}, false
	}
	return s.items[s.current], true
}

// State returns the playback state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Current()
}

// Err returns the last load error, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// CurrentWordIndex returns the live word index, or -1.
func (s *Session) CurrentWordIndex() int {
	return s.tracker.CurrentIndex()
}

// WordTimings returns the active item's timing schedule.
func (s *Session) WordTimings() []timing.WordTiming {
	return s.tracker.Timings()
}

// OnWordChange registers a callback for word index changes. Callbacks must
// not call back into the session.
func (s *Session) OnWordChange(fn func(index int)) {
	s.tracker.OnWordChange(fn)
}

// OnItemChange registers a callback invoked when the active item switches.
func (s *Session) OnItemChange(fn func(index int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onItemChange = append(s.onItemChange, fn)
}

// OnStateChange registers a callback invoked on playback state changes.
func (s *Session) OnStateChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChange = append(s.onStateChange, fn)
}

// PlayItem switches to the item at the given index and starts its timing
// pipeline.
func (s *Session) PlayItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return ErrIndexOutOfRange
	}
	s.switchLocked(index)
	return nil
}

// Play starts or resumes playback.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.machine.Current() {
	case StatePaused:
		if err := s.player.Resume(); err != nil {
			return err
		}
		s.transitionLocked(StatePlaying)
		s.tracker.Reevaluate(s.player.Position().Seconds())
		return nil
	case StateReady:
		return s.startLocked()
	case StateIdle:
		if s.current < 0 || s.current >= len(s.items) {
			return ErrNothingToPlay
		}
		s.switchLocked(s.current)
		return nil
	default:
		return nil // already playing or loading
	}
}

// Pause pauses playback and pins the word index immediately.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Current() != StatePlaying {
		return ErrNotPlaying
	}
	if err := s.player.Pause(); err != nil {
		return err
	}
	s.transitionLocked(StatePaused)
	s.tracker.Reevaluate(s.player.Position().Seconds())
	return nil
}

// Seek moves playback to the given offset in seconds. The word index is
// re-resolved immediately rather than waiting for the next tick.
func (s *Session) Seek(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.machine.Current()
	if state != StatePlaying && state != StatePaused {
		return ErrNotPlaying
	}
	if err := s.player.Seek(time.Duration(seconds * float64(time.Second))); err != nil {
		return err
	}
	s.tracker.Reevaluate(s.player.Position().Seconds())
	return nil
}

// SetRate snaps the playback rate to the nearest preset and applies it to
// the player. Returns the rate actually applied.
func (s *Session) SetRate(multiplier float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.rates.SetRate(multiplier)
	if err != nil {
		return 0, err
	}
	if err := s.player.SetRate(applied); err != nil {
		return 0, err
	}
	return applied, nil
}

// Rate returns the current playback rate.
func (s *Session) Rate() float64 {
	return s.rates.Rate()
}

// FasterRate steps the rate up one preset.
func (s *Session) FasterRate() float64 {
	rate := s.rates.NextStep()
	_ = s.player.SetRate(rate)
	return rate
}

// SlowerRate steps the rate down one preset.
func (s *Session) SlowerRate() float64 {
	rate := s.rates.PrevStep()
	_ = s.player.SetRate(rate)
	return rate
}

// Next advances to the next item. At the last item it is a no-op unless
// loop is enabled, in which case it wraps to the first item.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return
	}
	switch {
	case s.current < len(s.items)-1:
		s.switchLocked(s.current + 1)
	case s.loop:
		s.switchLocked(0)
	}
}

// Previous moves to the previous item. At the first item it is a no-op.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 || s.current <= 0 {
		return
	}
	s.switchLocked(s.current - 1)
}

// SetLoop toggles queue looping.
func (s *Session) SetLoop(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = loop
}

// Loop reports whether queue looping is enabled.
func (s *Session) Loop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop
}

// Reorder moves the item at from to position to. The currently selected
// item keeps its identity: the cursor follows it wherever it lands.
func (s *Session) Reorder(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from < 0 || from >= len(s.items) || to < 0 || to >= len(s.items) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	item := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)

	rest := append([]Item(nil), s.items[to:]...)
	s.items = append(s.items[:to], append([]Item{item}, rest...)...)

	switch {
	case s.current == from:
		s.current = to
	case from < s.current && to >= s.current:
		s.current--
	case from > s.current && to <= s.current:
		s.current++
	}
	return nil
}

// Remove deletes the item with the given id. Removing the active item stops
// playback; the cursor stays in place, now pointing at the next item (or
// the new last item).
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, item := range s.items {
		if item.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrItemNotFound
	}

	if index == s.current {
		s.resetPlaybackLocked()
	}

	s.items = append(s.items[:index], s.items[index+1:]...)

	switch {
	case len(s.items) == 0:
		s.current = -1
	case index < s.current:
		s.current--
	case s.current >= len(s.items):
		s.current = len(s.items) - 1
	}
	return nil
}

// Clear empties the queue and stops playback.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetPlaybackLocked()
	s.items = nil
	s.current = -1
}

// Tick samples the audio clock and updates the word index. Any scheduler
// may drive it: a timer, a frame callback, or a test harness. At the end of
// a track it advances to the next item.
func (s *Session) Tick(now time.Time) {
	s.mu.Lock()
	if s.machine.Current() != StatePlaying {
		s.mu.Unlock()
		return
	}
	position := s.player.Position().Seconds()
	finished := !s.player.IsPlaying() && s.track.Duration > 0 && position >= s.track.Duration-0.05

	// The sample is applied under the session lock so an item switch cannot
	// slip between reading the clock and updating the word index.
	s.tracker.Tick(now, position)
	s.mu.Unlock()

	if finished {
		s.advanceAfterEnd()
	}
}

// Position returns the playback clock in seconds.
func (s *Session) Position() float64 {
	return s.player.Position().Seconds()
}

// TrackDuration returns the active track length in seconds.
func (s *Session) TrackDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track.Duration
}

// WaitForLoad blocks until all in-flight track loads have settled. Intended
// for tests and shutdown.
func (s *Session) WaitForLoad() {
	s.loadWg.Wait()
}

// Close stops playback and abandons any in-flight load.
func (s *Session) Close() {
	s.Clear()
	s.loadWg.Wait()
}

// switchLocked tears down the current item's playback state and starts the
// new item's timing pipeline. Teardown is synchronous: by the time the load
// goroutine starts, no stale word index can surface.
func (s *Session) switchLocked(index int) {
	s.resetPlaybackLocked()

	s.current = index
	s.generation++
	gen := s.generation
	item := s.items[index]

	ctx, cancel := context.WithCancel(context.Background())
	s.loadCancel = cancel
	s.transitionLocked(StateLoading)

	for _, fn := range s.onItemChange {
		fn(index)
	}

	s.loadWg.Add(1)
	go s.load(ctx, gen, item)
}

// resetPlaybackLocked stops audio, clears the word tracker and track, and
// cancels any in-flight load.
func (s *Session) resetPlaybackLocked() {
	if s.loadCancel != nil {
		s.loadCancel()
		s.loadCancel = nil
	}
	s.generation++
	_ = s.player.Stop()
	s.tracker.Stop()
	s.track = Track{}
	s.lastErr = nil
	if s.machine.Current() != StateIdle {
		s.transitionLocked(StateIdle)
	}
}

// load fetches the track for an item, consulting the cache first, and
// applies it if the session has not moved on.
func (s *Session) load(ctx context.Context, gen uint64, item Item) {
	defer s.loadWg.Done()

	track, cached, err := s.fetchTrack(ctx, item)
	if err != nil {
		s.failLoad(gen, item, err)
		return
	}
	s.applyTrack(gen, item, track, cached)
}

func (s *Session) fetchTrack(ctx context.Context, item Item) (Track, bool, error) {
	key := cache.Key(item.ID, item.Text)

	if s.cache != nil {
		if blob, ok := s.cache.Get(key); ok {
			var track Track
			if err := json.Unmarshal(blob, &track); err == nil {
				return track, true, nil
			}
			// A corrupt entry is dropped and recomputed.
			s.cache.Delete(key)
		}
	}

	track, err := s.provider.Track(ctx, item)
	if err != nil {
		return Track{}, false, err
	}

	if s.cache != nil {
		if blob, err := json.Marshal(track); err == nil {
			if err := s.cache.Put(key, blob); err != nil {
				log.Debug("track too large for cache", "item", item.ID, "bytes", len(blob))
			}
		}
	}
	return track, false, nil
}

// applyTrack installs a loaded track unless the load was superseded.
func (s *Session) applyTrack(gen uint64, item Item, track Track, cached bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Debug("discarding stale track", "item", item.ID, "generation", gen)
		return
	}

	log.Debug("track ready", "item", item.ID, "words", len(track.Timings),
		"duration", track.Duration, "cached", cached)

	s.track = track
	s.tracker.Start(track.Timings)
	s.transitionLocked(StateReady)

	if s.autoPlay && len(track.Audio) > 0 {
		if err := s.startLocked(); err != nil {
			s.lastErr = err
			log.Error("autoplay failed", "item", item.ID, "err", err)
		}
	}
}

func (s *Session) failLoad(gen uint64, item Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}
	log.Error("track load failed", "item", item.ID, "err", err)
	s.lastErr = err
	s.transitionLocked(StateIdle)
}

// startLocked begins audio playback of the loaded track.
func (s *Session) startLocked() error {
	if len(s.track.Audio) == 0 {
		return ErrNoTrack
	}
	if err := s.player.Play(s.track.Audio); err != nil {
		return err
	}
	_ = s.player.SetRate(s.rates.Rate())
	s.transitionLocked(StatePlaying)
	s.tracker.Reevaluate(0)
	return nil
}

// advanceAfterEnd moves to the next item when a track finishes, honoring
// loop mode. Without loop, playback stops after the last item.
func (s *Session) advanceAfterEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check: a transport command may have landed since the tick
	// sampled the clock.
	if s.machine.Current() != StatePlaying {
		return
	}

	switch {
	case s.current < len(s.items)-1:
		s.switchLocked(s.current + 1)
	case s.loop && len(s.items) > 0:
		s.switchLocked(0)
	default:
		_ = s.player.Stop()
		s.transitionLocked(StateReady)
		s.tracker.Reevaluate(s.track.Duration + 10)
	}
}

func (s *Session) transitionLocked(to State) {
	if s.machine.Current() == to {
		return
	}
	if !s.machine.Transition(to) {
		log.Warn("invalid state transition", "from", s.machine.Current(), "to", to)
		return
	}
	for _, fn := range s.onStateChange {
		fn(to)
	}
}
