package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexio-app/lexio/internal/audio"
	"github.com/lexio-app/lexio/internal/session"
)

func newTestModel(t *testing.T) (playerModel, *session.Session) {
	t.Helper()

	sess, err := session.New(session.Config{
		Provider: &session.EstimatorProvider{SampleRate: 44100, WordsPerMinute: 150},
		Player:   audio.NewMockPlayer(),
		AutoPlay: true,
	})
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	sess.SetQueue([]session.Item{
		session.NewItem("first item", "alpha beta gamma delta"),
		session.NewItem("second item", "epsilon zeta"),
	})

	m := newPlayerModel(Config{HighlightColor: "yellow", ShowStatus: true}, sess)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(playerModel), sess
}

func pressKey(t *testing.T, m playerModel, key tea.KeyMsg) (playerModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(key)
	return updated.(playerModel), cmd
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeySpace})
	sess.WaitForLoad()
	if got := sess.State(); got != session.StatePlaying {
		t.Fatalf("State() after space = %v, want playing", got)
	}

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if got := sess.State(); got != session.StatePaused {
		t.Errorf("State() after second space = %v, want paused", got)
	}

	_, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if got := sess.State(); got != session.StatePlaying {
		t.Errorf("State() after third space = %v, want playing", got)
	}
}

func TestItemNavigationKeys(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = pressKey(t, m, runeKey("n"))
	sess.WaitForLoad()
	if got := sess.CurrentIndex(); got != 1 {
		t.Fatalf("CurrentIndex() after n = %d, want 1", got)
	}

	// At the last item without loop, n is a no-op.
	m, _ = pressKey(t, m, runeKey("n"))
	sess.WaitForLoad()
	if got := sess.CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex() after second n = %d, want 1", got)
	}

	_, _ = pressKey(t, m, runeKey("p"))
	sess.WaitForLoad()
	if got := sess.CurrentIndex(); got != 0 {
		t.Errorf("CurrentIndex() after p = %d, want 0", got)
	}
}

func TestRateKeys(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = pressKey(t, m, runeKey("+"))
	if got := sess.Rate(); got != 1.25 {
		t.Errorf("Rate() after + = %v, want 1.25", got)
	}

	m, _ = pressKey(t, m, runeKey("-"))
	if got := sess.Rate(); got != 1.0 {
		t.Errorf("Rate() after - = %v, want 1.0", got)
	}

	_, _ = pressKey(t, m, runeKey("_"))
	if got := sess.Rate(); got != 0.75 {
		t.Errorf("Rate() after _ = %v, want 0.75", got)
	}
}

func TestLoopToggleKey(t *testing.T) {
	m, sess := newTestModel(t)

	if sess.Loop() {
		t.Fatal("loop enabled before toggle")
	}
	m, _ = pressKey(t, m, runeKey("l"))
	if !sess.Loop() {
		t.Error("loop not enabled after l")
	}
	_, _ = pressKey(t, m, runeKey("l"))
	if sess.Loop() {
		t.Error("loop still enabled after second l")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := pressKey(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce tea.QuitMsg")
	}
}

func TestViewShowsTitleAndHelp(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "first item") {
		t.Error("view missing current item title")
	}
	if !strings.Contains(view, "q: quit") {
		t.Error("view missing keyboard help")
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	sess, err := session.New(session.Config{
		Provider: &session.EstimatorProvider{SampleRate: 44100},
		Player:   audio.NewMockPlayer(),
	})
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	m := newPlayerModel(Config{}, sess)
	if view := m.View(); !strings.Contains(view, "Loading") {
		t.Errorf("pre-layout view = %q, want loading placeholder", view)
	}
}
