package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/lexio-app/lexio/internal/session"
)

const (
	tickRate    = 50 * time.Millisecond
	seekStep    = 5.0 // seconds per arrow-key press
	chromeLines = 4   // header + status + padding
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

type playerModel struct {
	cfg     Config
	session *session.Session

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	highlight        lipgloss.Style
	highlightEnabled bool

	// last rendered word/item, to skip redundant viewport rebuilds
	lastWord int
	lastItem int
}

func newPlayerModel(cfg Config, sess *session.Session) playerModel {
	style, enabled := HighlightStyle(cfg.HighlightColor)
	return playerModel{
		cfg:              cfg,
		session:          sess,
		highlight:        style,
		highlightEnabled: enabled,
		lastWord:         -1,
		lastItem:         -1,
	}
}

func (m playerModel) Init() tea.Cmd {
	return tickCmd()
}

func (m playerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-chromeLines))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-chromeLines)
		}
		m.refreshBody()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.session.Tick(time.Time(msg))
		word := m.session.CurrentWordIndex()
		item := m.session.CurrentIndex()
		if word != m.lastWord || item != m.lastItem {
			m.lastWord = word
			m.lastItem = item
			m.refreshBody()
		}
		return m, tickCmd()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m playerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.session.Close()
		return m, tea.Quit

	case " ":
		if m.session.State() == session.StatePlaying {
			_ = m.session.Pause()
		} else {
			_ = m.session.Play()
		}
		return m, nil

	case "n":
		m.session.Next()
		m.refreshBody()
		return m, nil

	case "p":
		m.session.Previous()
		m.refreshBody()
		return m, nil

	case "right":
		_ = m.session.Seek(m.session.Position() + seekStep)
		return m, nil

	case "left":
		target := m.session.Position() - seekStep
		if target < 0 {
			target = 0
		}
		_ = m.session.Seek(target)
		return m, nil

	case "+", "=":
		m.session.FasterRate()
		return m, nil

	case "-", "_":
		m.session.SlowerRate()
		return m, nil

	case "l":
		m.session.SetLoop(!m.session.Loop())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refreshBody rebuilds the viewport content from the active item's timing
// schedule, or from the raw text while the schedule is still loading.
func (m *playerModel) refreshBody() {
	if !m.ready {
		return
	}

	item, ok := m.session.CurrentItem()
	if !ok {
		m.viewport.SetContent(helpStyle.Render("Queue is empty."))
		return
	}

	timings := m.session.WordTimings()
	var body string
	if len(timings) > 0 {
		body = RenderTimings(timings, m.session.CurrentWordIndex(), m.highlight, m.highlightEnabled)
	} else {
		body = item.Text
	}

	m.viewport.SetContent(wordwrap.String(body, m.viewport.Width))
}

func (m playerModel) View() string {
	if !m.ready {
		return "\n  Loading…"
	}

	var b strings.Builder

	item, ok := m.session.CurrentItem()
	title := "lexio"
	if ok && item.Title != "" {
		title = item.Title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.cfg.ShowStatus {
		b.WriteString(renderStatus(m.session))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(keyboardHelp))

	return b.String()
}

const keyboardHelp = "space: play/pause • n/p: next/prev • ←/→: seek • +/-: rate • l: loop • q: quit"
