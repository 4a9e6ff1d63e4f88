// Package tui renders the meal search screen in a terminal.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/windoze95/saltybytes-mealsearch/internal/config"
	"github.com/windoze95/saltybytes-mealsearch/internal/search"
)

// Controller is the part of search.Controller the screen drives.
type Controller interface {
	SetQuery(query string) search.Screen
	Clear() search.Screen
	Toggle(id string) (search.Screen, error)
	Screen() search.Screen
	Close()
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "see more/less"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc", "ctrl+x"),
		key.WithHelp("esc", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Model is the Bubble Tea model of the search screen.
type Model struct {
	ctrl    Controller
	mailbox *Mailbox
	text    *config.ScreenText

	input  textinput.Model
	screen search.Screen
	cursor int

	width  int
	height int
}

// New creates the screen model. mailbox must be the controller's change
// callback target.
func New(ctrl Controller, mailbox *Mailbox, text *config.ScreenText) Model {
	if text == nil {
		text = config.DefaultScreenText()
	}

	ti := textinput.New()
	ti.Placeholder = text.Placeholder
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.Focus()

	return Model{
		ctrl:    ctrl,
		mailbox: mailbox,
		text:    text,
		input:   ti,
		screen:  ctrl.Screen(),
		width:   80,
		height:  24,
	}
}

// Init starts the cursor blink and the controller listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.mailbox.wait())
}

// Update handles messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screenMsg:
		m.apply(search.Screen(msg))
		return m, m.mailbox.wait()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit

	case key.Matches(msg, keys.Clear):
		m.input.SetValue("")
		m.apply(m.ctrl.Clear())
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.screen.Rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Toggle):
		if m.cursor < len(m.screen.Rows) {
			if screen, err := m.ctrl.Toggle(m.screen.Rows[m.cursor].ID); err == nil {
				m.apply(screen)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.screen.Query {
		m.apply(m.ctrl.SetQuery(value))
	}
	return m, cmd
}

// apply installs screen unless a newer one is already shown.
func (m *Model) apply(screen search.Screen) {
	if screen.Version < m.screen.Version {
		return
	}
	if screen.Query != m.screen.Query || len(screen.Rows) != len(m.screen.Rows) {
		m.cursor = 0
	}
	m.screen = screen
	if m.cursor >= len(screen.Rows) {
		m.cursor = max(0, len(screen.Rows)-1)
	}
}
