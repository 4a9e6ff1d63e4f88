package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/windoze95/saltybytes-mealsearch/internal/search"
)

// screenMsg carries a controller update into the Bubble Tea loop.
type screenMsg search.Screen

// Mailbox hands controller updates to the UI loop. It keeps only the newest
// screen, so Put never blocks even while the loop is busy calling into the
// controller.
type Mailbox struct {
	mu     sync.Mutex
	latest search.Screen
	has    bool
	signal chan struct{}
}

// NewMailbox returns an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{signal: make(chan struct{}, 1)}
}

// Put stores screen if it is newer than the one already held. Use it as the
// controller's change callback.
func (m *Mailbox) Put(screen search.Screen) {
	m.mu.Lock()
	if !m.has || screen.Version > m.latest.Version {
		m.latest = screen
		m.has = true
	}
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// wait returns a command that blocks until a screen is available.
func (m *Mailbox) wait() tea.Cmd {
	return func() tea.Msg {
		<-m.signal
		m.mu.Lock()
		defer m.mu.Unlock()
		m.has = false
		return screenMsg(m.latest)
	}
}
