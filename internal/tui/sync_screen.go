package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// syncIndicator shows a spinner while a forced sync runs.
type syncIndicator struct {
	spinner spinner.Model
	running bool
}

func newSyncIndicator() syncIndicator {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return syncIndicator{spinner: s}
}

func (m syncIndicator) start() (syncIndicator, tea.Cmd) {
	m.running = true
	return m, m.spinner.Tick
}

func (m syncIndicator) Update(msg tea.Msg) (syncIndicator, tea.Cmd) {
	if !m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m syncIndicator) View() string {
	if !m.running {
		return ""
	}
	return m.spinner.View() + " Syncing..."
}
