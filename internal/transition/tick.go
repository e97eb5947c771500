package transition

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickFunc schedules fn after d. [tea.Tick] is the default.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}
