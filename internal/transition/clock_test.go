package transition

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type pendingTimer struct {
	at  time.Duration
	seq int
	fn  func(time.Time) tea.Msg
}

// fakeClock records scheduled ticks and fires them on Advance.
type fakeClock struct {
	now    time.Duration
	seq    int
	timers []pendingTimer
}

func (c *fakeClock) Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	c.seq++
	c.timers = append(c.timers, pendingTimer{at: c.now + d, seq: c.seq, fn: fn})
	return func() tea.Msg { return nil }
}

// Advance fires every timer due within d in order, handing each message to
// deliver. Timers scheduled by deliver fire too when they fall inside d.
func (c *fakeClock) Advance(d time.Duration, deliver func(tea.Msg)) {
	end := c.now + d
	for {
		sort.Slice(c.timers, func(i, j int) bool {
			if c.timers[i].at != c.timers[j].at {
				return c.timers[i].at < c.timers[j].at
			}
			return c.timers[i].seq < c.timers[j].seq
		})
		if len(c.timers) == 0 || c.timers[0].at > end {
			break
		}
		next := c.timers[0]
		c.timers = c.timers[1:]
		c.now = next.at
		deliver(next.fn(time.Time{}))
	}
	c.now = end
}

func (c *fakeClock) Pending() int {
	return len(c.timers)
}
