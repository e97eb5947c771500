package transition

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultChameleonDuration = 200 * time.Millisecond
	DefaultChameleonDelay    = 0
)

// ChameleonState is either Settled or Transitioning.
type ChameleonState int

const (
	Settled ChameleonState = iota
	Transitioning
)

func (s ChameleonState) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "settled"
}

type chameleonStage int

const (
	chameleonLatch chameleonStage = iota
	chameleonSettle
)

// ChameleonMsg drives a Chameleon's timers.
type ChameleonMsg struct {
	id    int
	tag   int
	stage chameleonStage
}

type ChameleonOption func(*chameleonConfig)

type chameleonConfig struct {
	duration time.Duration
	delay    time.Duration
	tick     TickFunc
}

func WithDuration(d time.Duration) ChameleonOption {
	return func(c *chameleonConfig) { c.duration = d }
}

func WithDelay(d time.Duration) ChameleonOption {
	return func(c *chameleonConfig) { c.delay = d }
}

func WithChameleonTick(tick TickFunc) ChameleonOption {
	return func(c *chameleonConfig) { c.tick = tick }
}

// Chameleon fades a displayed value out and back in whenever the watched
// value changes. Only the latest change of a burst is ever displayed.
type Chameleon[T comparable] struct {
	id  int
	tag int
	cfg chameleonConfig

	observed  bool
	state     ChameleonState
	displayed T
	target    T
	latched   T
	visible   bool
}

func NewChameleon[T comparable](opts ...ChameleonOption) Chameleon[T] {
	cfg := chameleonConfig{
		duration: DefaultChameleonDuration,
		delay:    DefaultChameleonDelay,
		tick:     tea.Tick,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return Chameleon[T]{id: nextID(), cfg: cfg, state: Settled, visible: true}
}

func (c Chameleon[T]) ID() int               { return c.id }
func (c Chameleon[T]) State() ChameleonState { return c.state }
func (c Chameleon[T]) Displayed() T          { return c.displayed }
func (c Chameleon[T]) Visible() bool         { return c.visible }
func (c Chameleon[T]) Transitioning() bool   { return c.state == Transitioning }

// Watch observes value. The first observation is displayed at once; later
// changes hide the display and schedule the swap.
func (c Chameleon[T]) Watch(value T) (Chameleon[T], tea.Cmd) {
	if !c.observed {
		c.observed = true
		c.displayed, c.target, c.latched = value, value, value
		c.state, c.visible = Settled, true
		return c, nil
	}
	if c.state == Settled && value == c.displayed {
		return c, nil
	}

	c.tag++
	c.target = value
	c.state, c.visible = Transitioning, false
	return c, c.schedule(c.cfg.delay, chameleonLatch)
}

func (c Chameleon[T]) Update(msg tea.Msg) (Chameleon[T], tea.Cmd) {
	m, ok := msg.(ChameleonMsg)
	if !ok || m.id != c.id || m.tag != c.tag || c.state != Transitioning {
		return c, nil
	}

	switch m.stage {
	case chameleonLatch:
		c.latched = c.target
		return c, c.schedule(c.cfg.duration, chameleonSettle)
	case chameleonSettle:
		c.displayed = c.latched
		c.state, c.visible = Settled, true
	}
	return c, nil
}

// Stop drops every pending timer and shows the latest target right away.
func (c Chameleon[T]) Stop() Chameleon[T] {
	c.tag++
	if c.state == Transitioning {
		c.displayed, c.latched = c.target, c.target
		c.state, c.visible = Settled, true
	}
	return c
}

// View renders the displayed value, or blanks of the same width while hidden.
func (c Chameleon[T]) View() string {
	s := fmt.Sprint(c.displayed)
	if c.visible {
		return s
	}
	return blank(s)
}

func (c Chameleon[T]) schedule(d time.Duration, stage chameleonStage) tea.Cmd {
	id, tag := c.id, c.tag
	return c.cfg.tick(d, func(time.Time) tea.Msg {
		return ChameleonMsg{id: id, tag: tag, stage: stage}
	})
}

// blank keeps the layout of s while showing nothing.
func blank(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", lipgloss.Width(line))
	}
	return strings.Join(lines, "\n")
}
