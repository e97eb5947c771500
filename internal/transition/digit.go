package transition

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultInDuration  = 600 * time.Millisecond
	DefaultInDelay     = 200 * time.Millisecond
	DefaultOutDuration = 200 * time.Millisecond
	DefaultOutDelay    = 0
)

// DigitPhase is the stroke animation a Digit is in.
type DigitPhase int

const (
	DigitIdle DigitPhase = iota
	DigitOut
	DigitBetween
	DigitIn
)

func (p DigitPhase) String() string {
	switch p {
	case DigitOut:
		return "out"
	case DigitBetween:
		return "between"
	case DigitIn:
		return "in"
	default:
		return "idle"
	}
}

type digitStage int

const (
	digitOut digitStage = iota
	digitBetween
	digitIn
	digitIdle
)

// DigitMsg drives a Digit's timers.
type DigitMsg struct {
	id    int
	tag   int
	stage digitStage
}

type DigitOption func(*digitConfig)

type digitConfig struct {
	inDuration  time.Duration
	inDelay     time.Duration
	outDuration time.Duration
	outDelay    time.Duration
	stagger     time.Duration
	tick        TickFunc
}

func defaultDigitConfig() digitConfig {
	return digitConfig{
		inDuration:  DefaultInDuration,
		inDelay:     DefaultInDelay,
		outDuration: DefaultOutDuration,
		outDelay:    DefaultOutDelay,
		stagger:     DefaultStagger,
		tick:        tea.Tick,
	}
}

func WithInDuration(d time.Duration) DigitOption {
	return func(c *digitConfig) { c.inDuration = d }
}

func WithInDelay(d time.Duration) DigitOption {
	return func(c *digitConfig) { c.inDelay = d }
}

func WithOutDuration(d time.Duration) DigitOption {
	return func(c *digitConfig) { c.outDuration = d }
}

func WithOutDelay(d time.Duration) DigitOption {
	return func(c *digitConfig) { c.outDelay = d }
}

// WithStagger sets the extra in-delay of each following digit of a Digits.
func WithStagger(d time.Duration) DigitOption {
	return func(c *digitConfig) { c.stagger = d }
}

func WithDigitTick(tick TickFunc) DigitOption {
	return func(c *digitConfig) { c.tick = tick }
}

// Digit is one drawn character. It draws itself in once when mounted and
// redraws through out, between and in on every Set.
type Digit struct {
	id  int
	tag int
	cfg digitConfig

	mounted bool
	value   rune
	next    rune
	phase   DigitPhase
	running bool
}

func NewDigit(value rune, opts ...DigitOption) Digit {
	cfg := defaultDigitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newDigit(value, cfg)
}

func newDigit(value rune, cfg digitConfig) Digit {
	return Digit{id: nextID(), cfg: cfg, value: value, next: value, phase: DigitIn}
}

func (d Digit) ID() int           { return d.id }
func (d Digit) Value() rune       { return d.value }
func (d Digit) Phase() DigitPhase { return d.phase }
func (d Digit) Running() bool     { return d.running }

// Mount starts the first draw-in. Mounting twice is a no-op.
func (d Digit) Mount() (Digit, tea.Cmd) {
	if d.mounted {
		return d, nil
	}
	d.mounted = true
	d.tag++
	return d, d.schedule(d.cfg.inDelay, digitIn)
}

// Set redraws the digit with value. The latest Set wins over any cycle still
// in flight.
func (d Digit) Set(value rune) (Digit, tea.Cmd) {
	if !d.mounted {
		d.value, d.next = value, value
		return d, nil
	}
	d.tag++
	d.next = value
	return d, d.schedule(d.cfg.outDelay, digitOut)
}

func (d Digit) Update(msg tea.Msg) (Digit, tea.Cmd) {
	m, ok := msg.(DigitMsg)
	if !ok || m.id != d.id || m.tag != d.tag {
		return d, nil
	}

	switch m.stage {
	case digitOut:
		d.phase, d.running = DigitOut, true
		return d, d.schedule(d.cfg.outDuration, digitBetween)
	case digitBetween:
		d.value = d.next
		d.phase, d.running = DigitBetween, false
		return d, d.schedule(d.cfg.inDelay, digitIn)
	case digitIn:
		d.phase, d.running = DigitIn, true
		return d, d.schedule(d.cfg.inDuration, digitIdle)
	case digitIdle:
		d.phase, d.running = DigitIdle, false
	}
	return d, nil
}

// Stop drops pending timers and settles on the latest value.
func (d Digit) Stop() Digit {
	d.tag++
	d.value = d.next
	d.phase, d.running = DigitIdle, false
	return d
}

// View hides the character while it is not drawn.
func (d Digit) View() string {
	if d.phase == DigitBetween || (d.phase == DigitIn && !d.running) {
		return " "
	}
	return string(d.value)
}

func (d Digit) schedule(after time.Duration, stage digitStage) tea.Cmd {
	id, tag := d.id, d.tag
	return d.cfg.tick(after, func(time.Time) tea.Msg {
		return DigitMsg{id: id, tag: tag, stage: stage}
	})
}
