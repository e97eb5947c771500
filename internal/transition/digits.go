package transition

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultStagger = 200 * time.Millisecond

// Digits animates a string one Digit per character, each starting its
// draw-in one stagger after the previous.
type Digits struct {
	cfg     digitConfig
	value   string
	digits  []Digit
	mounted bool
}

func NewDigits(value string, opts ...DigitOption) Digits {
	cfg := defaultDigitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	d := Digits{cfg: cfg, value: value}
	d.digits = d.build(value)
	return d
}

func (d Digits) Value() string { return d.value }

// Digits returns a copy of the per-character models.
func (d Digits) Digits() []Digit {
	out := make([]Digit, len(d.digits))
	copy(out, d.digits)
	return out
}

func (d Digits) Mount() (Digits, tea.Cmd) {
	if d.mounted {
		return d, nil
	}
	d.mounted = true
	return d.mountAll()
}

// Set changes the displayed string. Every character redraws when the value
// changes; a different length rebuilds the characters and draws them in.
func (d Digits) Set(value string) (Digits, tea.Cmd) {
	if value == d.value {
		return d, nil
	}
	runes := []rune(value)
	d.value = value

	if len(runes) != len(d.digits) {
		d.digits = d.build(value)
		if !d.mounted {
			return d, nil
		}
		return d.mountAll()
	}

	digits := make([]Digit, len(d.digits))
	cmds := make([]tea.Cmd, 0, len(d.digits))
	for i, digit := range d.digits {
		var cmd tea.Cmd
		digits[i], cmd = digit.Set(runes[i])
		cmds = append(cmds, cmd)
	}
	d.digits = digits
	return d, tea.Batch(cmds...)
}

func (d Digits) Update(msg tea.Msg) (Digits, tea.Cmd) {
	m, ok := msg.(DigitMsg)
	if !ok {
		return d, nil
	}
	for i, digit := range d.digits {
		if digit.id != m.id {
			continue
		}
		digits := d.Digits()
		var cmd tea.Cmd
		digits[i], cmd = digit.Update(msg)
		d.digits = digits
		return d, cmd
	}
	return d, nil
}

func (d Digits) Stop() Digits {
	digits := make([]Digit, len(d.digits))
	for i, digit := range d.digits {
		digits[i] = digit.Stop()
	}
	d.digits = digits
	return d
}

func (d Digits) View() string {
	var b strings.Builder
	for _, digit := range d.digits {
		b.WriteString(digit.View())
	}
	return b.String()
}

func (d Digits) build(value string) []Digit {
	runes := []rune(value)
	digits := make([]Digit, len(runes))
	for i, r := range runes {
		cfg := d.cfg
		cfg.inDelay += time.Duration(i) * d.cfg.stagger
		digits[i] = newDigit(r, cfg)
	}
	return digits
}

func (d Digits) mountAll() (Digits, tea.Cmd) {
	digits := make([]Digit, len(d.digits))
	cmds := make([]tea.Cmd, 0, len(d.digits))
	for i, digit := range d.digits {
		var cmd tea.Cmd
		digits[i], cmd = digit.Mount()
		cmds = append(cmds, cmd)
	}
	d.digits = digits
	return d, tea.Batch(cmds...)
}
