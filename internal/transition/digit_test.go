package transition

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigit_MountDrawsIn(t *testing.T) {
	clock := &fakeClock{}
	d := NewDigit('5', WithDigitTick(clock.Tick))
	deliver := func(msg tea.Msg) { d, _ = d.Update(msg) }

	assert.Equal(t, DigitIn, d.Phase())
	assert.False(t, d.Running())
	assert.Equal(t, " ", d.View())

	d, cmd := d.Mount()
	require.NotNil(t, cmd)

	d, cmd = d.Mount()
	assert.Nil(t, cmd, "second mount is ignored")
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(DefaultInDelay-time.Millisecond, deliver)
	assert.False(t, d.Running())

	clock.Advance(time.Millisecond, deliver)
	assert.Equal(t, DigitIn, d.Phase())
	assert.True(t, d.Running())
	assert.Equal(t, "5", d.View())

	clock.Advance(DefaultInDuration, deliver)
	assert.Equal(t, DigitIdle, d.Phase())
	assert.False(t, d.Running())
	assert.Zero(t, clock.Pending())
}

func TestDigit_SetCycle(t *testing.T) {
	clock := &fakeClock{}
	d := NewDigit('5', WithDigitTick(clock.Tick))
	deliver := func(msg tea.Msg) { d, _ = d.Update(msg) }

	d, _ = d.Mount()
	clock.Advance(time.Second, deliver)
	require.Equal(t, DigitIdle, d.Phase())

	d, _ = d.Set('7')
	clock.Advance(DefaultOutDelay, deliver)
	assert.Equal(t, DigitOut, d.Phase())
	assert.True(t, d.Running())
	assert.Equal(t, '5', d.Value(), "old value while drawing out")

	clock.Advance(DefaultOutDuration, deliver)
	assert.Equal(t, DigitBetween, d.Phase())
	assert.False(t, d.Running())
	assert.Equal(t, '7', d.Value())
	assert.Equal(t, " ", d.View())

	clock.Advance(DefaultInDelay, deliver)
	assert.Equal(t, DigitIn, d.Phase())
	assert.True(t, d.Running())

	clock.Advance(DefaultInDuration, deliver)
	assert.Equal(t, DigitIdle, d.Phase())
	assert.Equal(t, "7", d.View())
}

func TestDigit_LatestSetWins(t *testing.T) {
	clock := &fakeClock{}
	d := NewDigit('1', WithDigitTick(clock.Tick), WithOutDelay(50*time.Millisecond))

	var idle int
	deliver := func(msg tea.Msg) {
		before := d.Phase()
		d, _ = d.Update(msg)
		if before != DigitIdle && d.Phase() == DigitIdle {
			idle++
		}
	}

	d, _ = d.Mount()
	clock.Advance(time.Second, deliver)
	idle = 0

	d, _ = d.Set('2')
	clock.Advance(20*time.Millisecond, deliver)
	d, _ = d.Set('3')
	clock.Advance(time.Second, deliver)

	assert.Equal(t, '3', d.Value())
	assert.Equal(t, DigitIdle, d.Phase())
	assert.Equal(t, 1, idle)
}

func TestDigit_SetBeforeMountAndStop(t *testing.T) {
	clock := &fakeClock{}
	d := NewDigit('1', WithDigitTick(clock.Tick))

	d, cmd := d.Set('4')
	assert.Nil(t, cmd)
	assert.Equal(t, '4', d.Value())

	d, _ = d.Mount()
	clock.Advance(time.Second, func(msg tea.Msg) { d, _ = d.Update(msg) })
	d, _ = d.Set('9')
	d = d.Stop()
	assert.Equal(t, '9', d.Value())
	assert.Equal(t, DigitIdle, d.Phase())

	clock.Advance(time.Second, func(msg tea.Msg) { d, _ = d.Update(msg) })
	assert.Equal(t, DigitIdle, d.Phase())
	assert.Equal(t, "9", d.View())
}
