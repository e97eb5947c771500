package transition

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChameleon(clock *fakeClock, opts ...ChameleonOption) Chameleon[int] {
	return NewChameleon[int](append([]ChameleonOption{WithChameleonTick(clock.Tick)}, opts...)...)
}

func TestChameleon_FirstObservationSettlesAtOnce(t *testing.T) {
	clock := &fakeClock{}
	c := newTestChameleon(clock)

	c, cmd := c.Watch(1)
	assert.Nil(t, cmd)
	assert.Equal(t, Settled, c.State())
	assert.Equal(t, 1, c.Displayed())
	assert.True(t, c.Visible())
	assert.Zero(t, clock.Pending())

	c, cmd = c.Watch(1)
	assert.Nil(t, cmd, "unchanged value schedules nothing")
	assert.Equal(t, Settled, c.State())
}

func TestChameleon_SwapsAfterDelayAndDuration(t *testing.T) {
	tests := []struct {
		name     string
		opts     []ChameleonOption
		settleAt time.Duration
	}{
		{name: "defaults", settleAt: DefaultChameleonDuration},
		{name: "with delay", opts: []ChameleonOption{WithDelay(100 * time.Millisecond), WithDuration(300 * time.Millisecond)}, settleAt: 400 * time.Millisecond},
		{name: "zero timings", opts: []ChameleonOption{WithDuration(0)}, settleAt: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{}
			c := newTestChameleon(clock, tt.opts...)
			deliver := func(msg tea.Msg) { c, _ = c.Update(msg) }

			c, _ = c.Watch(1)
			c, cmd := c.Watch(2)
			require.NotNil(t, cmd)
			assert.Equal(t, Transitioning, c.State())
			assert.False(t, c.Visible())

			if tt.settleAt > 0 {
				clock.Advance(tt.settleAt-time.Millisecond, deliver)
				assert.Equal(t, 1, c.Displayed(), "nothing changes before delay+duration")
				assert.True(t, c.Transitioning())
				clock.Advance(time.Millisecond, deliver)
			} else {
				clock.Advance(0, deliver)
			}

			assert.Equal(t, 2, c.Displayed())
			assert.Equal(t, Settled, c.State())
			assert.True(t, c.Visible())
			assert.Zero(t, clock.Pending())
		})
	}
}

func TestChameleon_BurstSettlesOnceOnLatest(t *testing.T) {
	clock := &fakeClock{}
	c := newTestChameleon(clock, WithDelay(50*time.Millisecond))

	var shown []int
	deliver := func(msg tea.Msg) {
		before := c.Displayed()
		c, _ = c.Update(msg)
		if c.Displayed() != before {
			shown = append(shown, c.Displayed())
		}
	}

	c, _ = c.Watch(1)
	c, _ = c.Watch(2)
	clock.Advance(100*time.Millisecond, deliver)
	c, _ = c.Watch(3)

	clock.Advance(249*time.Millisecond, deliver)
	assert.Equal(t, 1, c.Displayed())
	assert.False(t, c.Visible())

	clock.Advance(time.Millisecond, deliver)
	assert.Equal(t, []int{3}, shown)
	assert.Equal(t, Settled, c.State())
}

func TestChameleon_ChangeBackDuringTransition(t *testing.T) {
	clock := &fakeClock{}
	c := newTestChameleon(clock)
	deliver := func(msg tea.Msg) { c, _ = c.Update(msg) }

	c, _ = c.Watch(1)
	c, _ = c.Watch(2)
	clock.Advance(50*time.Millisecond, deliver)
	c, cmd := c.Watch(1)
	require.NotNil(t, cmd, "the latest change still runs a full cycle")

	clock.Advance(DefaultChameleonDuration, deliver)
	assert.Equal(t, 1, c.Displayed())
	assert.Equal(t, Settled, c.State())
}

func TestChameleon_IgnoresForeignAndStaleMessages(t *testing.T) {
	clock := &fakeClock{}
	a := newTestChameleon(clock)
	b := newTestChameleon(clock)

	a, _ = a.Watch(1)
	b, _ = b.Watch(1)
	b, _ = b.Watch(2)

	var msgs []tea.Msg
	clock.Advance(time.Second, func(msg tea.Msg) {
		msgs = append(msgs, msg)
		b, _ = b.Update(msg)
	})
	require.NotEmpty(t, msgs)

	for _, msg := range msgs {
		var cmd tea.Cmd
		a, cmd = a.Update(msg)
		assert.Nil(t, cmd)
	}
	assert.Equal(t, 1, a.Displayed())
	assert.Equal(t, 2, b.Displayed())

	a, _ = a.Watch(5)
	stale := ChameleonMsg{id: a.ID(), tag: a.tag - 1, stage: chameleonSettle}
	a, _ = a.Update(stale)
	assert.Equal(t, Transitioning, a.State())

	a, _ = a.Update(tea.KeyMsg{})
	assert.Equal(t, 1, a.Displayed())
}

func TestChameleon_StopDropsPendingTimers(t *testing.T) {
	clock := &fakeClock{}
	c := newTestChameleon(clock)

	c, _ = c.Watch(1)
	c, _ = c.Watch(2)
	c = c.Stop()
	assert.Equal(t, 2, c.Displayed())
	assert.True(t, c.Visible())

	updates := 0
	clock.Advance(time.Second, func(msg tea.Msg) {
		var cmd tea.Cmd
		c, cmd = c.Update(msg)
		assert.Nil(t, cmd)
		updates++
	})
	assert.Equal(t, 1, updates, "the in-flight latch still fires and is dropped")
	assert.Equal(t, Settled, c.State())
}

func TestChameleon_View(t *testing.T) {
	clock := &fakeClock{}
	c := NewChameleon[string](WithChameleonTick(clock.Tick))

	c, _ = c.Watch("Al-Fatiha\n1:1")
	assert.Equal(t, "Al-Fatiha\n1:1", c.View())

	c, _ = c.Watch("Al-Ikhlas")
	assert.Equal(t, "         \n   ", c.View(), "hidden view keeps the layout")
}
