package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_Idle(t *testing.T) {
	for _, autoplay := range []bool{false, true} {
		c := Gate(StateIdle, autoplay)
		assert.True(t, c.Primary)
		assert.True(t, c.Bet)
		assert.True(t, c.Autoplay)
		assert.True(t, c.Speed)
		assert.True(t, c.PayTable)
	}
}

func TestGate_InRound(t *testing.T) {
	for _, state := range []RoundState{StateRoundStart, StateReveal, StateResult} {
		t.Run(state.String(), func(t *testing.T) {
			manual := Gate(state, false)
			assert.Equal(t, ControlSet{PrimaryLabel: "PLAY", AutoplayLabel: "AUTO: OFF"}, manual)
			assert.False(t, manual.Permits(ActionPrimary))
			assert.False(t, manual.Permits(ActionCycleBet))
			assert.False(t, manual.Permits(ActionCycleSpeed))
			assert.False(t, manual.Permits(ActionToggleAutoplay))
			assert.True(t, manual.Permits(ActionTogglePayTable))

			auto := Gate(state, true)
			assert.True(t, auto.Primary)
			assert.True(t, auto.Autoplay)
			assert.False(t, auto.Bet)
			assert.False(t, auto.Speed)
			assert.False(t, auto.PayTable)
			assert.Equal(t, "STOP AUTO", auto.PrimaryLabel)
			assert.Equal(t, "AUTO: ON", auto.AutoplayLabel)
			assert.True(t, auto.Permits(ActionToggleAutoplay))
		})
	}
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("cycle_bet")
	assert.True(t, ok)
	assert.Equal(t, ActionCycleBet, a)

	_, ok = ParseAction("cash_out")
	assert.False(t, ok)
}
