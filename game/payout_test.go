package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayout(t *testing.T) {
	tests := []struct {
		name       string
		bet        float64
		values     [CardCount]float64
		wantTotal  string
		wantPayout string
		wantText   string
	}{
		{
			name:       "mixed multipliers",
			bet:        5,
			values:     [CardCount]float64{2.0, 3.0, 0.6},
			wantTotal:  "3.6",
			wantPayout: "18",
			wantText:   "Payout: $18.00\n(3.6x)",
		},
		{
			name:       "zero card wipes the round",
			bet:        10,
			values:     [CardCount]float64{10.0, 5.0, 0.0},
			wantTotal:  "0",
			wantPayout: "0",
			wantText:   "Payout: $0.00\n(0.0x)",
		},
		{
			name:       "fractional bet shows the float rounding",
			bet:        0.5,
			values:     [CardCount]float64{0.3, 0.3, 1.0},
			wantTotal:  "0.09",
			wantPayout: "0.045",
			wantText:   "Payout: $0.04\n(0.1x)",
		},
		{
			name:       "multiplier just under a tie",
			bet:        1,
			values:     [CardCount]float64{0.3, 0.3, 5.0},
			wantTotal:  "0.45",
			wantPayout: "0.45",
			wantText:   "Payout: $0.45\n(0.4x)",
		},
		{
			name:       "top of the table",
			bet:        2,
			values:     [CardCount]float64{10, 10, 10},
			wantTotal:  "1000",
			wantPayout: "2000",
			wantText:   "Payout: $2000.00\n(1000.0x)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var outcomes [CardCount]Outcome
			for i, v := range tt.values {
				outcomes[i] = Outcome{Value: v, Chance: 1}
			}
			total, payout := Payout(tt.bet, outcomes)
			assert.Equal(t, tt.wantTotal, total.String())
			assert.Equal(t, tt.wantPayout, payout.String())
			assert.Equal(t, tt.wantText, ResultText(tt.bet, outcomes))
		})
	}
}

func TestToFixed(t *testing.T) {
	tests := []struct {
		x      float64
		places int32
		want   string
	}{
		{0.125, 2, "0.13"}, // exact binary tie rounds up
		{0.25, 1, "0.3"},
		{2.5, 0, "3"},
		{1.005, 2, "1.00"}, // stored just below 1.005
		{3.5999999999999996, 1, "3.6"},
		{0, 1, "0.0"},
		{1000, 2, "1000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toFixed(tt.x, tt.places), "toFixed(%v, %d)", tt.x, tt.places)
	}
}

func TestSettle_TextFollowsFloatDisplay(t *testing.T) {
	rc := RoundContext{
		Bet:      0.5,
		Outcomes: [CardCount]Outcome{{Value: 0.3}, {Value: 0.3}, {Value: 1}},
	}
	res := Settle(rc)
	assert.Equal(t, "Payout: $0.04\n(0.1x)", res.Text)
	assert.Equal(t, "0.045", res.Payout.String())
}

func TestSettle_ZeroAnywhere(t *testing.T) {
	for zeroAt := 0; zeroAt < CardCount; zeroAt++ {
		rc := RoundContext{ID: "r", Bet: 5}
		for i := range rc.Outcomes {
			rc.Outcomes[i] = Outcome{Value: 10, Chance: 1}
		}
		rc.Outcomes[zeroAt] = Outcome{Value: 0, Chance: 1}

		res := Settle(rc)
		assert.True(t, res.TotalMultiplier.IsZero(), "zero at %d", zeroAt)
		assert.True(t, res.Payout.IsZero(), "zero at %d", zeroAt)
		assert.Equal(t, "r", res.RoundID)
	}
}

func TestSettle_ExactProduct(t *testing.T) {
	rc := RoundContext{
		Bet:      5,
		Outcomes: [CardCount]Outcome{{Value: 2.0}, {Value: 3.0}, {Value: 0.6}},
	}
	res := Settle(rc)
	assert.Equal(t, "3.6", res.TotalMultiplier.String())
	assert.Equal(t, "18", res.Payout.String())
}
