package game

import (
	"math"

	"github.com/shopspring/decimal"
)

// ExpectedMultiplier is the mean card value, Σ value·chance / Σ chance.
func (t *OutcomeTable) ExpectedMultiplier() float64 {
	sum := 0.0
	for _, o := range t.entries {
		sum += o.Value * o.Chance
	}
	return sum / t.total
}

// TheoreticalRTP is the expected round multiplier. The three draws are
// independent, so it is the per-card mean cubed.
func TheoreticalRTP(t *OutcomeTable) float64 {
	return math.Pow(t.ExpectedMultiplier(), CardCount)
}

// ZeroRoundProbability is the chance that at least one card is a 0x.
func ZeroRoundProbability(t *OutcomeTable) float64 {
	zero := 0.0
	for i, o := range t.entries {
		if o.Value == 0 {
			zero += t.Probability(i)
		}
	}
	return 1 - math.Pow(1-zero, CardCount)
}

// SimulationReport summarises a batch of settled rounds.
type SimulationReport struct {
	Rounds        int             `json:"rounds"`
	TotalBet      decimal.Decimal `json:"totalBet"`
	TotalPayout   decimal.Decimal `json:"totalPayout"`
	RTP           float64         `json:"rtp"`
	ZeroRounds    int             `json:"zeroRounds"`
	WinningRounds int             `json:"winningRounds"`
	MaxMultiplier decimal.Decimal `json:"maxMultiplier"`
	// Draws counts how often each pay table value came up, keyed by label.
	Draws map[string]int `json:"draws"`
}

// Simulate settles rounds back to back with no presentation, using the same
// draw and payout code as the engine.
func Simulate(t *OutcomeTable, bet float64, rounds int) SimulationReport {
	report := SimulationReport{
		Rounds:        rounds,
		TotalBet:      decimal.Zero,
		TotalPayout:   decimal.Zero,
		MaxMultiplier: decimal.Zero,
		Draws:         make(map[string]int),
	}
	stake := decimal.NewFromFloat(bet)

	for i := 0; i < rounds; i++ {
		var outcomes [CardCount]Outcome
		for c := range outcomes {
			outcomes[c] = t.Draw()
			report.Draws[outcomes[c].Label()]++
		}
		total, payout := Payout(bet, outcomes)

		report.TotalBet = report.TotalBet.Add(stake)
		report.TotalPayout = report.TotalPayout.Add(payout)
		if total.IsZero() {
			report.ZeroRounds++
		}
		if payout.GreaterThan(stake) {
			report.WinningRounds++
		}
		if total.GreaterThan(report.MaxMultiplier) {
			report.MaxMultiplier = total
		}
	}

	if report.TotalBet.IsPositive() {
		report.RTP = report.TotalPayout.Div(report.TotalBet).InexactFloat64()
	}
	return report
}
