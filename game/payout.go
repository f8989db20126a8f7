package game

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Payout multiplies the three card values and the bet. Values go through
// decimal so 2 x 3 x 0.6 is exactly 3.6 rather than 3.5999...
func Payout(bet float64, outcomes [CardCount]Outcome) (total, payout decimal.Decimal) {
	total = decimal.NewFromInt(1)
	for _, o := range outcomes {
		total = total.Mul(decimal.NewFromFloat(o.Value))
	}
	payout = decimal.NewFromFloat(bet).Mul(total)
	return total, payout
}

// ResultText renders the payout line shown above the cards. The display
// multiplies in float64, card by card, and rounds the binary result, so
// 0.5 x 0.3 x 0.3 shows $0.04 even though the settled payout is 0.045.
func ResultText(bet float64, outcomes [CardCount]Outcome) string {
	total := 1.0
	for _, o := range outcomes {
		total *= o.Value
	}
	payout := bet * total
	return fmt.Sprintf("Payout: $%s\n(%sx)", toFixed(payout, 2), toFixed(total, 1))
}

// toFixed rounds the exact binary value of x to places decimals, halves up.
func toFixed(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return strconv.FormatFloat(x, 'f', int(places), 64)
	}

	r := new(big.Rat).SetFloat64(x)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))

	n := new(big.Int).Div(r.Num(), r.Denom())
	return decimal.NewFromBigInt(n, -places).StringFixed(places)
}

// Settle turns a revealed round into its result.
func Settle(rc RoundContext) RoundResult {
	total, payout := Payout(rc.Bet, rc.Outcomes)
	return RoundResult{
		RoundID:         rc.ID,
		Outcomes:        rc.Outcomes,
		Bet:             rc.Bet,
		Speed:           rc.Speed,
		TotalMultiplier: total,
		Payout:          payout,
		Text:            ResultText(rc.Bet, rc.Outcomes),
		SettledAt:       time.Now(),
	}
}
