package game

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync"
)

// OutcomeTable draws weighted multiplier outcomes from a fixed pay table.
type OutcomeTable struct {
	entries []Outcome
	total   float64

	mu  sync.Mutex
	rnd func() float64 // uniform in [0, 1)
}

// NewOutcomeTable validates entries and builds a table. A nil rnd falls back
// to the package-level math/rand source.
func NewOutcomeTable(entries []Outcome, rnd func() float64) (*OutcomeTable, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPayTable
	}

	total := 0.0
	for i, o := range entries {
		if !(o.Chance > 0) || math.IsInf(o.Chance, 0) {
			return nil, fmt.Errorf("entry %d (%vx): %w", i, o.Value, ErrInvalidWeight)
		}
		if !(o.Value >= 0) || math.IsInf(o.Value, 0) {
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidOutcome)
		}
		total += o.Chance
	}

	if rnd == nil {
		rnd = rand.Float64
	}

	cp := make([]Outcome, len(entries))
	copy(cp, entries)

	return &OutcomeTable{entries: cp, total: total, rnd: rnd}, nil
}

// Draw returns one outcome with probability chance/total. Draws are
// independent, so repeated outcomes across cards are expected.
func (t *OutcomeTable) Draw() Outcome {
	t.mu.Lock()
	r := t.rnd() * t.total
	t.mu.Unlock()
	return t.Pick(r)
}

// Pick maps r in [0, total) onto the table. Entry i owns the half-open
// interval [cum_i, cum_i + chance_i), so r equal to a cumulative threshold
// selects the following entry.
func (t *OutcomeTable) Pick(r float64) Outcome {
	for _, o := range t.entries {
		if r < o.Chance {
			return o
		}
		r -= o.Chance
	}
	// Only reachable through float rounding at the top of the range.
	return t.entries[0]
}

// Entries returns a copy of the configured pay table in order.
func (t *OutcomeTable) Entries() []Outcome {
	cp := make([]Outcome, len(t.entries))
	copy(cp, t.entries)
	return cp
}

func (t *OutcomeTable) TotalWeight() float64 {
	return t.total
}

// Probability is the draw probability of entry i.
func (t *OutcomeTable) Probability(i int) float64 {
	return t.entries[i].Chance / t.total
}

// Rows renders the pay table popup lines, one per entry in table order.
func (t *OutcomeTable) Rows() []string {
	rows := make([]string, len(t.entries))
	for i, o := range t.entries {
		rows[i] = o.Label() + "  -  Chance: " + strconv.FormatFloat(o.Chance, 'f', -1, 64) + "%"
	}
	return rows
}
