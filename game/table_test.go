package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPayTable = []Outcome{
	{Value: 10.0, Chance: 3.0},
	{Value: 5.0, Chance: 6.0},
	{Value: 3.0, Chance: 13.0},
	{Value: 2.0, Chance: 23.0},
	{Value: 1.0, Chance: 55.0},
	{Value: 4.0, Chance: 7.0},
	{Value: 2.0, Chance: 9.0},
	{Value: 0.6, Chance: 15.0},
	{Value: 0.3, Chance: 50.0},
	{Value: 0.0, Chance: 19.0},
}

func TestNewOutcomeTable_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		entries []Outcome
		wantErr error
	}{
		{"empty", nil, ErrEmptyPayTable},
		{"zero weight", []Outcome{{Value: 1, Chance: 0}}, ErrInvalidWeight},
		{"negative weight", []Outcome{{Value: 1, Chance: 2}, {Value: 2, Chance: -1}}, ErrInvalidWeight},
		{"negative value", []Outcome{{Value: -1, Chance: 1}}, ErrInvalidOutcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewOutcomeTable(tt.entries, nil)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOutcomeTable_PickBoundaries(t *testing.T) {
	table, err := NewOutcomeTable([]Outcome{
		{Value: 1, Chance: 2},
		{Value: 5, Chance: 3},
		{Value: 9, Chance: 5},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 10.0, table.TotalWeight())

	assert.Equal(t, 1.0, table.Pick(0).Value)
	assert.Equal(t, 1.0, table.Pick(1.999999).Value)
	// r equal to a cumulative threshold belongs to the next entry.
	assert.Equal(t, 5.0, table.Pick(2).Value)
	assert.Equal(t, 5.0, table.Pick(4.999999).Value)
	assert.Equal(t, 9.0, table.Pick(5).Value)
	assert.Equal(t, 9.0, table.Pick(9.999999).Value)
	// Past the top only float rounding could land here.
	assert.Equal(t, 1.0, table.Pick(10).Value)
}

func TestOutcomeTable_DrawScalesUniform(t *testing.T) {
	var r float64
	table, err := NewOutcomeTable([]Outcome{
		{Value: 1, Chance: 1},
		{Value: 2, Chance: 3},
	}, func() float64 { return r })
	require.NoError(t, err)

	r = 0.24 // 0.96 of 4
	assert.Equal(t, 1.0, table.Draw().Value)
	r = 0.25 // exactly 1.0, the first threshold
	assert.Equal(t, 2.0, table.Draw().Value)
	r = 0.999
	assert.Equal(t, 2.0, table.Draw().Value)
}

func TestOutcomeTable_DrawFrequencies(t *testing.T) {
	rng := NewSeededRNG("frequency-test")
	table, err := NewOutcomeTable(testPayTable, rng.Float64)
	require.NoError(t, err)

	const n = 200000
	counts := make(map[Outcome]int)
	for i := 0; i < n; i++ {
		counts[table.Draw()]++
	}

	for i, o := range testPayTable {
		want := table.Probability(i)
		got := float64(counts[o]) / n
		assert.InDelta(t, want, got, 0.006, "outcome %d (%s)", i, o.Label())
	}
}

func TestOutcomeTable_DrawNeverLeavesTable(t *testing.T) {
	rng := NewSeededRNG("membership-test")
	table, err := NewOutcomeTable(testPayTable, rng.Float64)
	require.NoError(t, err)

	known := make(map[Outcome]bool)
	for _, o := range testPayTable {
		known[o] = true
	}
	for i := 0; i < 50000; i++ {
		o := table.Draw()
		require.True(t, known[o], "unexpected outcome %+v", o)
	}
}

func TestOutcomeTable_EntriesIsACopy(t *testing.T) {
	table, err := NewOutcomeTable(testPayTable, nil)
	require.NoError(t, err)

	entries := table.Entries()
	entries[0].Value = 999
	assert.Equal(t, 10.0, table.Entries()[0].Value)
}

func TestOutcome_Label(t *testing.T) {
	assert.Equal(t, "10x", Outcome{Value: 10}.Label())
	assert.Equal(t, "0.6x", Outcome{Value: 0.6}.Label())
	assert.Equal(t, "0x", Outcome{Value: 0}.Label())
}

func TestOutcomeTable_Rows(t *testing.T) {
	table, err := NewOutcomeTable(testPayTable, nil)
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, len(testPayTable))
	assert.Equal(t, "10x  -  Chance: 3%", rows[0])
	assert.Equal(t, "0.6x  -  Chance: 15%", rows[7])
	assert.Equal(t, "0x  -  Chance: 19%", rows[9])
}
