package config

import (
	"fmt"
	"os"

	"cardRevealServer/game"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// OutcomeEntry is one pay table row as written in YAML.
type OutcomeEntry struct {
	Value  float64 `yaml:"value" validate:"gte=0"`
	Chance float64 `yaml:"chance" validate:"gt=0"`
}

// PayTable is the game configuration file:
//
//	bets: [0.5, 1, 2, 5, 10]
//	outcomes:
//	  - {value: 10, chance: 3}
//	  - {value: 0, chance: 19}
type PayTable struct {
	Bets     []float64      `yaml:"bets" validate:"required,min=1,unique,dive,gt=0"`
	Outcomes []OutcomeEntry `yaml:"outcomes" validate:"required,min=1,dive"`
}

func DefaultPayTable() PayTable {
	return PayTable{
		Bets:     append([]float64(nil), DefaultBets...),
		Outcomes: append([]OutcomeEntry(nil), DefaultOutcomes...),
	}
}

// LoadPayTable reads and validates a YAML pay table. An empty path returns
// the built-in table.
func LoadPayTable(path string) (PayTable, error) {
	if path == "" {
		return DefaultPayTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return PayTable{}, fmt.Errorf("failed to read pay table: %w", err)
	}
	return ParsePayTable(data)
}

func ParsePayTable(data []byte) (PayTable, error) {
	var pt PayTable
	if err := yaml.Unmarshal(data, &pt); err != nil {
		return PayTable{}, fmt.Errorf("failed to parse pay table: %w", err)
	}
	if err := pt.Validate(); err != nil {
		return PayTable{}, err
	}
	return pt, nil
}

func (pt PayTable) Validate() error {
	if err := validate.Struct(pt); err != nil {
		return fmt.Errorf("invalid pay table: %w", err)
	}
	return nil
}

// GameOutcomes converts the rows to engine outcomes, keeping their order.
func (pt PayTable) GameOutcomes() []game.Outcome {
	out := make([]game.Outcome, len(pt.Outcomes))
	for i, o := range pt.Outcomes {
		out[i] = game.Outcome{Value: o.Value, Chance: o.Chance}
	}
	return out
}

// Build validates the file and constructs the outcome table.
func (pt PayTable) Build(rnd func() float64) (*game.OutcomeTable, error) {
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	return game.NewOutcomeTable(pt.GameOutcomes(), rnd)
}
