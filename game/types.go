package game

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CardCount is the number of cards revealed per round (left, middle, right).
const CardCount = 3

// Outcome is one entry of the pay table. Chance is a relative weight, not a
// percentage; weights do not have to sum to 100.
type Outcome struct {
	Value  float64 `json:"value" yaml:"value"`
	Chance float64 `json:"chance" yaml:"chance"`
}

// Label is the text printed on a card face, e.g. "2x" or "0.6x".
func (o Outcome) Label() string {
	return strconv.FormatFloat(o.Value, 'f', -1, 64) + "x"
}

type RoundState int

const (
	StateIdle RoundState = iota
	StateRoundStart
	StateReveal
	StateResult
)

func (s RoundState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRoundStart:
		return "ROUND_START"
	case StateReveal:
		return "REVEAL"
	case StateResult:
		return "RESULT"
	default:
		return "UNKNOWN"
	}
}

func (s RoundState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RoundState) UnmarshalText(b []byte) error {
	for _, st := range []RoundState{StateIdle, StateRoundStart, StateReveal, StateResult} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown round state %q", b)
}

// RoundContext exists from RoundStart until the round returns to Idle.
type RoundContext struct {
	ID        string             `json:"roundId"`
	Outcomes  [CardCount]Outcome `json:"outcomes"`
	Bet       float64            `json:"bet"`
	Speed     Speed              `json:"speed"`
	StartedAt time.Time          `json:"startedAt"`
}

// RoundResult is the settled form of a round, produced on Reveal -> Result.
type RoundResult struct {
	RoundID         string             `json:"roundId"`
	Outcomes        [CardCount]Outcome `json:"outcomes"`
	Bet             float64            `json:"bet"`
	Speed           Speed              `json:"speed"`
	TotalMultiplier decimal.Decimal    `json:"totalMultiplier"`
	Payout          decimal.Decimal    `json:"payout"`
	Text            string             `json:"text"`
	SettledAt       time.Time          `json:"settledAt"`
}
