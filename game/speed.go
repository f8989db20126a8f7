package game

import (
	"fmt"
	"strings"
	"time"
)

type Speed int

const (
	SpeedNormal Speed = iota
	SpeedFast
	SpeedInstant
)

// Next cycles Normal -> Fast -> Instant -> Normal.
func (s Speed) Next() Speed {
	switch s {
	case SpeedNormal:
		return SpeedFast
	case SpeedFast:
		return SpeedInstant
	default:
		return SpeedNormal
	}
}

func (s Speed) String() string {
	switch s {
	case SpeedNormal:
		return "NORMAL"
	case SpeedFast:
		return "FAST"
	case SpeedInstant:
		return "INSTANT"
	default:
		return "UNKNOWN"
	}
}

// Label is the speed button text.
func (s Speed) Label() string {
	switch s {
	case SpeedFast:
		return "SPEED: 2x"
	case SpeedInstant:
		return "SPEED: MAX"
	default:
		return "SPEED: 1x"
	}
}

func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Speed) UnmarshalText(b []byte) error {
	v, err := ParseSpeed(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseSpeed(s string) (Speed, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NORMAL":
		return SpeedNormal, nil
	case "FAST":
		return SpeedFast, nil
	case "INSTANT":
		return SpeedInstant, nil
	}
	return SpeedNormal, fmt.Errorf("unknown speed %q", s)
}

// Timing is the presentation schedule for one speed setting.
type Timing struct {
	Flip         time.Duration `json:"flipMs"`
	Stagger      time.Duration `json:"staggerMs"`
	Hold         time.Duration `json:"holdMs"`
	ResultReveal time.Duration `json:"resultRevealMs"`
}

// HoldBand selects one of the two observed result-hold schedules.
type HoldBand string

const (
	HoldBandShort HoldBand = "short" // 1500 / 1000 / 500 ms
	HoldBandLong  HoldBand = "long"  // 2000 / 1500 / 1000 ms
)

func ParseHoldBand(s string) (HoldBand, error) {
	switch HoldBand(strings.ToLower(strings.TrimSpace(s))) {
	case "", HoldBandShort:
		return HoldBandShort, nil
	case HoldBandLong:
		return HoldBandLong, nil
	}
	return HoldBandShort, fmt.Errorf("unknown result hold band %q", s)
}

// TimingTable is indexed by Speed.
type TimingTable [3]Timing

const (
	FlipNormal      = 500 * time.Millisecond
	FlipFast        = 250 * time.Millisecond
	StaggerNormal   = 300 * time.Millisecond
	StaggerFast     = 150 * time.Millisecond
	RevealNormal    = 500 * time.Millisecond
	RevealInstant   = 200 * time.Millisecond
	HoldShortNormal = 1500 * time.Millisecond
	HoldShortFast   = 1000 * time.Millisecond
	HoldShortMax    = 500 * time.Millisecond
	HoldLongNormal  = 2000 * time.Millisecond
	HoldLongFast    = 1500 * time.Millisecond
	HoldLongMax     = 1000 * time.Millisecond
)

// DefaultTimings returns the canonical flip/stagger schedule with the
// requested result-hold band.
func DefaultTimings(band HoldBand) TimingTable {
	t := TimingTable{
		SpeedNormal:  {Flip: FlipNormal, Stagger: StaggerNormal, Hold: HoldShortNormal, ResultReveal: RevealNormal},
		SpeedFast:    {Flip: FlipFast, Stagger: StaggerFast, Hold: HoldShortFast, ResultReveal: RevealNormal},
		SpeedInstant: {Flip: 0, Stagger: 0, Hold: HoldShortMax, ResultReveal: RevealInstant},
	}
	if band == HoldBandLong {
		t[SpeedNormal].Hold = HoldLongNormal
		t[SpeedFast].Hold = HoldLongFast
		t[SpeedInstant].Hold = HoldLongMax
	}
	return t
}

func (t TimingTable) For(s Speed) Timing {
	if s < SpeedNormal || s > SpeedInstant {
		return t[SpeedNormal]
	}
	return t[s]
}
