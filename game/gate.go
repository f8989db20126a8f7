package game

// Action is a user input the engine understands.
type Action string

const (
	ActionPrimary        Action = "play"
	ActionStartRound     Action = "start_round"
	ActionCycleBet       Action = "cycle_bet"
	ActionCycleSpeed     Action = "cycle_speed"
	ActionToggleAutoplay Action = "toggle_autoplay"
	ActionTogglePayTable Action = "toggle_paytable"
)

func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionPrimary, ActionStartRound, ActionCycleBet, ActionCycleSpeed,
		ActionToggleAutoplay, ActionTogglePayTable:
		return a, true
	}
	return "", false
}

// ControlSet is the visibility of every input control plus the button texts
// the presentation layer should show.
type ControlSet struct {
	Primary  bool `json:"primary"`
	Bet      bool `json:"bet"`
	Autoplay bool `json:"autoplay"`
	Speed    bool `json:"speed"`
	PayTable bool `json:"payTable"`

	PrimaryLabel  string `json:"primaryLabel"`
	AutoplayLabel string `json:"autoplayLabel"`
	BetLabel      string `json:"betLabel,omitempty"`
	SpeedLabel    string `json:"speedLabel,omitempty"`
}

// Gate derives the enabled controls from the round state and autoplay flag.
// Outside Idle only the autoplay stop controls stay up, and only while
// autoplay is running.
func Gate(state RoundState, autoplay bool) ControlSet {
	c := ControlSet{
		PrimaryLabel:  "PLAY",
		AutoplayLabel: "AUTO: OFF",
	}
	if autoplay {
		c.PrimaryLabel = "STOP AUTO"
		c.AutoplayLabel = "AUTO: ON"
	}

	if state == StateIdle {
		c.Primary = true
		c.Bet = true
		c.Autoplay = true
		c.Speed = true
		c.PayTable = true
		return c
	}

	if autoplay {
		c.Primary = true
		c.Autoplay = true
	}
	return c
}

// Permits reports whether a user action may reach the engine. The pay table
// popup can be toggled at any time.
func (c ControlSet) Permits(a Action) bool {
	switch a {
	case ActionPrimary, ActionStartRound:
		return c.Primary
	case ActionCycleBet:
		return c.Bet
	case ActionCycleSpeed:
		return c.Speed
	case ActionToggleAutoplay:
		return c.Autoplay
	case ActionTogglePayTable:
		return true
	}
	return false
}
