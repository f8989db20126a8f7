package game

import "time"

// Presenter is the visual layer driven by the engine. Calls are made in round
// order and implementations must not call back into the Engine from inside
// them.
type Presenter interface {
	ResetCard(index int)
	SetCardOutcome(index int, o Outcome)
	// FlipCard starts the flip animation and returns a channel that is closed
	// once it has finished. A zero duration must return an already closed
	// channel.
	FlipCard(index int, duration time.Duration) <-chan struct{}
	SetControls(c ControlSet)
	SetResultText(text string)
	// RevealResult starts the cosmetic result animation; it does not block.
	RevealResult(duration time.Duration)
	SetPayTableVisible(visible bool)
}

var closedSignal = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Completed returns an already closed completion signal.
func Completed() <-chan struct{} {
	return closedSignal
}

// NopPresenter completes every flip immediately and draws nothing.
type NopPresenter struct{}

func (NopPresenter) ResetCard(int)                               {}
func (NopPresenter) SetCardOutcome(int, Outcome)                 {}
func (NopPresenter) FlipCard(int, time.Duration) <-chan struct{} { return Completed() }
func (NopPresenter) SetControls(ControlSet)                      {}
func (NopPresenter) SetResultText(string)                        {}
func (NopPresenter) RevealResult(time.Duration)                  {}
func (NopPresenter) SetPayTableVisible(bool)                     {}
