package ws

import (
	"sync"
	"time"

	"cardRevealServer/game"
	"cardRevealServer/logger"

	"go.uber.org/zap"
)

/* =========================
   SERVER -> CLIENT MESSAGES
========================= */

const (
	MsgSnapshot        = "snapshot"
	MsgPayTable        = "paytable"
	MsgCardReset       = "card_reset"
	MsgCardOutcome     = "card_outcome"
	MsgCardFlip        = "card_flip"
	MsgControls        = "controls"
	MsgResultText      = "result_text"
	MsgResultReveal    = "result_reveal"
	MsgPayTableVisible = "paytable_visible"
	MsgSettings        = "settings"
	MsgActionResult    = "action_result"
	MsgError           = "error"
)

type CardResetData struct {
	Index int `json:"index"`
}

type CardOutcomeData struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type CardFlipData struct {
	Index      int    `json:"index"`
	FlipID     uint64 `json:"flipId"`
	DurationMs int64  `json:"durationMs"`
}

type ResultTextData struct {
	Text string `json:"text"`
}

type ResultRevealData struct {
	DurationMs int64 `json:"durationMs"`
}

type VisibleData struct {
	Visible bool `json:"visible"`
}

// Broadcaster is the part of the Hub the presenter needs.
type Broadcaster interface {
	Broadcast(msg Message)
	ClientCount() int
}

// Presenter drives remote clients as the engine's visual layer. A flip
// completes when any client acks it with flip_done, or when its duration
// (plus a grace period while clients are connected) has passed.
type Presenter struct {
	out       Broadcaster
	grace     time.Duration
	onTimeout func()
	log       *zap.SugaredLogger

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan struct{}
}

func NewPresenter(out Broadcaster, grace time.Duration) *Presenter {
	return &Presenter{
		out:       out,
		grace:     grace,
		onTimeout: func() {},
		log:       logger.Named("presenter"),
		pending:   make(map[uint64]chan struct{}),
	}
}

// OnAckTimeout is called when a flip is completed by its timer while clients
// were connected.
func (p *Presenter) OnAckTimeout(fn func()) {
	if fn != nil {
		p.onTimeout = fn
	}
}

func (p *Presenter) ResetCard(index int) {
	p.out.Broadcast(Message{Type: MsgCardReset, Data: CardResetData{Index: index}})
}

func (p *Presenter) SetCardOutcome(index int, o game.Outcome) {
	p.out.Broadcast(Message{Type: MsgCardOutcome, Data: CardOutcomeData{
		Index: index,
		Value: o.Value,
		Label: o.Label(),
	}})
}

func (p *Presenter) FlipCard(index int, duration time.Duration) <-chan struct{} {
	if duration <= 0 {
		p.out.Broadcast(Message{Type: MsgCardFlip, Data: CardFlipData{Index: index}})
		return game.Completed()
	}

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	done := make(chan struct{})
	p.pending[id] = done
	p.mu.Unlock()

	p.out.Broadcast(Message{Type: MsgCardFlip, Data: CardFlipData{
		Index:      index,
		FlipID:     id,
		DurationMs: duration.Milliseconds(),
	}})

	wait := duration
	watched := p.out.ClientCount() > 0
	if watched {
		wait += p.grace
	}
	time.AfterFunc(wait, func() {
		if p.complete(id) && watched {
			p.log.Warnf("⏱️  Flip %d (card %d) not acknowledged within %v", id, index, wait)
			p.onTimeout()
		}
	})

	return done
}

// Ack completes a pending flip. It reports false for unknown or already
// completed flips.
func (p *Presenter) Ack(flipID uint64) bool {
	return p.complete(flipID)
}

// Pending returns the number of flips still waiting for completion.
func (p *Presenter) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *Presenter) complete(id uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	done, ok := p.pending[id]
	if !ok {
		return false
	}
	delete(p.pending, id)
	close(done)
	return true
}

func (p *Presenter) SetControls(c game.ControlSet) {
	p.out.Broadcast(Message{Type: MsgControls, Data: c})
}

func (p *Presenter) SetResultText(text string) {
	p.out.Broadcast(Message{Type: MsgResultText, Data: ResultTextData{Text: text}})
}

func (p *Presenter) RevealResult(duration time.Duration) {
	p.out.Broadcast(Message{Type: MsgResultReveal, Data: ResultRevealData{DurationMs: duration.Milliseconds()}})
}

func (p *Presenter) SetPayTableVisible(visible bool) {
	p.out.Broadcast(Message{Type: MsgPayTableVisible, Data: VisibleData{Visible: visible}})
}
