package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Observer receives round lifecycle notifications. Calls happen while the
// engine holds its lock, so implementations must be quick.
type Observer interface {
	RoundStarted(rc RoundContext)
	RoundCompleted(res RoundResult)
	ActionIgnored(action Action, state RoundState)
}

type nopObserver struct{}

func (nopObserver) RoundStarted(RoundContext)        {}
func (nopObserver) RoundCompleted(RoundResult)       {}
func (nopObserver) ActionIgnored(Action, RoundState) {}

// Settings are the player choices that survive between rounds.
type Settings struct {
	BetIndex int   `json:"betIndex"`
	Speed    Speed `json:"speed"`
}

// Snapshot is a consistent read of the engine for status endpoints.
type Snapshot struct {
	State           RoundState    `json:"state"`
	BetIndex        int           `json:"betIndex"`
	BetAmount       float64       `json:"betAmount"`
	Bets            []float64     `json:"bets"`
	Speed           Speed         `json:"speed"`
	SpeedLabel      string        `json:"speedLabel"`
	Autoplay        bool          `json:"autoplay"`
	PayTableVisible bool          `json:"payTableVisible"`
	Controls        ControlSet    `json:"controls"`
	Round           *RoundContext `json:"round,omitempty"`
	LastResult      *RoundResult  `json:"lastResult,omitempty"`
	Timing          Timing        `json:"timing"`
}

type Option func(*Engine)

func WithTimings(t TimingTable) Option { return func(e *Engine) { e.timings = t } }

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithSleeper replaces the timer used for stagger and hold waits.
func WithSleeper(s Sleeper) Option {
	return func(e *Engine) {
		if s != nil {
			e.sleep = s
		}
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithBetIndex(i int) Option { return func(e *Engine) { e.betIndex = i } }

func WithSpeed(s Speed) Option { return func(e *Engine) { e.speed = s } }

func WithRoundIDs(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// Engine runs the single active round: Idle -> RoundStart -> Reveal ->
// Result -> Idle. All public methods are safe to call from any goroutine;
// correctness rests on the state checks at each entry point.
type Engine struct {
	table     *OutcomeTable
	bets      []float64
	timings   TimingTable
	presenter Presenter
	observer  Observer
	sleep     Sleeper
	log       *zap.SugaredLogger
	newID     func() string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu              sync.Mutex
	state           RoundState
	speed           Speed
	autoplay        bool
	betIndex        int
	round           *RoundContext
	last            *RoundResult
	payTableVisible bool
}

// NewEngine validates the bet ladder and returns an Idle engine.
func NewEngine(table *OutcomeTable, bets []float64, presenter Presenter, opts ...Option) (*Engine, error) {
	if table == nil {
		return nil, ErrEmptyPayTable
	}
	if presenter == nil {
		return nil, ErrNilPresenter
	}
	if err := validateBets(bets); err != nil {
		return nil, err
	}

	e := &Engine{
		table:     table,
		bets:      append([]float64(nil), bets...),
		timings:   DefaultTimings(HoldBandShort),
		presenter: presenter,
		observer:  nopObserver{},
		sleep:     sleepCtx,
		log:       zap.NewNop().Sugar(),
		newID:     func() string { return uuid.NewString() },
		state:     StateIdle,
		speed:     SpeedNormal,
		betIndex:  1,
	}
	if len(bets) < 2 {
		e.betIndex = 0
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.betIndex < 0 || e.betIndex >= len(e.bets) {
		return nil, fmt.Errorf("%w: %d of %d", ErrBetIndexOutOfRange, e.betIndex, len(e.bets))
	}
	if e.speed < SpeedNormal || e.speed > SpeedInstant {
		return nil, fmt.Errorf("invalid speed %d", e.speed)
	}

	e.ctx, e.cancel = context.WithCancel(context.Background())
	return e, nil
}

func validateBets(bets []float64) error {
	if len(bets) == 0 {
		return ErrEmptyBetLadder
	}
	seen := make(map[float64]struct{}, len(bets))
	for _, b := range bets {
		if !(b > 0) {
			return fmt.Errorf("%w: %v", ErrInvalidBet, b)
		}
		if _, dup := seen[b]; dup {
			return fmt.Errorf("%w: duplicate %v", ErrInvalidBet, b)
		}
		seen[b] = struct{}{}
	}
	return nil
}

/* =========================
   ROUND LIFECYCLE
========================= */

// StartRound runs a round to completion on the calling goroutine, then keeps
// going for as long as autoplay chains new rounds. Calling it outside Idle is
// a no-op.
func (e *Engine) StartRound(ctx context.Context) error {
	rc, ok := e.beginRound()
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(e.ctx, cancel)
	defer stop()

	return e.run(ctx, rc)
}

// Launch starts a round in the background and reports whether one was
// started. The state has already left Idle when Launch returns true.
func (e *Engine) Launch() bool {
	e.mu.Lock()
	if e.ctx.Err() != nil {
		e.mu.Unlock()
		return false
	}
	rc, ok := e.beginRoundLocked()
	if ok {
		// Registered under the lock so Close cannot miss this round.
		e.wg.Add(1)
	}
	e.mu.Unlock()
	if !ok {
		return false
	}

	go func() {
		defer e.wg.Done()
		if err := e.run(e.ctx, rc); err != nil && !errors.Is(err, context.Canceled) {
			e.log.Warnw("⚠️  Round aborted", "round", rc.ID, "error", err)
		}
	}()
	return true
}

func (e *Engine) run(ctx context.Context, rc *RoundContext) error {
	for rc != nil {
		if err := e.reveal(ctx, rc); err != nil {
			e.abort(rc)
			return err
		}

		res := e.showResult(rc)

		if err := e.sleep(ctx, e.timings.For(rc.Speed).Hold); err != nil {
			e.abort(rc)
			return err
		}

		e.log.Debugw("🔁 Round finished", "round", res.RoundID)
		rc = e.finish()
	}
	return nil
}

func (e *Engine) beginRound() (*RoundContext, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.beginRoundLocked()
}

func (e *Engine) beginRoundLocked() (*RoundContext, bool) {
	if e.state != StateIdle {
		e.ignoredLocked(ActionStartRound)
		return nil, false
	}

	e.state = StateRoundStart
	e.presenter.SetControls(e.controlsLocked())
	e.presenter.SetResultText("")
	for i := 0; i < CardCount; i++ {
		e.presenter.ResetCard(i)
	}

	rc := &RoundContext{
		ID:        e.newID(),
		Bet:       e.bets[e.betIndex],
		Speed:     e.speed,
		StartedAt: time.Now(),
	}
	for i := range rc.Outcomes {
		rc.Outcomes[i] = e.table.Draw()
	}
	for i, o := range rc.Outcomes {
		e.presenter.SetCardOutcome(i, o)
	}
	e.round = rc

	e.state = StateReveal
	e.observer.RoundStarted(*rc)
	e.log.Infow("🃏 Round started",
		"round", rc.ID,
		"bet", rc.Bet,
		"speed", rc.Speed.String(),
		"autoplay", e.autoplay,
	)
	return rc, true
}

// reveal flips the cards strictly one after another: card i+1's stagger
// starts only after card i's flip has completed.
func (e *Engine) reveal(ctx context.Context, rc *RoundContext) error {
	t := e.timings.For(rc.Speed)
	for i := 0; i < CardCount; i++ {
		if t.Stagger > 0 {
			if err := e.sleep(ctx, t.Stagger); err != nil {
				return err
			}
		}
		select {
		case <-e.presenter.FlipCard(i, t.Flip):
		case <-ctx.Done():
			return ctx.Err()
		}
		e.log.Debugw("🂠 Card revealed", "round", rc.ID, "card", i, "outcome", rc.Outcomes[i].Label())
	}
	return nil
}

func (e *Engine) showResult(rc *RoundContext) RoundResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = StateResult
	res := Settle(*rc)
	e.last = &res

	e.presenter.SetResultText(res.Text)
	e.presenter.RevealResult(e.timings.For(rc.Speed).ResultReveal)
	e.observer.RoundCompleted(res)

	e.log.Infow("💰 Round settled",
		"round", res.RoundID,
		"multiplier", res.TotalMultiplier.String(),
		"payout", res.Payout.StringFixed(2),
	)
	return res
}

// finish moves Result -> Idle and, with autoplay on, starts the next round
// under the same lock so nothing can slip in between.
func (e *Engine) finish() *RoundContext {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.toIdleLocked()
	if !e.autoplay {
		return nil
	}
	next, _ := e.beginRoundLocked()
	return next
}

func (e *Engine) abort(rc *RoundContext) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.round == rc {
		e.toIdleLocked()
	}
}

func (e *Engine) toIdleLocked() {
	e.state = StateIdle
	e.round = nil
	e.payTableVisible = false
	e.presenter.SetPayTableVisible(false)
	e.presenter.SetControls(e.controlsLocked())
}

/* =========================
   INPUT
========================= */

// Dispatch routes a user action through the input gate. It returns false when
// the gate or the engine rejected it.
func (e *Engine) Dispatch(a Action) bool {
	e.mu.Lock()
	controls := Gate(e.state, e.autoplay)
	if !controls.Permits(a) {
		e.ignoredLocked(a)
		e.mu.Unlock()
		return false
	}
	e.mu.Unlock()

	switch a {
	case ActionPrimary:
		return e.PressPrimary()
	case ActionStartRound:
		return e.Launch()
	case ActionCycleBet:
		return e.CycleBet()
	case ActionCycleSpeed:
		return e.CycleSpeed()
	case ActionToggleAutoplay:
		e.ToggleAutoplay()
		return true
	case ActionTogglePayTable:
		e.TogglePayTablePopup()
		return true
	}
	return false
}

// PressPrimary is the main button: it stops autoplay when autoplay is
// running and launches a round otherwise.
func (e *Engine) PressPrimary() bool {
	if e.Autoplay() {
		e.ToggleAutoplay()
		return true
	}
	return e.Launch()
}

// CycleBet advances to the next bet amount, wrapping at the end of the
// ladder. It is accepted only in Idle and Result, and a bet change stops
// autoplay.
func (e *Engine) CycleBet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.settingsMutableLocked() {
		e.ignoredLocked(ActionCycleBet)
		return false
	}
	if e.autoplay {
		e.autoplay = false
		e.log.Infow("⏹️  Autoplay stopped by bet change")
	}
	e.betIndex = (e.betIndex + 1) % len(e.bets)
	e.presenter.SetControls(e.controlsLocked())
	return true
}

// CycleSpeed moves Normal -> Fast -> Instant -> Normal, in Idle and Result only.
func (e *Engine) CycleSpeed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.settingsMutableLocked() {
		e.ignoredLocked(ActionCycleSpeed)
		return false
	}
	e.speed = e.speed.Next()
	e.presenter.SetControls(e.controlsLocked())
	return true
}

// ToggleAutoplay flips the autoplay flag and returns the new value. Turning
// it on while Idle starts a round straight away; turning it off mid-round
// only takes effect at the next Idle transition.
func (e *Engine) ToggleAutoplay() bool {
	e.mu.Lock()
	e.autoplay = !e.autoplay
	on := e.autoplay
	idle := e.state == StateIdle
	e.presenter.SetControls(e.controlsLocked())
	e.mu.Unlock()

	e.log.Infow("🔄 Autoplay toggled", "autoplay", on)
	if on && idle {
		e.Launch()
	}
	return on
}

// TogglePayTablePopup is accepted in any state.
func (e *Engine) TogglePayTablePopup() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.payTableVisible = !e.payTableVisible
	e.presenter.SetPayTableVisible(e.payTableVisible)
	return e.payTableVisible
}

func (e *Engine) settingsMutableLocked() bool {
	return e.state == StateIdle || e.state == StateResult
}

func (e *Engine) ignoredLocked(a Action) {
	e.observer.ActionIgnored(a, e.state)
	e.log.Debugw("Action ignored", "action", string(a), "state", e.state.String())
}

func (e *Engine) controlsLocked() ControlSet {
	c := Gate(e.state, e.autoplay)
	c.BetLabel = BetLabel(e.bets[e.betIndex])
	c.SpeedLabel = e.speed.Label()
	return c
}

// BetLabel is the bet button text, e.g. "BET: $0.5".
func BetLabel(amount float64) string {
	return "BET: $" + strconv.FormatFloat(amount, 'f', -1, 64)
}

/* =========================
   SETTINGS
========================= */

func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Settings{BetIndex: e.betIndex, Speed: e.speed}
}

// ApplySettings restores saved settings. It only applies while Idle and
// reports whether it did.
func (e *Engine) ApplySettings(s Settings) (bool, error) {
	if s.BetIndex < 0 || s.BetIndex >= len(e.bets) {
		return false, fmt.Errorf("%w: %d of %d", ErrBetIndexOutOfRange, s.BetIndex, len(e.bets))
	}
	if s.Speed < SpeedNormal || s.Speed > SpeedInstant {
		return false, fmt.Errorf("invalid speed %d", s.Speed)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle {
		return false, nil
	}
	e.betIndex = s.BetIndex
	e.speed = s.Speed
	e.presenter.SetControls(e.controlsLocked())
	return true, nil
}

/* =========================
   ACCESSORS
========================= */

func (e *Engine) State() RoundState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) BetAmount() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bets[e.betIndex]
}

func (e *Engine) BetIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.betIndex
}

func (e *Engine) Bets() []float64 {
	return append([]float64(nil), e.bets...)
}

func (e *Engine) Speed() Speed {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

func (e *Engine) SpeedLabel() string {
	return e.Speed().Label()
}

func (e *Engine) Autoplay() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.autoplay
}

func (e *Engine) PayTableVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.payTableVisible
}

func (e *Engine) Controls() ControlSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controlsLocked()
}

// LastResult returns the most recently settled round, if any.
func (e *Engine) LastResult() (RoundResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return RoundResult{}, false
	}
	return *e.last, true
}

func (e *Engine) Table() *OutcomeTable {
	return e.table
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		State:           e.state,
		BetIndex:        e.betIndex,
		BetAmount:       e.bets[e.betIndex],
		Bets:            append([]float64(nil), e.bets...),
		Speed:           e.speed,
		SpeedLabel:      e.speed.Label(),
		Autoplay:        e.autoplay,
		PayTableVisible: e.payTableVisible,
		Controls:        e.controlsLocked(),
		Timing:          e.timings.For(e.speed),
	}
	if e.round != nil {
		rc := *e.round
		s.Round = &rc
	}
	if e.last != nil {
		res := *e.last
		s.LastResult = &res
	}
	return s
}

// Wait blocks until every round started with Launch has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close aborts in-flight rounds and waits for them to unwind.
func (e *Engine) Close() {
	e.mu.Lock()
	e.cancel()
	e.mu.Unlock()
	e.wg.Wait()
}
