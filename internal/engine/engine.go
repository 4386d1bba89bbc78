package engine

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Engine orchestrates the challenge cycle.
//
// Every entry point (commands, ticks, timer firings) runs to completion under a
// single mutex, so within one delivered event the reaction, including the
// AnswerGate check-and-set, is atomic with respect to every other event.
type Engine struct {
	mu       sync.Mutex
	clock    Clock
	provider Provider
	logger   *log.Logger

	cfg     LevelConfig
	keeper  ScoreKeeper
	gate    AnswerGate
	spawner *SpawnScheduler
	state   State
	pending *Prompt // Prompt prefetched by Start for the first spawn

	lastTick time.Time
	pausedAt time.Time

	dwell     Timer
	dwellSeq  uint64
	dwellDue  time.Time
	dwellLeft time.Duration

	subs    map[uint64]*Subscription
	nextSub uint64
	stopped bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the logger. Defaults to a logger that discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an idle engine that draws challenges from provider.
func New(provider Provider, opts ...Option) *Engine {
	e := &Engine{
		clock:    NewSystemClock(),
		provider: provider,
		logger:   log.New(io.Discard),
		subs:     make(map[uint64]*Subscription),
		state:    State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.spawner = NewSpawnScheduler(e.clock, &e.mu, func() uint64 {
		return e.state.SpawnGeneration
	})
	return e
}

// Start begins a fresh game with cfg. The configuration and the provider's
// first challenge are validated before any state changes, so a failed Start
// leaves the engine as it was. Calling Start on a running engine restarts it.
func (e *Engine) Start(cfg LevelConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("engine: start: %w", err)
	}
	if e.provider == nil {
		return fmt.Errorf("engine: start: %w: no provider", ErrProviderEmpty)
	}
	prompt, err := e.provider.Next(cfg)
	if err != nil {
		return fmt.Errorf("engine: start: %w: %w", ErrProviderEmpty, err)
	}
	if prompt.Answer == "" {
		return fmt.Errorf("engine: start: %w: empty answer", ErrProviderEmpty)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return fmt.Errorf("engine: start: %w", ErrStopped)
	}

	e.cancelTimersLocked()
	e.cfg = cfg
	e.keeper = NewScoreKeeper(cfg.Rules)
	e.pending = &prompt
	e.state = State{
		Phase:           PhaseAwaitingSpawn,
		Standing:        e.keeper.Initial(),
		SpawnGeneration: e.state.SpawnGeneration,
	}

	e.logger.Info("game started", "level", cfg.Name, "speed", e.state.Speed, "lives", e.state.Lives)
	e.enterAwaitingSpawnLocked()
	return nil
}

// Tick advances the active challenge by the time elapsed since the previous
// tick and resolves it as expired when it reaches the deadline.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	last := e.lastTick
	e.lastTick = now

	if e.state.Paused || e.state.Phase != PhaseChallengeActive || e.state.Active == nil {
		return
	}

	delta := ClampDelta(now.Sub(last), e.cfg.Timing.MaxFrameDelta)
	ch := e.state.Active
	next, crossed := Advance(ch.Progress, delta, e.state.Speed, e.cfg.DeadlineDistance)
	ch.Progress = next
	if !crossed {
		return
	}

	v := e.gate.TryResolve(&e.state, ch.ID, OutcomeExpired)
	if !v.Accepted {
		// An answer already won this challenge
		e.logger.Debug("deadline cross dropped", "challenge", ch.ID, "reason", v.Reason)
		return
	}
	e.resolveLocked()
}

// SubmitAnswer answers the active challenge with candidate.
func (e *Engine) SubmitAnswer(candidate Answer) Verdict {
	e.mu.Lock()
	defer e.mu.Unlock()

	var id ChallengeID
	if e.state.Active != nil {
		id = e.state.Active.ID
	}
	return e.submitLocked(id, candidate)
}

// SubmitAnswerTo answers a specific challenge. Answers aimed at a challenge
// that is no longer active are rejected with RejectStaleChallenge.
func (e *Engine) SubmitAnswerTo(id ChallengeID, candidate Answer) Verdict {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.submitLocked(id, candidate)
}

func (e *Engine) submitLocked(id ChallengeID, candidate Answer) Verdict {
	var reason RejectReason
	switch {
	case e.stopped, e.state.Phase == PhaseIdle:
		reason = RejectNotStarted
	case e.state.Phase == PhaseGameOver:
		reason = RejectGameOver
	case e.state.Paused:
		reason = RejectPaused
	}
	if reason != RejectNone {
		e.logger.Debug("answer rejected", "answer", candidate, "reason", reason)
		return rejected(reason)
	}

	outcome := OutcomeIncorrect
	if e.state.Active != nil && candidate == e.state.Active.Answer {
		outcome = OutcomeCorrect
	}

	v := e.gate.TryResolve(&e.state, id, outcome)
	if !v.Accepted {
		e.logger.Debug("answer rejected", "answer", candidate, "challenge", id, "reason", v.Reason)
		return v
	}
	e.state.Active.Given = candidate
	e.resolveLocked()
	return v
}

// resolveLocked applies scoring for the outcome the gate just accepted,
// emits the resulting events and arms the dwell timer.
func (e *Engine) resolveLocked() {
	ch := e.state.Active
	var d Delta
	if ch.Outcome == OutcomeCorrect {
		e.state.Standing, d = e.keeper.OnCorrect(e.state.Standing)
	} else {
		e.state.Standing, d = e.keeper.OnIncorrect(e.state.Standing)
	}

	e.logger.Debug("challenge resolved",
		"challenge", ch.ID,
		"label", ch.Label,
		"outcome", ch.Outcome,
		"score", e.state.Score,
		"lives", e.state.Lives,
	)

	e.emitLocked(ChallengeResolved{
		ID:         ch.ID,
		Outcome:    ch.Outcome,
		ScoreDelta: d.Points,
		Expected:   ch.Answer,
		Given:      ch.Given,
		Label:      ch.Label,
		Score:      e.state.Score,
		Lives:      e.state.Lives,
		Elapsed:    e.clock.Now().Sub(ch.SpawnedAt) - ch.PausedFor,
	})
	if d.LeveledUp {
		e.logger.Info("level up", "level", e.state.Level, "speed", e.state.Speed)
		e.emitLocked(LevelUp{Level: e.state.Level, Speed: e.state.Speed})
	}
	if d.LifeGained {
		e.emitLocked(LifeGained{Lives: e.state.Lives})
	}

	e.armDwellLocked(e.cfg.Timing.DwellFor(ch.Outcome))
}

// enterAwaitingSpawnLocked starts a new spawn cycle with a fresh generation.
func (e *Engine) enterAwaitingSpawnLocked() {
	e.state.Phase = PhaseAwaitingSpawn
	e.state.Active = nil
	e.state.ResolutionLock = false
	e.state.SpawnGeneration++
	if e.state.Paused {
		return
	}
	e.spawner.Arm(e.state.SpawnGeneration, e.cfg.Timing.SpawnDelay, e.spawnLocked)
}

// spawnLocked runs when the spawn timer for generation fires.
func (e *Engine) spawnLocked(generation uint64) {
	if e.stopped || e.state.Phase != PhaseAwaitingSpawn || e.state.Paused {
		return
	}

	var prompt Prompt
	if e.pending != nil {
		prompt = *e.pending
		e.pending = nil
	} else {
		p, err := e.provider.Next(e.cfg)
		if err != nil || p.Answer == "" {
			// Never activate an unresolvable challenge; retry on a new generation
			e.logger.Warn("provider failed, retrying spawn", "generation", generation, "error", err)
			e.enterAwaitingSpawnLocked()
			return
		}
		prompt = p
	}

	now := e.clock.Now()
	ch := &Challenge{
		ID:        ChallengeID(uuid.NewString()),
		Answer:    prompt.Answer,
		Label:     prompt.Label,
		SpawnedAt: now,
	}
	e.state.Active = ch
	e.state.Phase = PhaseChallengeActive
	e.state.ResolutionLock = false
	e.lastTick = now

	e.emitLocked(ChallengeSpawned{
		ID:         ch.ID,
		Answer:     ch.Answer,
		Label:      ch.Label,
		Generation: generation,
		Speed:      e.state.Speed,
	})
}

// armDwellLocked schedules the end of the ShowingResult phase.
func (e *Engine) armDwellLocked(d time.Duration) {
	e.stopDwellLocked()
	e.dwellSeq++
	seq := e.dwellSeq
	e.dwellDue = e.clock.Now().Add(d)
	e.dwell = e.clock.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.finishDwellLocked(seq)
	})
}

func (e *Engine) stopDwellLocked() {
	if e.dwell != nil {
		e.dwell.Stop()
		e.dwell = nil
	}
}

// finishDwellLocked leaves ShowingResult for the next cycle or GameOver.
func (e *Engine) finishDwellLocked(seq uint64) {
	if seq != e.dwellSeq || e.stopped || e.state.Paused || e.state.Phase != PhaseShowingResult {
		e.logger.Debug("stale dwell timer ignored", "seq", seq)
		return
	}
	e.dwell = nil

	if e.state.Lives == 0 {
		e.state.Phase = PhaseGameOver
		e.state.Active = nil
		e.logger.Info("game over", "score", e.state.Score, "level", e.state.Level)
		e.emitLocked(GameOver{FinalScore: e.state.Score, Level: e.state.Level})
		return
	}
	e.enterAwaitingSpawnLocked()
}

// Pause freezes the game. Returns false if there was nothing to pause.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped || e.state.Paused {
		return false
	}
	switch e.state.Phase {
	case PhaseIdle, PhaseGameOver:
		return false
	}

	e.state.Paused = true
	e.pausedAt = e.clock.Now()
	e.spawner.Cancel()
	if e.dwell != nil {
		e.dwellLeft = max(0, e.dwellDue.Sub(e.clock.Now()))
		e.stopDwellLocked()
		e.dwellSeq++ // Invalidate a callback that may already be waiting on the lock
	}

	e.emitLocked(EnginePaused{})
	return true
}

// Resume continues a paused game. Returns false if the engine was not paused.
func (e *Engine) Resume() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped || !e.state.Paused {
		return false
	}
	e.state.Paused = false
	e.lastTick = e.clock.Now()

	switch e.state.Phase {
	case PhaseChallengeActive:
		if e.state.Active != nil {
			e.state.Active.PausedFor += e.lastTick.Sub(e.pausedAt)
		}
	case PhaseAwaitingSpawn:
		e.enterAwaitingSpawnLocked()
	case PhaseShowingResult:
		e.armDwellLocked(e.dwellLeft)
	}

	e.emitLocked(EngineResumed{})
	return true
}

// Reset abandons the current game and starts over with the last configuration.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return fmt.Errorf("engine: reset: %w", ErrStopped)
	}
	if e.state.Phase == PhaseIdle {
		return fmt.Errorf("engine: reset: %w", ErrNotStarted)
	}

	e.cancelTimersLocked()
	e.state.Standing = e.keeper.Initial()
	e.state.Paused = false
	e.state.Active = nil

	e.logger.Info("game reset")
	e.emitLocked(EngineReset{Lives: e.state.Lives, Speed: e.state.Speed})
	e.enterAwaitingSpawnLocked()
	return nil
}

// Stop tears the engine down: timers are cancelled and subscriptions closed.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}
	e.stopped = true
	acc, rej := e.gate.Counts()
	e.logger.Debug("engine stopped",
		"accepted", acc,
		"rejected", rej,
		"stale_spawns", e.spawner.Discarded(),
		"spawn_pending", e.spawner.Armed(),
	)
	e.cancelTimersLocked()
	for id, sub := range e.subs {
		sub.close()
		delete(e.subs, id)
	}
}

func (e *Engine) cancelTimersLocked() {
	e.spawner.Cancel()
	e.stopDwellLocked()
	e.dwellSeq++
}

// Snapshot returns a copy of the current state for renderers.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Config returns the configuration of the current game.
func (e *Engine) Config() LevelConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Subscribe registers a new event subscriber with the given buffer size.
// Subscribing to a stopped engine returns an already-closed subscription.
func (e *Engine) Subscribe(buffer int) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextSub++
	sub := newSubscription(e.nextSub, buffer)
	if e.stopped {
		sub.close()
		return sub
	}
	e.subs[sub.id] = sub
	return sub
}

// Unsubscribe removes and closes a subscription. Safe to call more than once.
func (e *Engine) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.subs, sub.id)
	sub.close()
}

func (e *Engine) emitLocked(evt Event) {
	for _, sub := range e.subs {
		sub.deliver(evt)
	}
}
