package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/staff-wars/internal/config"
	"github.com/vovakirdan/staff-wars/internal/engine"
	"github.com/vovakirdan/staff-wars/internal/notes"
	"github.com/vovakirdan/staff-wars/internal/storage"
)

// eventBuffer is the subscription size for one session's event pump.
const eventBuffer = 128

// SessionOptions configure one player's game.
type SessionOptions struct {
	Config     config.Config
	Difficulty string // Preset name recorded in the journal
	Seed       int64  // 0 means time-based; otherwise every game replays the same notes
	User       string // Journal session name; empty means "local"
	Store      *storage.Store
	Logger     *log.Logger
	Clock      engine.Clock // nil means the system clock
}

// Feedback is what the renderer shows about the last resolution.
type Feedback struct {
	Outcome  engine.Outcome
	Expected engine.Answer
	Given    engine.Answer
	Label    string
	Delta    int
}

// Session runs one engine for one player and journals its resolutions.
// Only the engine is safe for concurrent use; the rest is driven from the
// Bubble Tea update loop.
type Session struct {
	opts     SessionOptions
	engine   *engine.Engine
	provider *notes.Provider
	clef     notes.Clef
	level    engine.LevelConfig
	sub      *engine.Subscription
	logger   *log.Logger

	runID      string
	runOpen    bool
	feedback   Feedback
	levelFlash int // Level reached during the current dwell, 0 otherwise
	finalScore int
	gameOver   bool
	revealNext bool // Reveal setting for the next game
}

// NewSession builds the engine and note provider from opts. Nothing runs until Start.
func NewSession(opts SessionOptions) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	span, err := opts.Config.NoteRange()
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	provider, err := notes.NewProvider(span, seed)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(opts.Clock))
	}
	eng := engine.New(provider, engineOpts...)

	level := opts.Config.ToLevelConfig(string(span.Clef))
	return &Session{
		opts:       opts,
		engine:     eng,
		provider:   provider,
		clef:       span.Clef,
		level:      level,
		sub:        eng.Subscribe(eventBuffer),
		logger:     logger,
		revealNext: level.Timing.RevealAnswer,
	}, nil
}

// Start begins the first game and opens its journal run.
func (s *Session) Start() error {
	if err := s.engine.Start(s.level); err != nil {
		return err
	}
	s.beginRun()
	return nil
}

// Restart starts a new game. A changed reveal setting is applied here.
// Callers restart only after game over, so no resolution of the old game
// can still be queued for the journal.
func (s *Session) Restart() error {
	s.endRun()
	if s.opts.Seed != 0 {
		s.provider.Reset()
	}

	var err error
	if s.revealNext != s.level.Timing.RevealAnswer {
		s.level.Timing.RevealAnswer = s.revealNext
		err = s.engine.Start(s.level)
	} else {
		err = s.engine.Reset()
	}
	if err != nil {
		return err
	}

	s.feedback = Feedback{}
	s.levelFlash = 0
	s.gameOver = false
	s.beginRun()
	return nil
}

// Answer submits a note letter for the active challenge.
func (s *Session) Answer(letter string) engine.Verdict {
	v := s.engine.SubmitAnswer(engine.Answer(letter))
	if !v.Accepted {
		s.logger.Debug("answer rejected", "letter", letter, "reason", v.Reason)
	}
	return v
}

// TogglePause pauses a running game or resumes a paused one.
func (s *Session) TogglePause() {
	if s.engine.Snapshot().Paused {
		s.engine.Resume()
		return
	}
	s.engine.Pause()
}

// ToggleReveal flips the reveal-answer setting for the next game.
func (s *Session) ToggleReveal() bool {
	s.revealNext = !s.revealNext
	return s.revealNext
}

// RevealNext reports the reveal setting the next game will use.
func (s *Session) RevealNext() bool {
	return s.revealNext
}

// Tick advances the engine to the current time.
func (s *Session) Tick() {
	s.engine.Tick()
}

// Events returns the engine event stream for this session.
func (s *Session) Events() *engine.Subscription {
	return s.sub
}

// HandleEvent updates feedback and the journal for one engine event.
func (s *Session) HandleEvent(evt engine.Event) {
	switch evt := evt.(type) {
	case engine.ChallengeSpawned:
		s.feedback = Feedback{}
		s.levelFlash = 0
	case engine.ChallengeResolved:
		s.feedback = Feedback{
			Outcome:  evt.Outcome,
			Expected: evt.Expected,
			Given:    evt.Given,
			Label:    evt.Label,
			Delta:    evt.ScoreDelta,
		}
		s.record(evt)
	case engine.LevelUp:
		s.levelFlash = evt.Level
		s.logger.Info("level up", "level", evt.Level, "speed", evt.Speed)
	case engine.GameOver:
		s.gameOver = true
		s.finalScore = evt.FinalScore
		s.endRun()
		s.logger.Info("game over", "score", evt.FinalScore, "level", evt.Level)
	case engine.EngineReset:
		s.feedback = Feedback{}
	}
}

// View is a consistent picture of the session for rendering.
type View struct {
	State      engine.State
	Clef       notes.Clef
	MaxLives   int
	Feedback   Feedback
	LevelFlash int
	GameOver   bool
	FinalScore int
	Reveal     bool // Reveal setting of the running game
	RevealNext bool
}

// View snapshots the engine and the session's feedback.
func (s *Session) View() View {
	return View{
		State:      s.engine.Snapshot(),
		Clef:       s.clef,
		MaxLives:   s.level.Rules.MaxLives,
		Feedback:   s.feedback,
		LevelFlash: s.levelFlash,
		GameOver:   s.gameOver,
		FinalScore: s.finalScore,
		Reveal:     s.level.Timing.RevealAnswer,
		RevealNext: s.revealNext,
	}
}

// GameOver reports whether the current game has ended.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// RunID returns the journal run of the current game, empty without a store.
func (s *Session) RunID() string {
	return s.runID
}

// Close finishes the journal run and stops the engine.
func (s *Session) Close() {
	s.endRun()
	s.engine.Stop()
}

func (s *Session) beginRun() {
	s.runID = ""
	s.runOpen = false
	if s.opts.Store == nil {
		return
	}
	id, err := s.opts.Store.StartRun(storage.Run{
		Session:    s.opts.User,
		Clef:       string(s.clef),
		Difficulty: s.opts.Difficulty,
	})
	if err != nil {
		s.logger.Warn("journal unavailable for this run", "error", err)
		return
	}
	s.runID = id
	s.runOpen = true
}

func (s *Session) endRun() {
	if !s.runOpen {
		return
	}
	s.runOpen = false
	if err := s.opts.Store.FinishRun(s.runID); err != nil {
		s.logger.Warn("could not finish run", "run", s.runID, "error", err)
	}
}

func (s *Session) record(evt engine.ChallengeResolved) {
	if !s.runOpen {
		return
	}
	err := s.opts.Store.RecordResolution(storage.Resolution{
		RunID:       s.runID,
		ChallengeID: string(evt.ID),
		Label:       evt.Label,
		Expected:    string(evt.Expected),
		Given:       string(evt.Given),
		Outcome:     evt.Outcome.String(),
		Elapsed:     evt.Elapsed,
	})
	if err != nil {
		s.logger.Warn("could not record resolution", "challenge", evt.ID, "error", err)
	}
}
