package engine

// Outcome is the terminal result of a challenge.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
	OutcomeExpired
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeCorrect:
		return "Correct"
	case OutcomeIncorrect:
		return "Incorrect"
	case OutcomeExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// Miss reports whether the outcome costs a life.
func (o Outcome) Miss() bool {
	return o == OutcomeIncorrect || o == OutcomeExpired
}

// RejectReason explains why a candidate resolution was not accepted.
// Rejections are normal outcomes, not errors.
type RejectReason int

const (
	RejectNone              RejectReason = iota
	RejectNotStarted                     // Start has not been called
	RejectPaused                         // Engine is paused
	RejectGameOver                       // Game has ended
	RejectNoActiveChallenge              // Nothing on screen to answer
	RejectAlreadyResolved                // Another resolution won
	RejectStaleChallenge                 // Answer targets a challenge that is no longer active
)

// String returns a human-readable name for the reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "None"
	case RejectNotStarted:
		return "NotStarted"
	case RejectPaused:
		return "Paused"
	case RejectGameOver:
		return "GameOver"
	case RejectNoActiveChallenge:
		return "NoActiveChallenge"
	case RejectAlreadyResolved:
		return "AlreadyResolved"
	case RejectStaleChallenge:
		return "StaleChallenge"
	default:
		return "Unknown"
	}
}

// Verdict is the result of a resolution attempt.
type Verdict struct {
	Accepted bool
	Outcome  Outcome      // Set when accepted
	Reason   RejectReason // Set when rejected
}

func rejected(reason RejectReason) Verdict {
	return Verdict{Reason: reason}
}

// AnswerGate commits at most one resolution per active challenge.
//
// The deadline check, correct answers and incorrect answers all race for the
// same challenge. TryResolve checks and sets in one call with no yield point;
// the engine invokes it with its state lock held, so the first delivered
// candidate wins and every later one is rejected.
type AnswerGate struct {
	accepted uint64
	rejected uint64
}

// TryResolve attempts to resolve challenge id with outcome.
// On success it sets the resolution lock, records the outcome on the challenge
// and moves the state to PhaseShowingResult.
func (g *AnswerGate) TryResolve(s *State, id ChallengeID, outcome Outcome) Verdict {
	var reason RejectReason
	switch {
	case s.Active == nil:
		reason = RejectNoActiveChallenge
	case s.Active.ID != id:
		reason = RejectStaleChallenge
	case s.Phase != PhaseChallengeActive || s.ResolutionLock || s.Active.Resolved():
		reason = RejectAlreadyResolved
	}
	if reason != RejectNone {
		g.rejected++
		return rejected(reason)
	}

	s.ResolutionLock = true
	s.Active.Outcome = outcome
	s.Phase = PhaseShowingResult
	g.accepted++
	return Verdict{Accepted: true, Outcome: outcome}
}

// Counts returns how many attempts were accepted and rejected.
func (g *AnswerGate) Counts() (accepted, rejected uint64) {
	return g.accepted, g.rejected
}
