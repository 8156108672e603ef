// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - Phase / Outcome: where a round stands.
//   - Round: transient per-vehicle state.
//   - Session: running totals plus the active round.
//   - Effect: side effects the session owner must apply after a transition.

package game

// Phase is the coarse state of the session's round.
//   - "idle":     no vehicle selected (empty catalog or active vehicle removed).
//   - "playing":  a vehicle is on screen and accepts light and guesses.
//   - "resolved": the guess was judged; only advancing is possible.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePlaying  Phase = "playing"
	PhaseResolved Phase = "resolved"
)

// Outcome is the judgment of a round.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// Round holds the state for one vehicle.
type Round struct {
	VehicleIndex int     // Position of the vehicle in the catalog.
	VehicleID    string  // Stable id, for display and logs.
	Light        int     // Current light level, 0–100.
	HighWater    int     // Highest light level reached; the only scoring input.
	Guess        string  // Last submitted guess text.
	AwaitingName bool    // Guess is held until a player name is supplied.
	Outcome      Outcome // pending until judged.
	Points       int     // Points earned when judged correct.
}

// Session is the process-wide game state. It is a value: engine
// transitions take a Session and return the next one.
type Session struct {
	TotalScore   int
	RoundsPlayed int
	PlayerName   string
	Round        *Round // nil when no vehicle is active.
}

// Phase reports the session's current phase.
func (s Session) Phase() Phase {
	switch {
	case s.Round == nil:
		return PhaseIdle
	case s.Round.Outcome == OutcomePending:
		return PhasePlaying
	default:
		return PhaseResolved
	}
}

// CurrentPoints is what the player would earn if judged correct now.
// Zero when there is no round.
func (s Session) CurrentPoints() int {
	if s.Round == nil {
		return 0
	}
	return Points(s.Round.HighWater)
}

// clone copies the session so callers' values are never mutated.
func (s Session) clone() Session {
	if s.Round != nil {
		r := *s.Round
		s.Round = &r
	}
	return s
}

// EffectKind names a side effect requested by a transition.
type EffectKind string

const (
	// EffectRecordScore: write Name/Score/Rounds to the leaderboard and persist it.
	EffectRecordScore EffectKind = "record_score"
	// EffectClearStorage: drop the persisted catalog and leaderboard.
	EffectClearStorage EffectKind = "clear_storage"
)

// Effect is a side effect the session owner applies after a transition.
type Effect struct {
	Kind   EffectKind
	Name   string
	Score  int
	Rounds int
}
