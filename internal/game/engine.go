// internal/game/engine.go
//
// Round engine for the taillight challenge.
// Responsibilities:
//   - Pick a random playable vehicle for a new round.
//   - Track light level and its high-water mark.
//   - Judge guesses (deferring until a player name exists).
//   - Track state transitions: idle → playing → resolved → playing.
//
// Notes:
//   - Every transition takes a Session value and returns the next one plus
//     any Effects; nothing here touches storage or logs.
//   - Vehicles are passed in on each call; the round refers to its vehicle
//     by catalog index, which VehicleRemoved keeps consistent.
package game

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/robalobadob/taillight/internal/catalog"
)

// Picker returns an index in [0, n). n is always > 0.
type Picker func(n int) int

// Engine applies round transitions.
type Engine struct {
	pick Picker
}

// NewEngine constructs an Engine. A nil picker selects uniformly at random
// using crypto/rand.
func NewEngine(pick Picker) *Engine {
	if pick == nil {
		pick = cryptoPick
	}
	return &Engine{pick: pick}
}

// SelectRandom starts a round on a uniformly chosen playable vehicle.
// Session totals are kept. With no playable vehicles the session is left
// without a round and ErrNoVehicles is returned.
func (e *Engine) SelectRandom(s Session, vehicles []catalog.Vehicle) (Session, error) {
	s = s.clone()
	playable := make([]int, 0, len(vehicles))
	for i, v := range vehicles {
		if v.Playable() {
			playable = append(playable, i)
		}
	}
	if len(playable) == 0 {
		s.Round = nil
		return s, ErrNoVehicles
	}
	idx := playable[e.pick(len(playable))]
	s.Round = &Round{
		VehicleIndex: idx,
		VehicleID:    vehicles[idx].ID,
		Outcome:      OutcomePending,
	}
	return s, nil
}

// SetLight moves the light slider. Values are clamped to [0,100]; the
// high-water mark only ever rises.
func (e *Engine) SetLight(s Session, percent int) (Session, error) {
	if err := playing(s); err != nil {
		return s, err
	}
	s = s.clone()
	p := ClampLight(percent)
	s.Round.Light = p
	if p > s.Round.HighWater {
		s.Round.HighWater = p
	}
	return s, nil
}

// SubmitGuess records a guess and judges it.
//
// Validation rules:
//   - A round must be playing.
//   - The guess must be non-blank.
//   - A player name must exist; otherwise the guess is kept on the round
//     (AwaitingName) and ErrNameRequired is returned. SetPlayerName resumes it.
func (e *Engine) SubmitGuess(s Session, vehicles []catalog.Vehicle, text string) (Session, []Effect, error) {
	if err := playing(s); err != nil {
		return s, nil, err
	}
	if strings.TrimSpace(text) == "" {
		return s, nil, ErrEmptyGuess
	}
	if s.Round.VehicleIndex < 0 || s.Round.VehicleIndex >= len(vehicles) {
		return s, nil, ErrNoActiveRound
	}
	s = s.clone()
	s.Round.Guess = text
	if s.PlayerName == "" {
		s.Round.AwaitingName = true
		return s, nil, ErrNameRequired
	}
	return e.judge(s, vehicles)
}

// SetPlayerName establishes the session's player name. The name is sticky:
// once set it can only be cleared by Reinitialize. If a guess was waiting
// for the name, it is judged now and its effects returned.
func (e *Engine) SetPlayerName(s Session, vehicles []catalog.Vehicle, name string) (Session, []Effect, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, nil, ErrEmptyName
	}
	if s.PlayerName != "" {
		return s, nil, ErrNameLocked
	}
	s = s.clone()
	s.PlayerName = name

	r := s.Round
	if r == nil || !r.AwaitingName || r.Outcome != OutcomePending {
		return s, nil, nil
	}
	if r.VehicleIndex < 0 || r.VehicleIndex >= len(vehicles) {
		r.AwaitingName = false
		return s, nil, ErrNoActiveRound
	}
	return e.judge(s, vehicles)
}

// judge resolves the (already cloned) session's round. A wrong answer
// still counts as a played round and still records the player's standing.
func (e *Engine) judge(s Session, vehicles []catalog.Vehicle) (Session, []Effect, error) {
	r := s.Round
	r.AwaitingName = false
	if IsMatch(r.Guess, vehicles[r.VehicleIndex]) {
		r.Outcome = OutcomeCorrect
		r.Points = Points(r.HighWater)
		s.TotalScore += r.Points
	} else {
		r.Outcome = OutcomeIncorrect
		r.Points = 0
	}
	s.RoundsPlayed++
	return s, []Effect{{
		Kind:   EffectRecordScore,
		Name:   s.PlayerName,
		Score:  s.TotalScore,
		Rounds: s.RoundsPlayed,
	}}, nil
}

// Advance moves on from a resolved round to a fresh random vehicle. With no
// round at all it simply selects one. A round still in play is not skipped.
func (e *Engine) Advance(s Session, vehicles []catalog.Vehicle) (Session, error) {
	if s.Phase() == PhasePlaying {
		return s, ErrRoundInProgress
	}
	return e.SelectRandom(s, vehicles)
}

// ResetGame zeroes the running totals, keeps the player name and starts a
// new round.
func (e *Engine) ResetGame(s Session, vehicles []catalog.Vehicle) (Session, error) {
	s = s.clone()
	s.TotalScore = 0
	s.RoundsPlayed = 0
	return e.SelectRandom(s, vehicles)
}

// Reinitialize returns a blank session and asks for persisted data to be
// cleared.
func (e *Engine) Reinitialize() (Session, []Effect) {
	return Session{}, []Effect{{Kind: EffectClearStorage}}
}

// VehicleRemoved keeps the round's catalog index valid after the vehicle at
// index was deleted. Removing the active vehicle ends the round.
func (e *Engine) VehicleRemoved(s Session, index int) Session {
	if s.Round == nil {
		return s
	}
	s = s.clone()
	switch {
	case s.Round.VehicleIndex == index:
		s.Round = nil
	case s.Round.VehicleIndex > index:
		s.Round.VehicleIndex--
	}
	return s
}

// playing checks that s has a round accepting input.
func playing(s Session) error {
	switch s.Phase() {
	case PhaseIdle:
		return ErrNoActiveRound
	case PhaseResolved:
		return ErrRoundResolved
	}
	return nil
}

// cryptoPick returns a cryptographically random index in [0, n).
func cryptoPick(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}
