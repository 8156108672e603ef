package game

import "errors"

// Conditions reported by engine transitions. None of them are fatal; the UI
// turns them into prompts.
var (
	ErrNoActiveRound   = errors.New("no active round")
	ErrNameRequired    = errors.New("player name required")
	ErrEmptyGuess      = errors.New("guess is empty")
	ErrEmptyName       = errors.New("player name is empty")
	ErrNameLocked      = errors.New("player name already set")
	ErrRoundResolved   = errors.New("round already resolved")
	ErrRoundInProgress = errors.New("round still in progress")
	ErrNoVehicles      = errors.New("no playable vehicles")
)
