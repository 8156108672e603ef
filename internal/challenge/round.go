package challenge

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalobadob/taillight/internal/game"
)

// RoundView is what the renderer needs for the active round. The answer is
// only revealed once the round is resolved.
type RoundView struct {
	VehicleIndex  int          `json:"vehicleIndex"`
	VehicleID     string       `json:"vehicleId"`
	Photo         string       `json:"photo"`
	Mask          string       `json:"mask"`
	Light         int          `json:"light"`
	HighWater     int          `json:"highWater"`
	CurrentPoints int          `json:"currentPoints"`
	MaskOpacity   float64      `json:"maskOpacity"`
	Brightness    float64      `json:"brightness"`
	Guess         string       `json:"guess,omitempty"`
	AwaitingName  bool         `json:"awaitingName"`
	Outcome       game.Outcome `json:"outcome"`
	Points        int          `json:"points"`
	Answer        string       `json:"answer,omitempty"`
	Feedback      string       `json:"feedback,omitempty"`
}

// State is a snapshot of the session for the UI.
type State struct {
	Phase        game.Phase `json:"phase"`
	PlayerName   string     `json:"playerName"`
	TotalScore   int        `json:"totalScore"`
	RoundsPlayed int        `json:"roundsPlayed"`
	RoundNumber  int        `json:"roundNumber"`
	VehicleCount int        `json:"vehicleCount"`
	Round        *RoundView `json:"round,omitempty"`
}

// State returns the current snapshot.
func (c *Challenge) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

func (c *Challenge) view() State {
	s := c.session
	st := State{
		Phase:        s.Phase(),
		PlayerName:   s.PlayerName,
		TotalScore:   s.TotalScore,
		RoundsPlayed: s.RoundsPlayed,
		RoundNumber:  s.RoundsPlayed + 1,
		VehicleCount: c.catalog.Len(),
	}
	r := s.Round
	if r == nil {
		return st
	}
	v, err := c.catalog.At(r.VehicleIndex)
	if err != nil {
		return st
	}
	rv := &RoundView{
		VehicleIndex:  r.VehicleIndex,
		VehicleID:     r.VehicleID,
		Photo:         v.Photo,
		Mask:          v.Mask,
		Light:         r.Light,
		HighWater:     r.HighWater,
		CurrentPoints: s.CurrentPoints(),
		MaskOpacity:   game.MaskOpacity(r.Light),
		Brightness:    game.Brightness(r.Light),
		Guess:         r.Guess,
		AwaitingName:  r.AwaitingName,
		Outcome:       r.Outcome,
		Points:        r.Points,
	}
	switch r.Outcome {
	case game.OutcomeCorrect:
		rv.Answer = v.Name
		rv.Feedback = fmt.Sprintf("Correct! +%d points", r.Points)
	case game.OutcomeIncorrect:
		rv.Answer = v.Name
		rv.Feedback = fmt.Sprintf("Wrong! It was a %s", v.Name)
	}
	st.Round = rv
	return st
}

// SetLight moves the light slider for the active round.
func (c *Challenge) SetLight(percent int) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.engine.SetLight(c.session, percent)
	if err != nil {
		return c.view(), err
	}
	c.session = next
	return c.view(), nil
}

// SubmitGuess judges text against the active vehicle. Without a player name
// it returns game.ErrNameRequired and keeps the guess pending.
func (c *Challenge) SubmitGuess(ctx context.Context, text string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activity.Infof("Check answer clicked")
	c.activity.Infof("Guess value: %q", text)

	next, effects, err := c.engine.SubmitGuess(c.session, c.catalog.List(), text)
	switch {
	case errors.Is(err, game.ErrNameRequired):
		c.session = next
		c.activity.Infof("No player name yet, asking for one")
		return c.view(), err
	case err != nil:
		c.activity.Errorf("No valid guess or vehicle: %v", err)
		return c.view(), err
	}
	c.resolve(ctx, next, effects)
	return c.view(), nil
}

// SetPlayerName establishes the player name and resumes a pending guess.
func (c *Challenge) SetPlayerName(ctx context.Context, name string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, effects, err := c.engine.SetPlayerName(c.session, c.catalog.List(), name)
	if err != nil {
		if errors.Is(err, game.ErrNoActiveRound) {
			// Name was accepted; only the pending guess was lost with its vehicle.
			c.session = next
		}
		return c.view(), err
	}
	c.activity.Infof("Player name set: %s", next.PlayerName)
	c.resolve(ctx, next, effects)
	return c.view(), nil
}

// resolve commits a transition and, if it judged the round, logs the result.
func (c *Challenge) resolve(ctx context.Context, next game.Session, effects []game.Effect) {
	c.session = next
	if r := next.Round; r != nil {
		switch r.Outcome {
		case game.OutcomeCorrect:
			c.activity.Successf("Correct! +%d points", r.Points)
		case game.OutcomeIncorrect:
			v, _ := c.catalog.At(r.VehicleIndex)
			c.activity.Errorf("Wrong guess. Correct answer: %s", v.Name)
		}
	}
	c.apply(ctx, effects)
}

// Advance moves to the next round.
func (c *Challenge) Advance() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.engine.Advance(c.session, c.catalog.List())
	if errors.Is(err, game.ErrRoundInProgress) {
		return c.view(), err
	}
	c.session = next
	if err != nil {
		c.activity.Infof("No vehicles available")
		return c.view(), err
	}
	c.activity.Infof("New round started")
	return c.view(), nil
}

// ResetGame zeroes the running totals and starts a new round. The player
// name and persisted data are kept.
func (c *Challenge) ResetGame() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.engine.ResetGame(c.session, c.catalog.List())
	c.session = next
	c.activity.Infof("Game reset")
	return c.view(), err
}

// Reinitialize clears the persisted catalog and leaderboard and resets all
// session state.
func (c *Challenge) Reinitialize(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activity.Infof("Reinitializing app")
	next, effects := c.engine.Reinitialize()
	c.session = next
	c.apply(ctx, effects)
	c.activity.Successf("Reinitialize complete")
	return c.view()
}

// Suggest returns autocomplete candidates for the guess box.
func (c *Challenge) Suggest(prefix string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return game.Suggest(prefix, c.catalog.List())
}
