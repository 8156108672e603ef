package challenge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/taillight/internal/activity"
	"github.com/robalobadob/taillight/internal/catalog"
	"github.com/robalobadob/taillight/internal/game"
	"github.com/robalobadob/taillight/internal/leaderboard"
	"github.com/robalobadob/taillight/internal/store"
)

var clock = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func pickFirst(int) int { return 0 }

func pickLast(n int) int { return n - 1 }

func newChallenge(t *testing.T, st store.Store, opts ...Option) *Challenge {
	t.Helper()
	base := []Option{
		WithPicker(pickFirst),
		WithClock(func() time.Time { return clock }),
		WithActivity(activity.New(100)),
	}
	return New(context.Background(), st, append(base, opts...)...)
}

func vehicle(name string, alts ...string) catalog.Vehicle {
	return catalog.Vehicle{Name: name, Photo: "photo:" + name, Mask: "mask:" + name, Alternatives: alts}
}

func addVehicles(t *testing.T, c *Challenge, vs ...catalog.Vehicle) {
	t.Helper()
	for _, v := range vs {
		if _, _, err := c.AddVehicle(context.Background(), v); err != nil {
			t.Fatalf("AddVehicle(%s): %v", v.Name, err)
		}
	}
}

func hasActivity(c *Challenge, msg string) bool {
	for _, e := range c.Activity() {
		if strings.Contains(e.Message, msg) {
			return true
		}
	}
	return false
}

func TestNameDeferredGuessRecordsScore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	c := newChallenge(t, st)

	if got := c.State(); got.Phase != game.PhaseIdle {
		t.Fatalf("empty catalog: Phase = %s", got.Phase)
	}
	addVehicles(t, c, vehicle("Volkswagen Golf MK7", "Volkswagen Golf"))
	if got := c.State(); got.Phase != game.PhasePlaying || got.RoundNumber != 1 {
		t.Fatalf("after add: %+v", got)
	}

	c.SetLight(30)
	c.SetLight(10)
	st1, err := c.SubmitGuess(ctx, "golf")
	if !errors.Is(err, game.ErrNameRequired) {
		t.Fatalf("SubmitGuess: err = %v, want ErrNameRequired", err)
	}
	if !st1.Round.AwaitingName || st1.Round.Answer != "" {
		t.Fatalf("round = %+v", st1.Round)
	}

	st2, err := c.SetPlayerName(ctx, "Ada")
	if err != nil {
		t.Fatalf("SetPlayerName: %v", err)
	}
	if st2.TotalScore != 30 || st2.RoundsPlayed != 1 || st2.Phase != game.PhaseResolved {
		t.Fatalf("state = %+v", st2)
	}
	if st2.Round.Feedback != "Correct! +30 points" || st2.Round.Answer != "Volkswagen Golf MK7" {
		t.Fatalf("round = %+v", st2.Round)
	}

	scores := c.Scores()
	if len(scores) != 1 || scores[0].Name != "Ada" || scores[0].Score != 30 || scores[0].Rounds != 1 {
		t.Fatalf("scores = %+v", scores)
	}
	if !scores[0].Date.Equal(clock) {
		t.Fatalf("date = %v", scores[0].Date)
	}

	blob, ok, _ := st.Get(ctx, store.KeyScores)
	if !ok {
		t.Fatal("scores not persisted")
	}
	if saved := leaderboard.Decode(blob); len(saved) != 1 || saved[0].Score != 30 {
		t.Fatalf("persisted = %+v", saved)
	}
	if !hasActivity(c, "New player added: Ada") {
		t.Fatal("activity log missing new player entry")
	}
}

func TestWrongGuessStillRecorded(t *testing.T) {
	ctx := context.Background()
	c := newChallenge(t, store.NewMemoryStore())
	addVehicles(t, c, vehicle("Audi A4", "A4"))
	c.SetPlayerName(ctx, "Ada")

	st, err := c.SubmitGuess(ctx, "Volvo")
	if err != nil {
		t.Fatalf("SubmitGuess: %v", err)
	}
	if st.Round.Outcome != game.OutcomeIncorrect || st.Round.Feedback != "Wrong! It was a Audi A4" {
		t.Fatalf("round = %+v", st.Round)
	}
	scores := c.Scores()
	if len(scores) != 1 || scores[0].Score != 0 || scores[0].Rounds != 1 {
		t.Fatalf("scores = %+v", scores)
	}

	if _, err := c.SetLight(40); !errors.Is(err, game.ErrRoundResolved) {
		t.Fatalf("SetLight after resolve: err = %v", err)
	}
	next, err := c.Advance()
	if err != nil || next.Phase != game.PhasePlaying || next.RoundNumber != 2 {
		t.Fatalf("Advance = %+v, %v", next, err)
	}
}

func TestRunningTotalOverwritesBoard(t *testing.T) {
	ctx := context.Background()
	c := newChallenge(t, store.NewMemoryStore())
	addVehicles(t, c, vehicle("Audi A4", "A4"))
	c.SetPlayerName(ctx, "Ada")

	c.SubmitGuess(ctx, "a4") // 100 at light 0
	c.Advance()
	c.SetLight(50)
	c.SubmitGuess(ctx, "a4") // +14

	scores := c.Scores()
	if len(scores) != 1 || scores[0].Score != 114 || scores[0].Rounds != 2 {
		t.Fatalf("scores = %+v", scores)
	}
	if !hasActivity(c, "Score updated for Ada: 114 pts") {
		t.Fatal("activity log missing score update")
	}
}

func TestStateReloads(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	c := newChallenge(t, st)
	addVehicles(t, c, vehicle("Audi A4", "A4"), vehicle("Volvo XC90"))
	c.SetPlayerName(ctx, "Ada")
	c.SubmitGuess(ctx, "a4")

	again := newChallenge(t, st)
	if got := again.Vehicles(); len(got) != 2 || got[1].Name != "Volvo XC90" {
		t.Fatalf("vehicles = %+v", got)
	}
	if got := again.Scores(); len(got) != 1 || got[0].Score != 100 {
		t.Fatalf("scores = %+v", got)
	}
	s := again.State()
	if s.TotalScore != 0 || s.PlayerName != "" || s.Phase != game.PhasePlaying {
		t.Fatalf("session not fresh: %+v", s)
	}
}

func TestMalformedBlobsLoadEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.Set(ctx, store.KeyVehicles, "{not json")
	st.Set(ctx, store.KeyScores, `{"scores":1}`)

	c := newChallenge(t, st)
	if len(c.Vehicles()) != 0 || len(c.Scores()) != 0 {
		t.Fatalf("vehicles=%v scores=%v", c.Vehicles(), c.Scores())
	}
	if c.State().Phase != game.PhaseIdle {
		t.Fatal("round started with no vehicles")
	}
	if _, err := c.Advance(); !errors.Is(err, game.ErrNoVehicles) {
		t.Fatalf("Advance: err = %v", err)
	}
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seed := []catalog.Vehicle{vehicle("Audi A4")}
	c := newChallenge(t, st, WithSeed(seed))

	if len(c.Vehicles()) != 1 || c.State().Phase != game.PhasePlaying {
		t.Fatalf("seed not loaded: %+v", c.State())
	}
	if _, ok, _ := st.Get(ctx, store.KeyVehicles); !ok {
		t.Fatal("seed not persisted")
	}

	// A stored catalog wins over the seed.
	c.AddVehicle(ctx, vehicle("Volvo XC90"))
	again := newChallenge(t, st, WithSeed(seed))
	if len(again.Vehicles()) != 2 {
		t.Fatalf("vehicles = %+v", again.Vehicles())
	}
}

func TestRemoveEarlierVehicleKeepsRound(t *testing.T) {
	ctx := context.Background()
	seed := []catalog.Vehicle{vehicle("A"), vehicle("B"), vehicle("C")}
	for i := range seed {
		seed[i].ID = seed[i].Name
	}
	c := newChallenge(t, store.NewMemoryStore(), WithSeed(seed), WithPicker(pickLast))

	before := c.State().Round
	if before.VehicleIndex != 2 {
		t.Fatalf("VehicleIndex = %d, want 2", before.VehicleIndex)
	}
	if _, err := c.RemoveVehicle(ctx, 0); err != nil {
		t.Fatalf("RemoveVehicle: %v", err)
	}
	after := c.State().Round
	if after.VehicleIndex != 1 || after.VehicleID != "C" || after.Photo != "photo:C" {
		t.Fatalf("round = %+v", after)
	}
}

func TestRemoveActiveVehicle(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	c := newChallenge(t, st)
	addVehicles(t, c, vehicle("A"), vehicle("B"))

	if got := c.State().Round.Photo; got != "photo:A" {
		t.Fatalf("active = %q", got)
	}
	if _, err := c.RemoveVehicle(ctx, 0); err != nil {
		t.Fatalf("RemoveVehicle: %v", err)
	}
	s := c.State()
	if s.Round == nil || s.Round.Photo != "photo:B" || s.Round.HighWater != 0 {
		t.Fatalf("round after removal = %+v", s.Round)
	}
	if !hasActivity(c, "Active vehicle removed") {
		t.Fatal("activity log missing removal entry")
	}

	c.RemoveVehicle(ctx, 0)
	if c.State().Phase != game.PhaseIdle {
		t.Fatalf("Phase = %s, want idle", c.State().Phase)
	}
	if _, err := c.RemoveVehicle(ctx, 0); !errors.Is(err, catalog.ErrIndexOutOfRange) {
		t.Fatalf("err = %v", err)
	}
	blob, _, _ := st.Get(ctx, store.KeyVehicles)
	if len(catalog.Decode(blob)) != 0 {
		t.Fatalf("persisted vehicles = %s", blob)
	}
}

func TestReinitialize(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	c := newChallenge(t, st)
	addVehicles(t, c, vehicle("Audi A4", "A4"))
	c.SetPlayerName(ctx, "Ada")
	c.SubmitGuess(ctx, "a4")
	c.OpenDraft(-1)

	s := c.Reinitialize(ctx)
	if s.Phase != game.PhaseIdle || s.PlayerName != "" || s.TotalScore != 0 || s.VehicleCount != 0 {
		t.Fatalf("state = %+v", s)
	}
	for _, k := range []string{store.KeyVehicles, store.KeyScores} {
		if _, ok, _ := st.Get(ctx, k); ok {
			t.Errorf("%s still stored", k)
		}
	}
	if len(c.Scores()) != 0 || len(c.Vehicles()) != 0 || len(c.drafts) != 0 {
		t.Fatal("in-memory state not cleared")
	}
	// The name can be chosen again.
	if _, err := c.SetPlayerName(ctx, "Bob"); err != nil {
		t.Fatalf("SetPlayerName: %v", err)
	}
}

func TestResetGame(t *testing.T) {
	ctx := context.Background()
	c := newChallenge(t, store.NewMemoryStore())
	addVehicles(t, c, vehicle("Audi A4", "A4"))
	c.SetPlayerName(ctx, "Ada")
	c.SubmitGuess(ctx, "a4")

	s, err := c.ResetGame()
	if err != nil {
		t.Fatalf("ResetGame: %v", err)
	}
	if s.TotalScore != 0 || s.RoundsPlayed != 0 || s.PlayerName != "Ada" || s.Phase != game.PhasePlaying {
		t.Fatalf("state = %+v", s)
	}
	if len(c.Scores()) != 1 {
		t.Fatal("reset cleared the leaderboard")
	}
}

type failingStore struct{ store.Store }

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestPersistFailureKeepsPlaying(t *testing.T) {
	ctx := context.Background()
	c := newChallenge(t, failingStore{store.NewMemoryStore()})
	addVehicles(t, c, vehicle("Audi A4", "A4"))
	c.SetPlayerName(ctx, "Ada")
	s, err := c.SubmitGuess(ctx, "a4")
	if err != nil || s.TotalScore != 100 {
		t.Fatalf("SubmitGuess = %+v, %v", s, err)
	}
	if len(c.Scores()) != 1 {
		t.Fatal("in-memory board lost the score")
	}
}

func TestSuggest(t *testing.T) {
	c := newChallenge(t, store.NewMemoryStore())
	addVehicles(t, c, vehicle("Audi A4", "A4"), vehicle("Audi Q5"))
	got := c.Suggest("audi")
	if len(got) != 2 || got[0] != "Audi A4" || got[1] != "Audi Q5" {
		t.Fatalf("Suggest = %v", got)
	}
}
