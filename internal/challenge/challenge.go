// internal/challenge/challenge.go
//
// Session owner for the taillight challenge.
// Responsibilities:
//   - Hold the single game.Session and run engine transitions against the
//     catalog.
//   - Apply the effects transitions return (leaderboard writes, storage
//     clears).
//   - Persist at fixed checkpoints: after each judged round (scores) and
//     after each catalog mutation (vehicles).
//   - Feed the activity log.
//
// Notes:
//   - Persistence is best effort: a failed write is logged and the user
//     action still succeeds, as the in-memory state is authoritative.
//   - Startup never fails on bad stored data; malformed blobs read as empty.
//   - All public methods serialize on one mutex, so the engine itself
//     stays single-threaded.

package challenge

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/taillight/internal/activity"
	"github.com/robalobadob/taillight/internal/catalog"
	"github.com/robalobadob/taillight/internal/game"
	"github.com/robalobadob/taillight/internal/leaderboard"
	"github.com/robalobadob/taillight/internal/store"
)

const (
	defaultMaxImageBytes = 8 << 20

	// Open editor drafts are bounded: each may hold two images.
	maxDrafts = 8
	draftTTL  = 30 * time.Minute
)

// Challenge bundles session state, catalog, leaderboard and storage.
type Challenge struct {
	mu       sync.Mutex
	store    store.Store
	engine   *game.Engine
	catalog  *catalog.Catalog
	board    *leaderboard.Board
	session  game.Session
	activity *activity.Log
	drafts   map[string]*openDraft

	now      func() time.Time
	pick     game.Picker
	seed     []catalog.Vehicle
	maxImage int64
}

// Option configures a Challenge.
type Option func(*Challenge)

// WithPicker overrides random vehicle selection.
func WithPicker(p game.Picker) Option { return func(c *Challenge) { c.pick = p } }

// WithClock overrides the time source used for leaderboard dates.
func WithClock(now func() time.Time) Option { return func(c *Challenge) { c.now = now } }

// WithActivity sets the activity log.
func WithActivity(l *activity.Log) Option { return func(c *Challenge) { c.activity = l } }

// WithSeed supplies vehicles used when the stored catalog is empty.
func WithSeed(vs []catalog.Vehicle) Option { return func(c *Challenge) { c.seed = vs } }

// WithMaxImageBytes bounds uploaded image size.
func WithMaxImageBytes(n int64) Option { return func(c *Challenge) { c.maxImage = n } }

// New loads persisted state from st and starts a round if possible.
// Session totals always start at zero.
func New(ctx context.Context, st store.Store, opts ...Option) *Challenge {
	c := &Challenge{
		store:    st,
		drafts:   make(map[string]*openDraft),
		now:      time.Now,
		maxImage: defaultMaxImageBytes,
	}
	for _, o := range opts {
		o(c)
	}
	if c.activity == nil {
		c.activity = activity.New(activity.DefaultCapacity)
	}
	c.engine = game.NewEngine(c.pick)

	c.catalog = catalog.New(catalog.Decode(c.load(ctx, store.KeyVehicles)))
	c.catalog.Subscribe(roundKeeper{c})
	c.board = leaderboard.New(leaderboard.Decode(c.load(ctx, store.KeyScores)))

	if c.catalog.Len() == 0 && len(c.seed) > 0 {
		c.catalog = catalog.New(c.seed)
		c.catalog.Subscribe(roundKeeper{c})
		c.persistVehicles(ctx)
		c.activity.Infof("Seed catalog loaded: %d vehicles", c.catalog.Len())
	}

	log.Info().
		Int("vehicles", c.catalog.Len()).
		Int("scores", c.board.Len()).
		Msg("challenge state loaded")

	c.autoStart()
	return c
}

// load reads a blob; any failure reads as absent.
func (c *Challenge) load(ctx context.Context, key string) string {
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("load failed, starting empty")
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (c *Challenge) persistVehicles(ctx context.Context) {
	blob, err := catalog.Encode(c.catalog.List())
	if err == nil {
		err = c.store.Set(ctx, store.KeyVehicles, blob)
	}
	if err != nil {
		log.Warn().Err(err).Msg("persist vehicles")
	}
}

func (c *Challenge) persistScores(ctx context.Context) {
	blob, err := leaderboard.Encode(c.board.Top())
	if err == nil {
		err = c.store.Set(ctx, store.KeyScores, blob)
	}
	if err != nil {
		log.Warn().Err(err).Msg("persist scores")
	}
}

// apply executes effects returned by an engine transition.
func (c *Challenge) apply(ctx context.Context, effects []game.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case game.EffectRecordScore:
			res, ok := c.board.Record(e.Name, e.Score, e.Rounds, c.now())
			if !ok {
				continue
			}
			if res.Added {
				c.activity.Infof("New player added: %s", e.Name)
			} else {
				c.activity.Infof("Score updated for %s: %d pts", e.Name, e.Score)
			}
			c.persistScores(ctx)

		case game.EffectClearStorage:
			if err := c.store.Delete(ctx, store.KeyScores, store.KeyVehicles); err != nil {
				log.Warn().Err(err).Msg("clear storage")
				c.activity.Errorf("Clearing storage failed")
			} else {
				c.activity.Successf("Storage cleared")
			}
			c.catalog.Reset()
			c.board.Reset()
			c.drafts = make(map[string]*openDraft)
		}
	}
}

// autoStart selects a vehicle when none is active and one is available.
func (c *Challenge) autoStart() {
	if c.session.Round != nil {
		return
	}
	next, err := c.engine.SelectRandom(c.session, c.catalog.List())
	if err != nil {
		return
	}
	c.session = next
	c.activity.Infof("New round started")
}

// roundKeeper forwards catalog removals to the engine. It runs inside
// catalog.Remove, with c.mu already held.
type roundKeeper struct{ c *Challenge }

func (k roundKeeper) VehicleRemoved(index int) {
	c := k.c
	before := c.session.Round
	c.session = c.engine.VehicleRemoved(c.session, index)
	switch {
	case before == nil:
	case c.session.Round == nil:
		c.activity.Infof("Active vehicle removed, round reset")
	case c.session.Round.VehicleIndex != before.VehicleIndex:
		c.activity.Infof("Active index moved from %d to %d", before.VehicleIndex, c.session.Round.VehicleIndex)
	}
}

// Activity returns the activity log, oldest first.
func (c *Challenge) Activity() []activity.Entry {
	return c.activity.Entries()
}

// Scores returns the leaderboard, best first.
func (c *Challenge) Scores() []leaderboard.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.Top()
}
