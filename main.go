// main.go
//
// Taillight Challenge server entrypoint.
//
// Startup:
//  1. Load `.env` (if present) and read configuration.
//  2. Configure zerolog (level, optional console output).
//  3. Open the persistence store (SQLite file or in-memory).
//  4. Restore the catalog and leaderboard, auto-start a round.
//  5. Serve the local HTTP bridge.

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/taillight/internal/activity"
	"github.com/robalobadob/taillight/internal/catalog"
	"github.com/robalobadob/taillight/internal/challenge"
	"github.com/robalobadob/taillight/internal/config"
	"github.com/robalobadob/taillight/internal/httpserver"
	"github.com/robalobadob/taillight/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open store")
	}
	defer st.Close()

	opts := []challenge.Option{
		challenge.WithActivity(activity.New(cfg.ActivityCapacity)),
		challenge.WithMaxImageBytes(cfg.MaxImageBytes),
	}
	if cfg.SeedCatalog {
		seed, err := catalog.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load seed catalog")
		}
		opts = append(opts, challenge.WithSeed(seed))
	}

	ch := challenge.New(context.Background(), st, opts...)
	srv := httpserver.New(ch, cfg.ClientOrigin)

	log.Info().Str("addr", cfg.Addr()).Str("store", cfg.Store).Msg("starting taillight")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store == "memory" {
		return store.NewMemoryStore(), nil
	}
	return store.OpenSQLite(cfg.DBPath)
}
