// main.go
//
// Entry point for the word game server.
// Startup order:
//   1. Config from env (.env in development) and zerolog setup.
//   2. Start word list; the server refuses to start without one.
//   3. Dictionary (start words merged in), held in memory or imported into SQLite.
//   4. Session store + idle pruner, HTTP server, graceful shutdown on SIGINT/SIGTERM.

package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/destinyelysse/A-Word-Game/assets"
	"github.com/destinyelysse/A-Word-Game/internal/config"
	"github.com/destinyelysse/A-Word-Game/internal/db"
	"github.com/destinyelysse/A-Word-Game/internal/dictionary"
	"github.com/destinyelysse/A-Word-Game/internal/game"
	"github.com/destinyelysse/A-Word-Game/internal/httpserver"
	"github.com/destinyelysse/A-Word-Game/internal/store"
	"github.com/destinyelysse/A-Word-Game/internal/words"
)

// dictionaryBackend is what the server needs from a dictionary.
type dictionaryBackend interface {
	game.DictionaryChecker
	httpserver.Sizer
}

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	start, err := words.Start(cfg.Words.StartFile).Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load start words")
	}
	known, err := words.Dictionary(cfg.Words.DictionaryFile).Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	// every base word must count as a real word
	known = words.Merge(known, start)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dict, closeDict, err := openDictionary(ctx, cfg, known)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open dictionary")
	}
	defer closeDict()

	sessions := store.NewMemoryStore()
	go store.RunPruner(ctx, sessions, time.Minute, cfg.Game.SessionIdleTTL)

	api := httpserver.New(httpserver.Options{
		Game:          game.New(start, dict, cfg.Words.Language, game.CryptoRand{}),
		Store:         sessions,
		Dictionary:    dict,
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
		CookieName:    cfg.Auth.CookieName,
		SecureCookies: cfg.IsProduction(),
		ClientOrigin:  cfg.Server.ClientOrigin,
		DailySalt:     cfg.Game.DailySalt,
		DebugHash:     cfg.DebugHash,
	})
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("starting word game server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped")
}

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Logging.Format != "json" && !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openDictionary builds the configured dictionary backend from known.
func openDictionary(ctx context.Context, cfg *config.Config, known []string) (dictionaryBackend, func(), error) {
	switch cfg.Words.Backend {
	case config.BackendSQLite:
		conn, err := db.Open(cfg.Words.DBPath)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() { closeQuietly(conn) }
		if err := db.Migrate(ctx, conn, assets.Migrations()); err != nil {
			closeDB()
			return nil, nil, err
		}
		d := dictionary.NewSQLite(conn, cfg.Words.Language, cfg.Words.DictionaryTimeout)
		n, err := d.Import(ctx, known)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Words.DBPath).Int("imported", n).Msg("sqlite dictionary ready")
		return d, closeDB, nil
	case config.BackendMemory, "":
		return dictionary.NewSet(cfg.Words.Language, known), func() {}, nil
	default:
		log.Warn().Str("backend", cfg.Words.Backend).Msg("unknown dictionary backend, using memory")
		return dictionary.NewSet(cfg.Words.Language, known), func() {}, nil
	}
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
}
