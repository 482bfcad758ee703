// Package game parses game command flags and starts the API service.
package game

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/strainfour/contagion/internal/game/def"
	"github.com/strainfour/contagion/internal/platform/config"
	"github.com/strainfour/contagion/internal/platform/otel"
	"github.com/strainfour/contagion/internal/server"
	"github.com/strainfour/contagion/internal/session"
	"github.com/strainfour/contagion/internal/storage/sqlite"
)

// Config holds game command configuration.
type Config struct {
	Addr  string `env:"CONTAGION_ADDR" envDefault:":8080"`
	DB    string `env:"CONTAGION_DB" envDefault:"contagion.db"`
	Board string `env:"CONTAGION_BOARD"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The game server listen address")
	fs.StringVar(&cfg.DB, "db", cfg.DB, "Path to the sqlite event journal")
	fs.StringVar(&cfg.Board, "board", cfg.Board, "Path to a Lua board definition (defaults to the built-in board)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the game API service and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "contagion-game")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	definition := def.Default()
	if cfg.Board != "" {
		definition, err = def.LoadLuaFile(cfg.Board)
		if err != nil {
			return err
		}
	}

	store, err := sqlite.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	manager := session.NewManager(store, definition)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(manager).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
