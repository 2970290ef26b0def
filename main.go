package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hexapawn/cli"
	"hexapawn/config"
	"hexapawn/experiments"
	"hexapawn/memory"
	"hexapawn/store"
	"hexapawn/web"
)

func main() {
	mode := flag.String("mode", "play", "play (interactive), serve (HTTP API) or train (self-play run)")
	cfgPath := flag.String("config", "", "optional config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("unknown log level")
	}
	zerolog.SetGlobalLevel(level)

	mem := memory.New()
	if cfg.MemoryPath != "" {
		loaded, err := store.Restore(cfg.MemoryPath, cfg.Rows, cfg.Cols, mem)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to restore memory snapshot")
		}
		if loaded {
			stats := mem.Stats()
			log.Info().Str("path", cfg.MemoryPath).Int("states", stats.States).
				Msg("restored memory snapshot")
		}
	}

	switch *mode {
	case "play":
		err = runPlay(cfg, mem)
	case "serve":
		err = runServe(cfg, mem)
	case "train":
		err = runTrain(cfg, mem)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("run failed")
	}

	if cfg.MemoryPath != "" {
		if err := store.Save(cfg.MemoryPath, cfg.Rows, cfg.Cols, mem); err != nil {
			log.Fatal().Err(err).Msg("failed to save memory snapshot")
		}
		log.Info().Str("path", cfg.MemoryPath).Msg("saved memory snapshot")
	}
}

func runPlay(cfg *config.Config, mem *memory.Memory) error {
	shell, err := cli.NewShell(cfg.Rows, cfg.Cols, mem, cfg.Seed)
	if err != nil {
		return err
	}
	return shell.Run()
}

func runServe(cfg *config.Config, mem *memory.Memory) error {
	handler := web.NewServer(web.NewService(cfg.Rows, cfg.Cols, mem, cfg.Seed))
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runTrain(cfg *config.Config, mem *memory.Memory) error {
	_, _, err := experiments.RunTraining(experiments.Config{
		Games:      cfg.TrainGames,
		Rows:       cfg.Rows,
		Cols:       cfg.Cols,
		Seed:       cfg.Seed,
		OutputRoot: cfg.OutputRoot,
	}, mem)
	return err
}
