package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playgrid/tictactoe-engine/internal/config"
	"github.com/playgrid/tictactoe-engine/internal/contract"
	"github.com/playgrid/tictactoe-engine/internal/registry"
	"github.com/playgrid/tictactoe-engine/internal/repository"
	"github.com/playgrid/tictactoe-engine/internal/repository/storage"
	"github.com/playgrid/tictactoe-engine/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	snapshots := repository.NewRegistryRepository(redisStorage.Connection, conf.SnapshotKey)

	state, err := snapshots.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrSnapshotNotFound):
		log.Info("no registry snapshot found, starting empty")
		state = registry.New()
	case err != nil:
		return fmt.Errorf("could not load registry snapshot: %w", err)
	default:
		log.Info("registry snapshot restored", "games", state.Counter)
	}

	engine := contract.New(logger, state)
	runner := console.New(logger, engine, snapshots)

	runnerErrCh := make(chan error, 1)
	go func() {
		log.Info("Accepting invocations on stdin")
		runnerErrCh <- runner.Run(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err = <-runnerErrCh:
		if err != nil {
			return fmt.Errorf("console runner error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
