package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
)

var ErrUnknownStorage = errors.New("unknown result storage")

// RunApp - runs the application on stdin and stdout.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - plays games read from in and rendered to out until quit, EOF or SIGINT/SIGTERM.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	resultRepo, closeStorage, err := newResultRepository(ctx, conf)
	if err != nil {
		return err
	}

	// the HTTP server reads the store, so it is stopped before the store is closed
	var httpServer sync.WaitGroup
	defer func() {
		cancel()
		httpServer.Wait()

		if closeErr := closeStorage(); closeErr != nil {
			log.Error("could not close result storage", "error", closeErr)
		}
	}()

	controller, err := newGameController(logger, conf, resultRepo)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metricsObserver, err := metrics.NewObserver(registry)
	if err != nil {
		return fmt.Errorf("could not create metrics: %w", err)
	}

	controller.AddObserver(metricsObserver)
	controller.AddObserver(console.NewView(out, controller))

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		httpServer.Add(1)
		go func() {
			defer httpServer.Done()

			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			router := rest.NewRouter(rest.NewHandlers(logger, resultRepo), registry)
			httpErrCh <- rest.Start(ctx, conf.HTTPPort, router)
		}()
	}

	controller.StartNewGame()

	consoleErrCh := make(chan error, 1)
	go func() {
		consoleErrCh <- console.New(logger, controller, out).Run(ctx, in)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		log.Info("Console closed, shutting down")
		return nil
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newGameController(logger *slog.Logger, conf *config.Config, resultRepo repository.ResultRepository) (*tictactoe.GameController, error) {
	board, err := entity.NewBoard(conf.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("could not create board: %w", err)
	}

	controller := tictactoe.NewGameController(logger, board, resultRepo)

	for _, playerConf := range conf.Players {
		player, err := entity.NewPlayer(entity.PlayerKind(playerConf.Kind), playerConf.Name, playerConf.Symbol)
		if err != nil {
			return nil, fmt.Errorf("could not create player %q: %w", playerConf.Name, err)
		}

		controller.AddPlayer(player)
	}

	return controller, nil
}

// newResultRepository - opens the configured result store and returns its closer.
func newResultRepository(ctx context.Context, conf *config.Config) (repository.ResultRepository, func() error, error) {
	switch conf.ResultLog.Storage {
	case config.StorageFile:
		return repository.NewFileResultRepository(conf.ResultLog.Path), func() error { return nil }, nil
	case config.StorageRedis:
		redisStorage, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisResultRepository(redisStorage, conf.ResultLog.RedisKey), redisStorage.Close, nil
	case config.StorageSQLite:
		sqliteStorage, err := sqlite.New(conf.ResultLog.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteResultRepository(sqliteStorage.Connection), sqliteStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.ResultLog.Storage)
	}
}
