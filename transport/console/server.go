package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const usage = "Commands: <row> <col> to move, new, history, help, quit\n"

type gameController interface {
	gameView

	SubmitMove(ctx context.Context, row, col int)
	PlayAutomaticMove(ctx context.Context)
	StartNewGame()
	IsGameOver() bool
	LoadGameHistory(ctx context.Context) ([]entity.GameResult, error)
}

type handler func(ctx context.Context, args []string) error

// Server reads commands line by line and drives the controller.
type Server struct {
	logger *slog.Logger
	game   gameController
	out    io.Writer

	handlers map[string]handler
}

func New(logger *slog.Logger, game gameController, out io.Writer) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		game:   game,
		out:    out,

		handlers: make(map[string]handler),
	}

	server.handlers["new"] = server.handleNewGame
	server.handlers["history"] = server.handleHistory
	server.handlers["help"] = server.handleHelp

	return server
}

// Run - processes in until quit, EOF or ctx cancellation. Computer players move on their own.
func (that *Server) Run(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Run")

	that.printf(usage)

	scanner := bufio.NewScanner(in)

	for {
		that.playAutomaticMoves(ctx)

		if err := ctx.Err(); err != nil {
			return nil
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}

			log.Info("input closed")
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			log.Info("quit requested")
			return nil
		}

		if err := that.dispatch(ctx, fields); err != nil {
			log.Error("error processing command", "command", fields[0], "error", err)
		}
	}
}

func (that *Server) dispatch(ctx context.Context, fields []string) error {
	if handle, ok := that.handlers[fields[0]]; ok {
		return handle(ctx, fields[1:])
	}

	if len(fields) == 2 {
		row, rowErr := strconv.Atoi(fields[0])
		col, colErr := strconv.Atoi(fields[1])
		if rowErr == nil && colErr == nil {
			return that.handleMove(ctx, row, col)
		}
	}

	that.printf("Unknown command %q\n%s", strings.Join(fields, " "), usage)

	return nil
}

// playAutomaticMoves lets computer players take turns until a human is up or the game ends.
// Every automatic move fills a cell, so the loop is bounded by the board area.
func (that *Server) playAutomaticMoves(ctx context.Context) {
	size := that.game.Board().Size()

	for range size * size {
		if ctx.Err() != nil || that.game.IsGameOver() {
			return
		}

		player := that.game.CurrentPlayer()
		if player == nil || !player.IsAutomatic() {
			return
		}

		that.game.PlayAutomaticMove(ctx)
	}
}

func (that *Server) handleMove(ctx context.Context, row, col int) error {
	if that.game.IsGameOver() {
		that.printf("Game is over, type new to play again\n")
		return nil
	}

	that.game.SubmitMove(ctx, row, col)

	return nil
}

func (that *Server) handleNewGame(context.Context, []string) error {
	that.game.StartNewGame()

	return nil
}

func (that *Server) handleHistory(ctx context.Context, _ []string) error {
	results, err := that.game.LoadGameHistory(ctx)
	if err != nil {
		that.printf("Could not load game history\n")
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(results) == 0 {
		that.printf("No games played yet\n")
		return nil
	}

	that.printf("Game history:\n")
	for i, result := range results {
		that.printf("%d. %s\n", i+1, result)
	}

	return nil
}

func (that *Server) handleHelp(context.Context, []string) error {
	that.printf(usage)

	return nil
}

func (that *Server) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}
