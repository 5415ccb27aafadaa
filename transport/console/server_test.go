package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type table struct {
	controller *tictactoe.GameController
	server     *Server
	out        *bytes.Buffer
}

func newTable(t *testing.T, players ...*entity.Player) *table {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	board, err := entity.NewBoard(3)
	require.NoError(t, err)

	resultRepo := repository.NewFileResultRepository(filepath.Join(t.TempDir(), "game_data.txt"))
	controller := tictactoe.NewGameController(logger, board, resultRepo)
	for _, player := range players {
		controller.AddPlayer(player)
	}

	out := &bytes.Buffer{}
	controller.AddObserver(NewView(out, controller))
	controller.StartNewGame()

	return &table{
		controller: controller,
		server:     New(logger, controller, out),
		out:        out,
	}
}

func TestServer_Run(t *testing.T) {
	t.Run("Two humans play to a win and read the history", func(t *testing.T) {
		// Given: two human players
		tbl := newTable(t, entity.NewHumanPlayer("Player X", "X"), entity.NewHumanPlayer("Player O", "O"))
		input := "0 0\n1 0\n0 1\n1 1\n0 2\n2 2\nhistory\nquit\n0 0\n"

		// When: the session runs
		err := tbl.server.Run(context.Background(), strings.NewReader(input))

		// Then: X wins, the late move is refused and history lists the game
		require.NoError(t, err)
		output := tbl.out.String()
		assert.Contains(t, output, "Player O (O)'s turn")
		assert.Contains(t, output, "X X X\nO O .\n. . .\nPlayer X (X) wins!")
		assert.Contains(t, output, "Game is over, type new to play again")
		assert.Contains(t, output, "Game history:\n1. ")
		assert.Contains(t, output, " - Player X won\n")
		assert.True(t, tbl.controller.Board().IsValidMove(2, 2))
	})

	t.Run("Rejected moves are reported", func(t *testing.T) {
		tbl := newTable(t, entity.NewHumanPlayer("Player X", "X"), entity.NewHumanPlayer("Player O", "O"))

		err := tbl.server.Run(context.Background(), strings.NewReader("1 1\n1 1\n7 7\n"))

		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(tbl.out.String(), "Invalid move:"))
		assert.Same(t, tbl.controller.Players()[1], tbl.controller.CurrentPlayer())
	})

	t.Run("Computer answers every human move", func(t *testing.T) {
		// Given: a human against a computer
		human := entity.NewHumanPlayer("Alice", "X")
		computer := entity.NewComputerPlayer("CPU", "O")
		tbl := newTable(t, human, computer)

		// When: the human plays the centre
		err := tbl.server.Run(context.Background(), strings.NewReader("1 1\n"))

		// Then: the computer took the first empty cell and it is the human's turn again
		require.NoError(t, err)
		cell, ok := tbl.controller.Board().Cell(0, 0)
		require.True(t, ok)
		assert.True(t, cell.Occupant().Same(computer))
		assert.Same(t, human, tbl.controller.CurrentPlayer())
		assert.Contains(t, tbl.out.String(), "CPU (O) played (0, 0)")
	})

	t.Run("Two computers finish the game without input", func(t *testing.T) {
		tbl := newTable(t, entity.NewComputerPlayer("CPU 1", "X"), entity.NewComputerPlayer("CPU 2", "O"))

		err := tbl.server.Run(context.Background(), strings.NewReader(""))

		// row-major filling completes X's anti-diagonal on the seventh move
		require.NoError(t, err)
		assert.True(t, tbl.controller.IsGameOver())
		assert.Contains(t, tbl.out.String(), "CPU 1 (X) wins!")
	})

	t.Run("New game and history on an empty log", func(t *testing.T) {
		tbl := newTable(t, entity.NewHumanPlayer("Player X", "X"), entity.NewHumanPlayer("Player O", "O"))

		err := tbl.server.Run(context.Background(), strings.NewReader("0 0\nnew\nhistory\nbogus\n"))

		require.NoError(t, err)
		assert.True(t, tbl.controller.Board().IsValidMove(0, 0))
		assert.Contains(t, tbl.out.String(), "No games played yet")
		assert.Contains(t, tbl.out.String(), `Unknown command "bogus"`)
	})

	t.Run("Cancelled context stops the loop", func(t *testing.T) {
		tbl := newTable(t, entity.NewHumanPlayer("Player X", "X"), entity.NewHumanPlayer("Player O", "O"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := tbl.server.Run(ctx, strings.NewReader("0 0\n"))

		require.NoError(t, err)
		assert.True(t, tbl.controller.Board().IsValidMove(0, 0))
	})
}
