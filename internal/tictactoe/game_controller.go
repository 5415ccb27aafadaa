package tictactoe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type resultRepo interface {
	Append(ctx context.Context, result entity.GameResult) error
	LoadAll(ctx context.Context) ([]entity.GameResult, error)
}

// GameController owns the board, the turn order and the observers of a single game table.
// It is not safe for concurrent use.
type GameController struct {
	logger *slog.Logger

	board     *entity.Board
	players   []*entity.Player
	observers []Observer

	currentPlayer int
	gameOver      bool
	winner        *entity.Player

	resultRepo resultRepo
	now        func() time.Time
}

func NewGameController(logger *slog.Logger, board *entity.Board, resultRepo resultRepo) *GameController {
	return &GameController{
		logger:     logger.With("component", "game_controller"),
		board:      board,
		resultRepo: resultRepo,
		now:        time.Now,
	}
}

// AddPlayer - appends a player to the turn order.
func (that *GameController) AddPlayer(player *entity.Player) {
	that.players = append(that.players, player)
}

func (that *GameController) Players() []*entity.Player {
	return append([]*entity.Player(nil), that.players...)
}

// CurrentPlayer - returns the player whose turn it is, nil without players.
func (that *GameController) CurrentPlayer() *entity.Player {
	if len(that.players) == 0 {
		return nil
	}

	return that.players[that.currentPlayer]
}

func (that *GameController) IsGameOver() bool {
	return that.gameOver
}

// Winner - returns nil while the game is running or when it ended in a tie.
func (that *GameController) Winner() *entity.Player {
	return that.winner
}

func (that *GameController) State() entity.GameState {
	switch {
	case !that.gameOver:
		return entity.StateInProgress
	case that.winner != nil:
		return entity.StateWon
	default:
		return entity.StateTie
	}
}

// Board - returns a snapshot, changes to it do not affect the game.
func (that *GameController) Board() *entity.Board {
	return that.board.Clone()
}

func (that *GameController) StartNewGame() {
	that.board.Reset()
	that.currentPlayer = 0
	that.gameOver = false
	that.winner = nil

	that.logger.Info("new game started", "board_size", that.board.Size(), "players", len(that.players))

	that.notifyGameUpdated()
}

// SubmitMove - plays row, col for the current player. Rejected moves are logged and
// reported to InvalidMoveObserver implementations, the turn does not advance.
func (that *GameController) SubmitMove(ctx context.Context, row, col int) {
	log := that.logger.With("method", "SubmitMove", "row", row, "col", col)

	player, ok := that.acceptingPlayer(log)
	if !ok {
		return
	}

	if err := player.MakeMove(that.board, row, col); err != nil {
		that.rejectMove(log, player, err)
		return
	}

	that.completeMove(ctx, player, row, col)
}

// PlayAutomaticMove - lets a computer current player pick its own cell.
func (that *GameController) PlayAutomaticMove(ctx context.Context) {
	log := that.logger.With("method", "PlayAutomaticMove")

	player, ok := that.acceptingPlayer(log)
	if !ok {
		return
	}

	row, col, err := player.MakeAutomaticMove(that.board)
	if err != nil {
		that.rejectMove(log, player, err)
		return
	}

	that.completeMove(ctx, player, row, col)
}

func (that *GameController) acceptingPlayer(log *slog.Logger) (*entity.Player, bool) {
	if that.gameOver {
		log.Debug("move ignored, game is over")
		return nil, false
	}

	player := that.CurrentPlayer()
	if player == nil {
		log.Warn("move ignored, no players registered")
		return nil, false
	}

	return player, true
}

func (that *GameController) rejectMove(log *slog.Logger, player *entity.Player, err error) {
	log.Warn("invalid move", "player", player.Name(), "error", err)

	that.notifyInvalidMove(player, err)
}

func (that *GameController) completeMove(ctx context.Context, player *entity.Player, row, col int) {
	that.notifyMoveMade(row, col, player)

	switch {
	case that.board.CheckWin():
		that.finishGame(ctx, player)
	case that.board.IsFull():
		that.finishGame(ctx, nil)
	default:
		that.currentPlayer = (that.currentPlayer + 1) % len(that.players)
		that.notifyGameUpdated()
	}
}

func (that *GameController) finishGame(ctx context.Context, winner *entity.Player) {
	that.gameOver = true
	that.winner = winner

	that.notifyGameOver(winner)
	that.saveGameResult(ctx)
}

// saveGameResult never undoes the finished state, failures are only logged.
func (that *GameController) saveGameResult(ctx context.Context) {
	log := that.logger.With("method", "saveGameResult")

	result := entity.NewGameResult(that.now(), that.winner)

	if that.resultRepo == nil {
		log.Warn("no result log configured, result dropped", "outcome", result.Outcome)
		return
	}

	if err := that.resultRepo.Append(ctx, result); err != nil {
		log.Error("failed to save game result", "outcome", result.Outcome, "error", err)
		return
	}

	log.Info("game result saved", "outcome", result.Outcome)
}

// LoadGameHistory - returns every stored result, oldest first.
func (that *GameController) LoadGameHistory(ctx context.Context) ([]entity.GameResult, error) {
	if that.resultRepo == nil {
		return []entity.GameResult{}, nil
	}

	results, err := that.resultRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game history: %w", err)
	}

	return results, nil
}
