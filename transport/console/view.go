package console

import (
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gameView interface {
	Board() *entity.Board
	CurrentPlayer() *entity.Player
}

// View renders controller notifications as plain text.
type View struct {
	out  io.Writer
	game gameView
}

func NewView(out io.Writer, game gameView) *View {
	return &View{
		out:  out,
		game: game,
	}
}

func (that *View) OnGameUpdated(state entity.GameState) {
	if state != entity.StateInProgress {
		return
	}

	that.renderBoard()

	if player := that.game.CurrentPlayer(); player != nil {
		that.printf("%s's turn\n", describe(player))
	}
}

func (that *View) OnMoveMade(row, col int, player *entity.Player) {
	that.printf("%s played (%d, %d)\n", describe(player), row, col)
}

func (that *View) OnGameOver(winner *entity.Player) {
	that.renderBoard()

	if winner == nil {
		that.printf("Game ended in a tie!\n")
		return
	}

	that.printf("%s wins!\n", describe(winner))
}

func (that *View) OnInvalidMove(_ *entity.Player, err error) {
	that.printf("Invalid move: %v\n", err)
}

func (that *View) renderBoard() {
	that.printf("\n%s", that.game.Board())
}

func (that *View) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}

func describe(player *entity.Player) string {
	return fmt.Sprintf("%s (%s)", player.Name(), player.Symbol())
}
