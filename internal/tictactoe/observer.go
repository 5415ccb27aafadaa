package tictactoe

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Observer receives controller notifications synchronously, in registration order.
// Observers are removed by == comparison, so implementations should be pointer types:
// an observer whose dynamic type is not comparable can be added but never removed.
type Observer interface {
	// OnGameUpdated fires after every non-terminal move and when a new game starts.
	OnGameUpdated(state entity.GameState)
	// OnMoveMade fires right after a legal placement, before the end-of-game check.
	OnMoveMade(row, col int, player *entity.Player)
	// OnGameOver fires once per game; winner is nil on a tie.
	OnGameOver(winner *entity.Player)
}

// InvalidMoveObserver is optionally implemented by observers that want rejected moves.
type InvalidMoveObserver interface {
	OnInvalidMove(player *entity.Player, err error)
}

func (that *GameController) AddObserver(observer Observer) {
	that.observers = append(that.observers, observer)
}

// RemoveObserver - unregisters the first matching observer; notifications already being
// dispatched still reach it. Non-comparable observers are never matched.
func (that *GameController) RemoveObserver(observer Observer) {
	if observer == nil {
		return
	}

	if !isComparable(observer) {
		that.logger.Warn("observer is not comparable and cannot be removed", "type", fmt.Sprintf("%T", observer))
		return
	}

	idx := slices.IndexFunc(that.observers, func(registered Observer) bool {
		return isComparable(registered) && registered == observer
	})
	if idx >= 0 {
		that.observers = slices.Delete(that.observers, idx, idx+1)
	}
}

// isComparable reports whether == on observer is safe.
func isComparable(observer Observer) bool {
	return observer != nil && reflect.TypeOf(observer).Comparable()
}

// snapshot lets callbacks add or remove observers while we iterate.
func (that *GameController) snapshot() []Observer {
	return slices.Clone(that.observers)
}

func (that *GameController) notifyGameUpdated() {
	state := that.State()
	for _, observer := range that.snapshot() {
		observer.OnGameUpdated(state)
	}
}

func (that *GameController) notifyMoveMade(row, col int, player *entity.Player) {
	for _, observer := range that.snapshot() {
		observer.OnMoveMade(row, col, player)
	}
}

func (that *GameController) notifyGameOver(winner *entity.Player) {
	for _, observer := range that.snapshot() {
		observer.OnGameOver(winner)
	}
}

func (that *GameController) notifyInvalidMove(player *entity.Player, err error) {
	for _, observer := range that.snapshot() {
		if listener, ok := observer.(InvalidMoveObserver); ok {
			listener.OnInvalidMove(player, err)
		}
	}
}
