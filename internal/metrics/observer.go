package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const namespace = "tictactoe"

// Observer counts moves and finished games. It registers its collectors on the given registerer.
type Observer struct {
	moves         *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	invalidMoves  prometheus.Counter
}

func NewObserver(registerer prometheus.Registerer) (*Observer, error) {
	observer := &Observer{
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Accepted moves by player symbol.",
		}, []string{"symbol"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Finished games by outcome.",
		}, []string{"outcome"}),
		invalidMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_moves_total",
			Help:      "Rejected moves.",
		}),
	}

	for _, collector := range []prometheus.Collector{observer.moves, observer.gamesFinished, observer.invalidMoves} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return observer, nil
}

func (that *Observer) OnGameUpdated(entity.GameState) {}

func (that *Observer) OnMoveMade(_, _ int, player *entity.Player) {
	that.moves.WithLabelValues(player.Symbol()).Inc()
}

func (that *Observer) OnGameOver(winner *entity.Player) {
	outcome := entity.StateTie
	if winner != nil {
		outcome = entity.StateWon
	}

	that.gamesFinished.WithLabelValues(string(outcome)).Inc()
}

func (that *Observer) OnInvalidMove(*entity.Player, error) {
	that.invalidMoves.Inc()
}
