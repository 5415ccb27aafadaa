package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, r *http.Request)
	HistoryHandler(w http.ResponseWriter, r *http.Request)
}

type resultRepo interface {
	LoadAll(ctx context.Context) ([]entity.GameResult, error)
}

type handlers struct {
	logger     *slog.Logger
	resultRepo resultRepo
}

func NewHandlers(logger *slog.Logger, resultRepo resultRepo) Handlers {
	return &handlers{
		logger:     logger.With("component", "rest"),
		resultRepo: resultRepo,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, r *http.Request) {
	PingHandler(w, r)
}

// HistoryHandler - returns every stored result as a JSON array, oldest first.
func (that *handlers) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "HistoryHandler")

	results, err := that.resultRepo.LoadAll(r.Context())
	if err != nil {
		log.Error("failed to load game history", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(results); err != nil {
		log.Error("failed to encode game history", "error", err)
	}
}
