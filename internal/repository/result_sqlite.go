package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type sqliteResult struct {
	conn *sql.DB
}

// NewSQLiteResultRepository - stores results in the game_results table, see sqlite.Storage.Init.
func NewSQLiteResultRepository(conn *sql.DB) ResultRepository {
	return &sqliteResult{
		conn: conn,
	}
}

func (that *sqliteResult) Append(ctx context.Context, result entity.GameResult) error {
	query := `INSERT INTO game_results (played_at, outcome) VALUES (?, ?)`

	_, err := that.conn.ExecContext(ctx, query, result.PlayedAt.UnixMilli(), result.Outcome)
	if err != nil {
		return fmt.Errorf("%w: can't save result: %w", apperror.ErrPersistence, err)
	}

	return nil
}

func (that *sqliteResult) LoadAll(ctx context.Context) ([]entity.GameResult, error) {
	query := `SELECT played_at, outcome FROM game_results ORDER BY id`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: can't load results: %w", apperror.ErrPersistence, err)
	}
	defer rows.Close()

	results := make([]entity.GameResult, 0)
	for rows.Next() {
		var (
			playedAt int64
			outcome  string
		)

		if err = rows.Scan(&playedAt, &outcome); err != nil {
			return nil, fmt.Errorf("%w: can't scan result: %w", apperror.ErrPersistence, err)
		}

		results = append(results, entity.GameResult{
			PlayedAt: time.UnixMilli(playedAt),
			Outcome:  outcome,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: can't iterate results: %w", apperror.ErrPersistence, err)
	}

	return results, nil
}
