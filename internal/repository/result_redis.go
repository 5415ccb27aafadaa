package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type redisResult struct {
	client *redis.Client
	key    string
}

// NewRedisResultRepository - keeps result lines in the redis list stored at key.
func NewRedisResultRepository(client *redis.Client, key string) ResultRepository {
	return &redisResult{
		client: client,
		key:    key,
	}
}

func (that *redisResult) Append(ctx context.Context, result entity.GameResult) error {
	if err := that.client.RPush(ctx, that.key, result.Line()).Err(); err != nil {
		return fmt.Errorf("%w: failed to push result: %w", apperror.ErrPersistence, err)
	}

	return nil
}

func (that *redisResult) LoadAll(ctx context.Context) ([]entity.GameResult, error) {
	lines, err := that.client.LRange(ctx, that.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read results: %w", apperror.ErrPersistence, err)
	}

	results := make([]entity.GameResult, 0, len(lines))
	for _, line := range lines {
		result, parseErr := entity.ParseGameResult(line)
		if parseErr != nil {
			continue
		}

		results = append(results, result)
	}

	return results, nil
}
