package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const resultFileMode = 0o644

// ResultRepository is an append-only store of finished games.
type ResultRepository interface {
	Append(ctx context.Context, result entity.GameResult) error
	LoadAll(ctx context.Context) ([]entity.GameResult, error)
}

type fileResult struct {
	path string
}

// NewFileResultRepository - stores one "<epoch-millis>,<outcome>" line per game in the file at path.
func NewFileResultRepository(path string) ResultRepository {
	return &fileResult{
		path: path,
	}
}

func (that *fileResult) Append(ctx context.Context, result entity.GameResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrPersistence, err)
	}

	file, err := os.OpenFile(that.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, resultFileMode)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %w", apperror.ErrPersistence, that.path, err)
	}

	if _, err = file.WriteString(result.Line() + "\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: failed to write result: %w", apperror.ErrPersistence, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", apperror.ErrPersistence, that.path, err)
	}

	return nil
}

func (that *fileResult) LoadAll(ctx context.Context) ([]entity.GameResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrPersistence, err)
	}

	results := make([]entity.GameResult, 0)

	file, err := os.Open(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return results, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", apperror.ErrPersistence, that.path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			result, parseErr := entity.ParseGameResult(strings.TrimRight(line, "\r\n"))
			// corrupt or partial lines are skipped
			if parseErr == nil {
				results = append(results, result)
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: failed to read %s: %w", apperror.ErrPersistence, that.path, readErr)
		}
	}

	return results, nil
}
