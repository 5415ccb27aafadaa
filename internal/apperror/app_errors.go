package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrNotAutomatic = errors.New("player does not make automatic moves")
	ErrPersistence  = errors.New("result log failure")

	// ErrNoValidMoves is an ErrInvalidMove raised when the board has no empty cell left.
	ErrNoValidMoves = fmt.Errorf("%w: no valid moves available", ErrInvalidMove)
)
