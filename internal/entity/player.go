package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type PlayerKind string

const (
	HumanKind    PlayerKind = "human"
	ComputerKind PlayerKind = "computer"
)

var ErrUnknownPlayerKind = errors.New("unknown player kind")

// moveValidator decides whether a player may mark row, col on board.
type moveValidator func(board *Board, row, col int) error

// Player is a named actor; its kind picks the validation policy applied before every placement.
type Player struct {
	id       string
	name     string
	symbol   string
	kind     PlayerKind
	validate moveValidator
}

func NewHumanPlayer(name, symbol string) *Player {
	return newPlayer(HumanKind, name, symbol, validateHumanMove)
}

func NewComputerPlayer(name, symbol string) *Player {
	return newPlayer(ComputerKind, name, symbol, validateComputerMove)
}

// NewPlayer - builds a player of the given kind, used by config-driven setups.
func NewPlayer(kind PlayerKind, name, symbol string) (*Player, error) {
	switch kind {
	case HumanKind:
		return NewHumanPlayer(name, symbol), nil
	case ComputerKind:
		return NewComputerPlayer(name, symbol), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayerKind, kind)
	}
}

func newPlayer(kind PlayerKind, name, symbol string, validate moveValidator) *Player {
	return &Player{
		id:       uuid.NewString(),
		name:     name,
		symbol:   symbol,
		kind:     kind,
		validate: validate,
	}
}

func (that *Player) ID() string {
	return that.id
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Symbol() string {
	return that.symbol
}

func (that *Player) Kind() PlayerKind {
	return that.kind
}

func (that *Player) IsAutomatic() bool {
	return that.kind == ComputerKind
}

// Same - identity check by ID, two players may share a symbol.
func (that *Player) Same(other *Player) bool {
	if that == nil || other == nil {
		return that == other
	}

	return that.id == other.id
}

// MakeMove - validates the move with the player's policy and places the mark.
func (that *Player) MakeMove(board *Board, row, col int) error {
	if err := that.validate(board, row, col); err != nil {
		return err
	}

	board.PlaceMark(row, col, that)

	return nil
}

// MakeAutomaticMove - plays the first empty cell in row-major order.
func (that *Player) MakeAutomaticMove(board *Board) (int, int, error) {
	if !that.IsAutomatic() {
		return 0, 0, fmt.Errorf("%w: %s", apperror.ErrNotAutomatic, that.name)
	}

	row, col, ok := board.FirstEmpty()
	if !ok {
		return 0, 0, apperror.ErrNoValidMoves
	}

	if err := that.MakeMove(board, row, col); err != nil {
		return 0, 0, err
	}

	return row, col, nil
}

func validateHumanMove(board *Board, row, col int) error {
	if !board.IsValidMove(row, col) {
		return fmt.Errorf("%w: cell (%d, %d) is already occupied or out of bounds", apperror.ErrInvalidMove, row, col)
	}

	return nil
}

func validateComputerMove(board *Board, row, col int) error {
	if !board.IsValidMove(row, col) {
		return fmt.Errorf("%w by computer: cell (%d, %d) is already occupied or out of bounds", apperror.ErrInvalidMove, row, col)
	}

	return nil
}
