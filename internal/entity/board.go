package entity

import (
	"errors"
	"fmt"
	"strings"
)

const EmptyCell = ""

var ErrInvalidBoardSize = errors.New("invalid board size")

// Cell is a single board slot. A nil occupant means the cell is empty.
type Cell struct {
	row      int
	col      int
	occupant *Player
}

func (that Cell) Row() int {
	return that.row
}

func (that Cell) Col() int {
	return that.col
}

func (that Cell) Occupant() *Player {
	return that.occupant
}

func (that Cell) IsEmpty() bool {
	return that.occupant == nil
}

// Symbol - returns the occupant's symbol or EmptyCell.
func (that Cell) Symbol() string {
	if that.IsEmpty() {
		return EmptyCell
	}

	return that.occupant.Symbol()
}

// Board is an N×N grid of cells.
type Board struct {
	size  int
	cells [][]Cell
}

func NewBoard(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}

	board := &Board{size: size}
	board.Reset()

	return board, nil
}

func (that *Board) Size() int {
	return that.size
}

// Reset - clears every cell in place, the size stays the same.
func (that *Board) Reset() {
	if that.cells == nil {
		that.cells = make([][]Cell, that.size)
	}

	for row := 0; row < that.size; row++ {
		if that.cells[row] == nil {
			that.cells[row] = make([]Cell, that.size)
		}

		for col := 0; col < that.size; col++ {
			that.cells[row][col] = Cell{row: row, col: col}
		}
	}
}

func (that *Board) inBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// Cell - returns a copy of the cell at row, col; false when out of bounds.
func (that *Board) Cell(row, col int) (Cell, bool) {
	if !that.inBounds(row, col) {
		return Cell{}, false
	}

	return that.cells[row][col], true
}

func (that *Board) IsValidMove(row, col int) bool {
	return that.inBounds(row, col) && that.cells[row][col].IsEmpty()
}

// PlaceMark - sets the occupant without any checks, callers validate first.
func (that *Board) PlaceMark(row, col int, player *Player) {
	that.cells[row][col].occupant = player
}

// FirstEmpty - scans row-major and returns the first empty cell.
func (that *Board) FirstEmpty() (int, int, bool) {
	for row := 0; row < that.size; row++ {
		for col := 0; col < that.size; col++ {
			if that.cells[row][col].IsEmpty() {
				return row, col, true
			}
		}
	}

	return 0, 0, false
}

func (that *Board) IsFull() bool {
	_, _, ok := that.FirstEmpty()
	return !ok
}

// CheckWin - reports whether any full row, column or diagonal belongs to a single player.
func (that *Board) CheckWin() bool {
	last := that.size - 1

	for i := 0; i < that.size; i++ {
		if that.lineWon(i, 0, 0, 1) || that.lineWon(0, i, 1, 0) {
			return true
		}
	}

	return that.lineWon(0, 0, 1, 1) || that.lineWon(0, last, 1, -1)
}

// lineWon walks size cells from (row, col) by (dRow, dCol).
func (that *Board) lineWon(row, col, dRow, dCol int) bool {
	first := that.cells[row][col].occupant
	if first == nil {
		return false
	}

	for i := 1; i < that.size; i++ {
		if !first.Same(that.cells[row+i*dRow][col+i*dCol].occupant) {
			return false
		}
	}

	return true
}

// Clone - returns a snapshot of the board, player pointers are shared.
func (that *Board) Clone() *Board {
	clone := &Board{
		size:  that.size,
		cells: make([][]Cell, that.size),
	}

	for row := range that.cells {
		clone.cells[row] = make([]Cell, that.size)
		copy(clone.cells[row], that.cells[row])
	}

	return clone
}

// String renders the board one row per line, empty cells as ".".
func (that *Board) String() string {
	var builder strings.Builder

	for row := 0; row < that.size; row++ {
		for col := 0; col < that.size; col++ {
			if col > 0 {
				builder.WriteByte(' ')
			}

			symbol := that.cells[row][col].Symbol()
			if symbol == EmptyCell {
				symbol = "."
			}
			builder.WriteString(symbol)
		}
		builder.WriteByte('\n')
	}

	return builder.String()
}
