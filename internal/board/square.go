// Package board implements the chess rules engine: board state, per-piece
// lines of sight, legality filtering and move application.
package board

import "fmt"

// Square represents a square on the chess board (0-63), stored as rank*8+file.
//
// Files run 0-7 and ranks run 0-7, with White's back rank at rank 0. The
// starting arrangement puts the king on file 3, so file 0 is the h-file and
// file 7 is the a-file when squares are named algebraically.
type Square uint8

// NoSquare marks the absence of a square.
const NoSquare Square = 64

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the file (column) of the square (0-7).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0 is White's back rank).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic name of the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'h'-sq.File(), '1'+sq.Rank())
}

// ParseSquare parses an algebraic name (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int('h' - s[0])
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// onBoard reports whether a file/rank pair lies inside the 8x8 grid.
func onBoard(file, rank int) bool {
	return file >= 0 && file <= 7 && rank >= 0 && rank <= 7
}
