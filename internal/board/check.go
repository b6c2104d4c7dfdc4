package board

import "golang.org/x/exp/slices"

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (b *Board) KingSquare(c Color) Square {
	for _, p := range b.cells {
		if p != nil && p.Kind == King && p.Color == c {
			return p.Square
		}
	}
	return NoSquare
}

// InCheck reports whether c's king stands in the sight of any opposing
// piece, using the truncated move sets currently stored on the board.
func (b *Board) InCheck(c Color) bool {
	king := b.KingSquare(c)
	if king == NoSquare {
		return false
	}
	return b.Attacked(king, c.Other())
}

// Attacked reports whether sq appears in the sight of any piece of color by.
func (b *Board) Attacked(sq Square, by Color) bool {
	for _, p := range b.cells {
		if p != nil && p.Color == by && slices.Contains(p.sight, sq) {
			return true
		}
	}
	return false
}
