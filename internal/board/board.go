package board

import (
	"strings"

	"golang.org/x/exp/slices"
)

// backRankOrder is the starting arrangement of a back rank, file 0 first.
var backRankOrder = [8]PieceKind{Rook, Knight, Bishop, King, Queen, Bishop, Knight, Rook}

// Board is an 8x8 grid of optional pieces plus the side to move.
type Board struct {
	cells [64]*Piece
	turn  Color
}

// NewBoard returns a board in the standard starting position with every
// piece's move sets computed. White moves first.
func NewBoard() *Board {
	b := NewEmptyBoard(White)
	for file := 0; file < 8; file++ {
		b.Put(backRankOrder[file], White, NewSquare(file, 0))
		b.Put(Pawn, White, NewSquare(file, 1))
		b.Put(Pawn, Black, NewSquare(file, 6))
		b.Put(backRankOrder[file], Black, NewSquare(file, 7))
	}
	b.Refresh()
	return b
}

// NewEmptyBoard returns a board with no pieces and the given side to move.
func NewEmptyBoard(turn Color) *Board {
	return &Board{turn: turn}
}

// Put places a new unmoved piece on sq, replacing any piece already there,
// and returns it so callers can adjust HasMoved or EnPassant. Call Refresh
// once the position is complete.
func (b *Board) Put(kind PieceKind, c Color, sq Square) *Piece {
	p := &Piece{Kind: kind, Color: c, Square: sq}
	p.rays = generateRays(p)
	b.cells[sq] = p
	return p
}

// Remove clears sq.
func (b *Board) Remove(sq Square) {
	b.cells[sq] = nil
}

// Clone returns a fully independent copy of the board.
func (b *Board) Clone() *Board {
	cp := &Board{turn: b.turn}
	for sq, p := range b.cells {
		if p != nil {
			cp.cells[sq] = p.clone()
		}
	}
	return cp
}

// SideToMove returns the color whose turn it is.
func (b *Board) SideToMove() Color {
	return b.turn
}

// PieceAt returns a copy of the piece on sq, if any.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.IsValid() || b.cells[sq] == nil {
		return Piece{}, false
	}
	return *b.cells[sq], true
}

// Occupied reports whether any piece stands on sq.
func (b *Board) Occupied(sq Square) bool {
	return sq.IsValid() && b.cells[sq] != nil
}

// Rays returns the geometric candidate rays of the piece on sq.
func (b *Board) Rays(sq Square) [][]Square {
	p := b.at(sq)
	if p == nil {
		return nil
	}
	out := make([][]Square, len(p.rays))
	for i, ray := range p.rays {
		out[i] = slices.Clone(ray)
	}
	return out
}

// Sight returns the truncated move set (squares seen) of the piece on sq.
func (b *Board) Sight(sq Square) []Square {
	p := b.at(sq)
	if p == nil {
		return nil
	}
	return slices.Clone(p.sight)
}

// LegalMoves returns the legal destinations of the piece on sq. Pieces of
// the side not to move have no legal moves.
func (b *Board) LegalMoves(sq Square) []Square {
	p := b.at(sq)
	if p == nil {
		return nil
	}
	return slices.Clone(p.legal)
}

// LegalMoveCount sums the legal moves of every piece of color c.
func (b *Board) LegalMoveCount(c Color) int {
	n := 0
	for _, p := range b.cells {
		if p != nil && p.Color == c {
			n += len(p.legal)
		}
	}
	return n
}

// Pieces returns copies of every piece of color c, in square order.
func (b *Board) Pieces(c Color) []Piece {
	var out []Piece
	for _, p := range b.cells {
		if p != nil && p.Color == c {
			out = append(out, *p)
		}
	}
	return out
}

// Refresh recomputes the truncated and legal move sets of every piece.
func (b *Board) Refresh() {
	b.updateSight()
	b.updateLegal()
}

// Equal reports whether two boards hold the same pieces, flags, derived
// move sets and side to move.
func (b *Board) Equal(o *Board) bool {
	if b.turn != o.turn {
		return false
	}
	for sq := range b.cells {
		p, q := b.cells[sq], o.cells[sq]
		if (p == nil) != (q == nil) {
			return false
		}
		if p == nil {
			continue
		}
		if p.Kind != q.Kind || p.Color != q.Color || p.Square != q.Square ||
			p.HasMoved != q.HasMoved || p.EnPassant != q.EnPassant {
			return false
		}
		if !slices.Equal(p.sight, q.sight) || !slices.Equal(p.legal, q.legal) {
			return false
		}
	}
	return true
}

// String returns an ASCII diagram of the board, rank 7 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteString(" ")
		for file := 7; file >= 0; file-- {
			if p := b.cells[NewSquare(file, rank)]; p != nil {
				sb.WriteString(p.String())
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func (b *Board) at(sq Square) *Piece {
	if !sq.IsValid() {
		return nil
	}
	return b.cells[sq]
}
