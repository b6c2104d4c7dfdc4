package board

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrInvalidPromotion is returned when a promotion chooser answers with a
// kind that was not offered.
var ErrInvalidPromotion = errors.New("invalid promotion choice")

// PromotionChooser selects the piece a pawn promotes to. It is only consulted
// on real moves, never while testing legality.
type PromotionChooser interface {
	ChoosePromotion(c Color, options []PieceKind) PieceKind
}

// PromotionFunc adapts a function to the PromotionChooser interface.
type PromotionFunc func(c Color, options []PieceKind) PieceKind

// ChoosePromotion calls f.
func (f PromotionFunc) ChoosePromotion(c Color, options []PieceKind) PieceKind {
	return f(c, options)
}

// AutoQueen always promotes to a queen.
var AutoQueen PromotionChooser = Promote(Queen)

// Promote returns a chooser that always answers kind. Frontends that collect
// the choice before submitting the move use it to resume the request.
func Promote(kind PieceKind) PromotionChooser {
	return PromotionFunc(func(Color, []PieceKind) PieceKind { return kind })
}

// MoveInfo describes what a move did to the board.
type MoveInfo struct {
	From, To  Square
	Piece     PieceKind
	Color     Color
	Captured  PieceKind // NoPieceKind when nothing was taken
	CaptureSq Square    // differs from To for en passant
	EnPassant bool
	Castle    bool
	Promotion PieceKind // NoPieceKind unless the pawn promoted
}

// IsCapture returns true if the move removed an enemy piece.
func (mi MoveInfo) IsCapture() bool {
	return mi.Captured != NoPieceKind
}

// IsPromotion reports whether moving the piece on from to to would promote a
// pawn.
func (b *Board) IsPromotion(from, to Square) bool {
	p := b.at(from)
	return p != nil && p.Kind == Pawn && to.IsValid() && (to.Rank() == 0 || to.Rank() == 7)
}

// Simulate returns a disposable copy of the board with the move applied.
// Promotions resolve to a queen without consulting any chooser. The side to
// move and the legal move sets of the copy are left untouched.
func (b *Board) Simulate(from, to Square) *Board {
	cp := b.Clone()
	cp.apply(from, to, Queen)
	return cp
}

// MakeMove applies a move to the board, passes the turn and recomputes every
// piece's move sets. The move is not validated; callers check LegalMoves
// first. When the move promotes, chooser picks the new piece before anything
// is changed; a nil chooser promotes to a queen.
func (b *Board) MakeMove(from, to Square, chooser PromotionChooser) (MoveInfo, error) {
	p := b.at(from)
	if p == nil {
		return MoveInfo{}, fmt.Errorf("no piece on %v", from)
	}

	promotion := NoPieceKind
	if b.IsPromotion(from, to) {
		if chooser == nil {
			chooser = AutoQueen
		}
		promotion = chooser.ChoosePromotion(p.Color, slices.Clone(PromotionKinds))
		if !slices.Contains(PromotionKinds, promotion) {
			return MoveInfo{}, fmt.Errorf("%w: %v", ErrInvalidPromotion, promotion)
		}
	}

	info := b.apply(from, to, promotion)
	b.turn = b.turn.Other()
	b.updateLegal()
	return info, nil
}

// apply mutates the board: en passant removal, castling rook relocation,
// relocation, promotion, en passant flag maintenance, then a full sight
// recompute. promotion is used only when a pawn reaches the last rank.
func (b *Board) apply(from, to Square, promotion PieceKind) MoveInfo {
	p := b.cells[from]
	info := MoveInfo{
		From:      from,
		To:        to,
		Piece:     p.Kind,
		Color:     p.Color,
		Captured:  NoPieceKind,
		CaptureSq: NoSquare,
		Promotion: NoPieceKind,
	}

	if victim := b.cells[to]; victim != nil {
		info.Captured = victim.Kind
		info.CaptureSq = to
	}

	// En passant: a pawn changing file onto an empty square takes the pawn
	// beside it.
	if p.Kind == Pawn && from.File() != to.File() && b.cells[to] == nil {
		capSq := NewSquare(to.File(), from.Rank())
		if victim := b.cells[capSq]; victim != nil {
			info.Captured = victim.Kind
			info.CaptureSq = capSq
		}
		b.cells[capSq] = nil
		info.EnPassant = true
	}

	// Castling: the rook jumps to the square beside the king's destination.
	if p.Kind == King && abs(from.File()-to.File()) == 2 {
		rank := from.Rank()
		rookFrom, rookTo := NewSquare(longRookFile, rank), NewSquare(longRookTarget, rank)
		if to.File() == shortCastleFile {
			rookFrom, rookTo = NewSquare(shortRookFile, rank), NewSquare(shortRookTarget, rank)
		}
		if rook := b.cells[rookFrom]; rook != nil {
			b.relocate(rook, rookTo)
		}
		info.Castle = true
	}

	b.relocate(p, to)

	if p.Kind == Pawn && (to.Rank() == 0 || to.Rank() == 7) {
		if promotion == NoPieceKind {
			promotion = Queen
		}
		promoted := b.Put(promotion, p.Color, to)
		promoted.HasMoved = true
		info.Promotion = promotion
	}

	for _, q := range b.cells {
		if q != nil && q.Kind == Pawn {
			q.EnPassant = false
		}
	}
	if moved := b.cells[to]; moved.Kind == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		moved.EnPassant = true
	}

	b.updateSight()
	return info
}

// relocate moves p to the empty-or-captured cell to, keeping the grid and
// the piece's stored square in step.
func (b *Board) relocate(p *Piece, to Square) {
	b.cells[p.Square] = nil
	b.cells[to] = p
	p.Square = to
	p.HasMoved = true
	p.rays = generateRays(p)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
