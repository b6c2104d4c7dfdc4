package board

// Castling destinations. The king starts on file 3; the short side rook
// sits on file 0 and the long side rook on file 7.
const (
	kingStartFile = 3

	shortRookFile   = 0
	shortCastleFile = 1 // king destination
	shortRookTarget = 2

	longRookFile   = 7
	longCastleFile = 5 // king destination
	longRookTarget = 4
)

// enPassantRank returns the rank a pawn of color c must stand on to capture
// en passant.
func enPassantRank(c Color) int {
	if c == White {
		return 4
	}
	return 3
}

// truncators maps each piece kind to its line-of-sight truncation.
var truncators = [...]func(b *Board, p *Piece) []Square{
	Pawn:   truncatePawn,
	Rook:   truncateDefault,
	Knight: truncateDefault,
	Bishop: truncateDefault,
	Queen:  truncateDefault,
	King:   truncateKing,
}

// updateSight recomputes the truncated move set of every piece.
func (b *Board) updateSight() {
	for _, p := range b.cells {
		if p != nil {
			p.sight = truncators[p.Kind](b, p)
		}
	}
}

// truncateDefault walks each ray, stopping before an own piece and stopping
// on (and including) an enemy piece.
func truncateDefault(b *Board, p *Piece) []Square {
	sight := make([]Square, 0, 16)
	for _, ray := range p.rays {
		for _, sq := range ray {
			occupant := b.cells[sq]
			if occupant == nil {
				sight = append(sight, sq)
				continue
			}
			if occupant.Color != p.Color {
				sight = append(sight, sq)
			}
			break
		}
	}
	return sight
}

// truncatePawn keeps forward squares only while empty, then appends
// diagonal captures and en passant destinations.
func truncatePawn(b *Board, p *Piece) []Square {
	sight := make([]Square, 0, 4)
	for _, ray := range p.rays {
		for _, sq := range ray {
			if b.cells[sq] != nil {
				break
			}
			sight = append(sight, sq)
		}
	}

	step := p.Color.forward()
	f, r := p.Square.File(), p.Square.Rank()

	for _, df := range []int{1, -1} {
		if !onBoard(f+df, r+step) {
			continue
		}
		target := b.cells[NewSquare(f+df, r+step)]
		if target != nil && target.Color != p.Color {
			sight = append(sight, NewSquare(f+df, r+step))
		}
	}

	if r == enPassantRank(p.Color) {
		for _, df := range []int{1, -1} {
			if !onBoard(f+df, r) {
				continue
			}
			beside := b.cells[NewSquare(f+df, r)]
			if beside != nil && beside.Kind == Pawn && beside.Color != p.Color && beside.EnPassant {
				sight = append(sight, NewSquare(f+df, r+step))
			}
		}
	}
	return sight
}

// truncateKing runs the default walk, then appends castling destinations.
// Attacked transit squares are not checked.
func truncateKing(b *Board, p *Piece) []Square {
	sight := truncateDefault(b, p)
	if p.HasMoved {
		return sight
	}

	rank := p.Square.Rank()
	if b.castleReady(p, shortRookFile, rank) {
		sight = append(sight, NewSquare(shortCastleFile, rank))
	}
	if b.castleReady(p, longRookFile, rank) {
		sight = append(sight, NewSquare(longCastleFile, rank))
	}
	return sight
}

// castleReady reports whether an unmoved rook of the king's color stands on
// rookFile and every square strictly between king and rook is empty.
func (b *Board) castleReady(king *Piece, rookFile, rank int) bool {
	rook := b.cells[NewSquare(rookFile, rank)]
	if rook == nil || rook.Kind != Rook || rook.Color != king.Color || rook.HasMoved {
		return false
	}

	lo, hi := king.Square.File(), rookFile
	if lo > hi {
		lo, hi = hi, lo
	}
	for f := lo + 1; f < hi; f++ {
		if b.cells[NewSquare(f, rank)] != nil {
			return false
		}
	}
	return true
}
