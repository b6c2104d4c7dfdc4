package board

// updateLegal recomputes the legal move set of every piece. Each candidate
// of the side to move is played out on a scratch copy of the board and kept
// only if the mover's king is not left in check; pieces of the other side
// get no legal moves.
func (b *Board) updateLegal() {
	for _, p := range b.cells {
		if p == nil {
			continue
		}
		if p.Color != b.turn {
			p.legal = nil
			continue
		}
		legal := make([]Square, 0, len(p.sight))
		for _, to := range p.sight {
			if b.isLegal(p.Square, to) {
				legal = append(legal, to)
			}
		}
		p.legal = legal
	}
}

// isLegal plays from-to on a copy and reports whether the mover's king is
// safe afterwards. The receiver is never modified.
func (b *Board) isLegal(from, to Square) bool {
	mover := b.cells[from].Color
	return !b.Simulate(from, to).InCheck(mover)
}
