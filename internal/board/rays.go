package board

// direction is a (file, rank) step.
type direction struct{ df, dr int }

var (
	orthogonal = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	royal      = append(append([]direction{}, diagonal...), orthogonal...)

	knightJumps = []direction{
		{1, 2}, {-1, 2}, {1, -2}, {-1, -2},
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	}
	kingSteps = []direction{
		{0, -1}, {1, -1}, {1, 0}, {1, 1},
		{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	}
)

// rayGenerators maps each piece kind to its geometric candidate generator.
var rayGenerators = [...]func(p *Piece) [][]Square{
	Pawn:   pawnRays,
	Rook:   func(p *Piece) [][]Square { return slide(p.Square, orthogonal) },
	Knight: func(p *Piece) [][]Square { return leap(p.Square, knightJumps) },
	Bishop: func(p *Piece) [][]Square { return slide(p.Square, diagonal) },
	Queen:  func(p *Piece) [][]Square { return slide(p.Square, royal) },
	King:   func(p *Piece) [][]Square { return leap(p.Square, kingSteps) },
}

// generateRays returns the ordered candidate rays for p, ignoring occupancy.
// Rays are clipped at the board edge and empty rays are dropped.
func generateRays(p *Piece) [][]Square {
	return rayGenerators[p.Kind](p)
}

// slide extends each direction until it leaves the board.
func slide(from Square, dirs []direction) [][]Square {
	var rays [][]Square
	for _, d := range dirs {
		var ray []Square
		f, r := from.File()+d.df, from.Rank()+d.dr
		for onBoard(f, r) {
			ray = append(ray, NewSquare(f, r))
			f += d.df
			r += d.dr
		}
		if len(ray) > 0 {
			rays = append(rays, ray)
		}
	}
	return rays
}

// leap produces a single-square ray per on-board offset.
func leap(from Square, offsets []direction) [][]Square {
	var rays [][]Square
	for _, d := range offsets {
		f, r := from.File()+d.df, from.Rank()+d.dr
		if onBoard(f, r) {
			rays = append(rays, []Square{NewSquare(f, r)})
		}
	}
	return rays
}

// pawnRays returns the forward ray: one step, plus a second step in the same
// ray while the pawn has not moved.
func pawnRays(p *Piece) [][]Square {
	step := p.Color.forward()
	f, r := p.Square.File(), p.Square.Rank()

	if !onBoard(f, r+step) {
		return nil
	}
	ray := []Square{NewSquare(f, r+step)}
	if !p.HasMoved && onBoard(f, r+2*step) {
		ray = append(ray, NewSquare(f, r+2*step))
	}
	return [][]Square{ray}
}
