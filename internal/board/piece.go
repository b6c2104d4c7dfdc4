package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// forward returns the rank step a pawn of this color advances by.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// backRank returns the rank the color's pieces start on.
func (c Color) backRank() int {
	if c == White {
		return 0
	}
	return 7
}

// PieceKind represents the type of a chess piece.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Rook
	Knight
	Bishop
	Queen
	King
	NoPieceKind
)

// String returns the piece kind name.
func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Rook:
		return "Rook"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece kind (lowercase).
func (k PieceKind) Char() byte {
	chars := []byte{'p', 'r', 'n', 'b', 'q', 'k', ' '}
	if k > NoPieceKind {
		return ' '
	}
	return chars[k]
}

// PromotionKinds lists the kinds a pawn may promote to, in offer order.
var PromotionKinds = []PieceKind{Queen, Rook, Knight, Bishop}

// Piece is a single chess piece on a board.
//
// A piece is owned by the board cell that holds it; Square always equals that
// cell. The derived move sets are recomputed after every move on the board.
type Piece struct {
	Kind     PieceKind
	Color    Color
	Square   Square
	HasMoved bool
	// EnPassant is set on a pawn that advanced two ranks on the last move.
	EnPassant bool

	rays  [][]Square // geometry only (RayCandidates)
	sight []Square   // occupancy-truncated (TruncatedMoves)
	legal []Square   // king-safe subset of sight (LegalMoves)
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	c := p.Kind.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// clone returns an independent copy of the piece. The move-set slices are
// shared because they are always replaced, never written in place.
func (p *Piece) clone() *Piece {
	cp := *p
	return &cp
}

// pieceFromChar converts a FEN character to a kind and color.
func pieceFromChar(c byte) (PieceKind, Color, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return Pawn, color, true
	case 'R':
		return Rook, color, true
	case 'N':
		return Knight, color, true
	case 'B':
		return Bishop, color, true
	case 'Q':
		return Queen, color, true
	case 'K':
		return King, color, true
	default:
		return NoPieceKind, color, false
	}
}
