package game

import (
	"fmt"
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

// Move is a recorded move request, stored as "e2e4" or "a7a8n".
type Move struct {
	From, To  board.Square
	Promotion board.PieceKind // NoPieceKind unless the move promoted
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != board.NoPieceKind {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove parses the form written by Move.String.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}
	from, err := board.ParseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := board.ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}

	m := Move{From: from, To: to, Promotion: board.NoPieceKind}
	if len(s) == 5 {
		i := strings.IndexByte("rnbq", s[4])
		if i < 0 {
			return Move{}, fmt.Errorf("invalid promotion in %q", s)
		}
		m.Promotion = []board.PieceKind{board.Rook, board.Knight, board.Bishop, board.Queen}[i]
	}
	return m, nil
}

// Moves returns the history as replayable moves.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.history))
	for i, mi := range g.history {
		out[i] = Move{From: mi.From, To: mi.To, Promotion: mi.Promotion}
	}
	return out
}

// Replay resets the game and requests each move in turn. It stops at the
// first rejected move, leaving the moves before it applied.
func (g *Game) Replay(moves []Move) error {
	g.Reset()
	for i, m := range moves {
		var chooser board.PromotionChooser = board.AutoQueen
		if m.Promotion != board.NoPieceKind {
			chooser = board.Promote(m.Promotion)
		}
		if err := g.RequestMoveWith(m.From, m.To, chooser); err != nil {
			return fmt.Errorf("replay move %d (%v): %w", i+1, m, err)
		}
	}
	return nil
}
