package board

import (
	"fmt"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a board from the first four fields of a FEN string.
//
// Castling rights become the HasMoved flags of the king and corner rooks,
// pawns off their starting rank are marked as moved, and the en passant
// target marks the pawn that just advanced two squares.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	var turn Color
	switch parts[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	b := NewEmptyBoard(turn)
	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(b, parts[2]); err != nil {
		return nil, err
	}
	if parts[3] != "-" {
		if err := parseEnPassant(b, parts[3]); err != nil {
			return nil, err
		}
	}

	b.Refresh()
	return b, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		col := 0      // a-file first

		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			kind, color, ok := pieceFromChar(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			p := b.Put(kind, color, NewSquare(7-col, rank))
			switch kind {
			case King, Rook:
				p.HasMoved = true // until a castling right says otherwise
			case Pawn:
				p.HasMoved = rank != color.backRank()+color.forward()
				p.rays = generateRays(p)
			}
			col++
		}

		if col != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, col)
		}
	}

	return nil
}

// parseCastlingRights clears HasMoved on each king and rook that still holds
// a castling right.
func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		color, rookFile := White, shortRookFile
		switch c {
		case 'K':
		case 'Q':
			rookFile = longRookFile
		case 'k':
			color = Black
		case 'q':
			color, rookFile = Black, longRookFile
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}

		rank := color.backRank()
		king := b.cells[NewSquare(kingStartFile, rank)]
		rook := b.cells[NewSquare(rookFile, rank)]
		if king == nil || king.Kind != King || king.Color != color ||
			rook == nil || rook.Kind != Rook || rook.Color != color {
			return fmt.Errorf("castling right %c without king and rook in place", c)
		}
		king.HasMoved = false
		rook.HasMoved = false
	}
	return nil
}

// parseEnPassant flags the pawn that skipped over target.
func parseEnPassant(b *Board, target string) error {
	sq, err := ParseSquare(target)
	if err != nil {
		return fmt.Errorf("invalid en passant square: %s", target)
	}

	var pawnSq Square
	var color Color
	switch sq.Rank() {
	case 2:
		pawnSq, color = NewSquare(sq.File(), 3), White
	case 5:
		pawnSq, color = NewSquare(sq.File(), 4), Black
	default:
		return fmt.Errorf("invalid en passant square: %s", target)
	}
	if color == b.turn {
		return fmt.Errorf("en passant square %s behind the side to move", target)
	}

	p := b.cells[pawnSq]
	if p == nil || p.Kind != Pawn || p.Color != color {
		return fmt.Errorf("no pawn behind en passant square %s", target)
	}
	p.EnPassant = true
	return nil
}

// FEN returns the first four FEN fields describing the board.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 7; file >= 0; file-- {
			p := b.cells[NewSquare(file, rank)]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.turn == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	rights := ""
	for _, r := range []struct {
		ch       byte
		color    Color
		rookFile int
	}{
		{'K', White, shortRookFile}, {'Q', White, longRookFile},
		{'k', Black, shortRookFile}, {'q', Black, longRookFile},
	} {
		king := b.cells[NewSquare(kingStartFile, r.color.backRank())]
		if king != nil && king.Kind == King && king.Color == r.color && !king.HasMoved &&
			b.unmovedRook(r.color, r.rookFile) {
			rights += string(r.ch)
		}
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	ep := "-"
	for _, p := range b.cells {
		if p != nil && p.Kind == Pawn && p.EnPassant {
			ep = NewSquare(p.Square.File(), p.Square.Rank()-p.Color.forward()).String()
		}
	}
	sb.WriteString(" " + ep)

	return sb.String()
}

func (b *Board) unmovedRook(c Color, file int) bool {
	rook := b.cells[NewSquare(file, c.backRank())]
	return rook != nil && rook.Kind == Rook && rook.Color == c && !rook.HasMoved
}
