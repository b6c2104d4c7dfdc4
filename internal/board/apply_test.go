package board

import (
	"errors"
	"testing"
)

func mustMove(t *testing.T, b *Board, from, to string) MoveInfo {
	t.Helper()
	info, err := b.MakeMove(mustSquare(t, from), mustSquare(t, to), nil)
	if err != nil {
		t.Fatalf("MakeMove(%s, %s): %v", from, to, err)
	}
	return info
}

func TestMakeMovePassesTurn(t *testing.T) {
	b := NewBoard()
	mustMove(t, b, "e2", "e4")

	if b.SideToMove() != Black {
		t.Fatalf("side to move = %v, want Black", b.SideToMove())
	}
	if got := b.LegalMoveCount(Black); got != 20 {
		t.Errorf("Black legal moves = %d, want 20", got)
	}
	if got := b.LegalMoveCount(White); got != 0 {
		t.Errorf("White legal moves = %d, want 0", got)
	}

	p, ok := b.PieceAt(mustSquare(t, "e4"))
	if !ok || p.Kind != Pawn || !p.HasMoved {
		t.Fatalf("e4 = %+v, %v; want a moved pawn", p, ok)
	}
	if rays := b.Rays(p.Square); len(rays) != 1 || !sameNames(rays[0], "e5") {
		t.Errorf("moved pawn rays = %v, want single step", rays)
	}
	if b.Occupied(mustSquare(t, "e2")) {
		t.Error("e2 still occupied")
	}
}

func TestMakeMoveCapture(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	info := mustMove(t, b, "e4", "d5")

	if !info.IsCapture() || info.Captured != Pawn || info.CaptureSq.String() != "d5" {
		t.Errorf("info = %+v, want pawn captured on d5", info)
	}
	if info.EnPassant || info.Castle || info.Promotion != NoPieceKind {
		t.Errorf("info = %+v, want a plain capture", info)
	}
	if got := len(b.Pieces(Black)); got != 1 {
		t.Errorf("Black has %d pieces, want 1", got)
	}
}

func TestMakeMoveEmptySquare(t *testing.T) {
	b := NewBoard()
	if _, err := b.MakeMove(mustSquare(t, "e4"), mustSquare(t, "e5"), nil); err == nil {
		t.Error("expected error moving from an empty square")
	}
}

func TestEnPassant(t *testing.T) {
	b := mustFEN(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	mustMove(t, b, "d7", "d5")

	d5, _ := b.PieceAt(mustSquare(t, "d5"))
	if !d5.EnPassant {
		t.Fatal("pawn on d5 not flagged after a double step")
	}
	if !containsName(b.LegalMoves(mustSquare(t, "e5")), "d6") {
		t.Fatalf("e5 legal moves = %v, want en passant on d6", names(b.LegalMoves(mustSquare(t, "e5"))))
	}

	cp := b.Clone()
	info := mustMove(t, cp, "e5", "d6")
	if !info.EnPassant || info.Captured != Pawn || info.CaptureSq.String() != "d5" {
		t.Errorf("info = %+v, want en passant capture of d5", info)
	}
	if cp.Occupied(mustSquare(t, "d5")) {
		t.Error("captured pawn still on d5")
	}
	if p, ok := cp.PieceAt(mustSquare(t, "d6")); !ok || p.Kind != Pawn || p.Color != White {
		t.Errorf("d6 = %+v, want white pawn", p)
	}

	// The right lapses once another move is played.
	mustMove(t, b, "e1", "e2")
	mustMove(t, b, "e8", "f8")
	d5, _ = b.PieceAt(mustSquare(t, "d5"))
	if d5.EnPassant {
		t.Error("en passant flag survived a later move")
	}
	if got := b.LegalMoves(mustSquare(t, "e5")); !sameNames(got, "e6") {
		t.Errorf("e5 legal moves = %v, want [e6]", names(got))
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		from, to string
		rookFrom string
		rookTo   string
	}{
		{"white short", "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1", "g1", "h1", "f1"},
		{"white long", "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1", "c1", "a1", "d1"},
		{"black short", "r3k2r/8/8/8/8/8/8/4K3 b kq - 0 1", "e8", "g8", "h8", "f8"},
		{"black long", "r3k2r/8/8/8/8/8/8/4K3 b kq - 0 1", "e8", "c8", "a8", "d8"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustFEN(t, tc.fen)
			info := mustMove(t, b, tc.from, tc.to)

			if !info.Castle {
				t.Errorf("info = %+v, want castle", info)
			}
			king, ok := b.PieceAt(mustSquare(t, tc.to))
			if !ok || king.Kind != King || !king.HasMoved {
				t.Errorf("%s = %+v, want moved king", tc.to, king)
			}
			rook, ok := b.PieceAt(mustSquare(t, tc.rookTo))
			if !ok || rook.Kind != Rook || !rook.HasMoved {
				t.Errorf("%s = %+v, want moved rook", tc.rookTo, rook)
			}
			if b.Occupied(mustSquare(t, tc.rookFrom)) {
				t.Errorf("%s still occupied", tc.rookFrom)
			}
		})
	}
}

func TestCastlingRightLostAfterRookMoves(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	mustMove(t, b, "h1", "h2")
	mustMove(t, b, "e8", "d8")
	mustMove(t, b, "h2", "h1")
	mustMove(t, b, "d8", "e8")

	got := b.LegalMoves(mustSquare(t, "e1"))
	if containsName(got, "g1") {
		t.Errorf("e1 legal moves = %v, short castle should be gone", names(got))
	}
	if !containsName(got, "c1") {
		t.Errorf("e1 legal moves = %v, long castle should remain", names(got))
	}
}

func TestPromotion(t *testing.T) {
	const fen = "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"

	t.Run("simulation promotes to queen", func(t *testing.T) {
		b := mustFEN(t, fen)
		before := b.Clone()
		cp := b.Simulate(mustSquare(t, "a7"), mustSquare(t, "a8"))

		if p, ok := cp.PieceAt(mustSquare(t, "a8")); !ok || p.Kind != Queen {
			t.Errorf("a8 after simulation = %+v, want queen", p)
		}
		if !cp.InCheck(Black) {
			t.Error("queen on a8 should check the black king")
		}
		if !b.Equal(before) {
			t.Error("Simulate modified the original board")
		}
	})

	t.Run("chooser picks the piece", func(t *testing.T) {
		b := mustFEN(t, fen)
		var gotColor Color
		var offered []PieceKind
		chooser := PromotionFunc(func(c Color, options []PieceKind) PieceKind {
			gotColor, offered = c, options
			return Knight
		})

		info, err := b.MakeMove(mustSquare(t, "a7"), mustSquare(t, "a8"), chooser)
		if err != nil {
			t.Fatalf("MakeMove: %v", err)
		}
		if gotColor != White || len(offered) != len(PromotionKinds) {
			t.Errorf("chooser called with %v %v", gotColor, offered)
		}
		if info.Promotion != Knight {
			t.Errorf("info.Promotion = %v, want Knight", info.Promotion)
		}
		p, _ := b.PieceAt(mustSquare(t, "a8"))
		if p.Kind != Knight || p.Color != White || !p.HasMoved {
			t.Errorf("a8 = %+v, want moved white knight", p)
		}
		if !sameNames(b.Sight(p.Square), "b6", "c7") {
			t.Errorf("promoted knight sight = %v", names(b.Sight(p.Square)))
		}
	})

	t.Run("nil chooser promotes to queen", func(t *testing.T) {
		b := mustFEN(t, fen)
		info := mustMove(t, b, "a7", "a8")
		if info.Promotion != Queen {
			t.Errorf("info.Promotion = %v, want Queen", info.Promotion)
		}
	})

	t.Run("invalid choice leaves board untouched", func(t *testing.T) {
		b := mustFEN(t, fen)
		before := b.Clone()
		_, err := b.MakeMove(mustSquare(t, "a7"), mustSquare(t, "a8"), Promote(King))
		if !errors.Is(err, ErrInvalidPromotion) {
			t.Fatalf("err = %v, want ErrInvalidPromotion", err)
		}
		if !b.Equal(before) {
			t.Error("board changed after rejected promotion")
		}
	})

	t.Run("chooser ignored for ordinary moves", func(t *testing.T) {
		b := mustFEN(t, fen)
		called := false
		chooser := PromotionFunc(func(Color, []PieceKind) PieceKind {
			called = true
			return Queen
		})
		if _, err := b.MakeMove(mustSquare(t, "e1"), mustSquare(t, "d1"), chooser); err != nil {
			t.Fatalf("MakeMove: %v", err)
		}
		if called {
			t.Error("chooser consulted for a king move")
		}
	})
}

func TestIsPromotion(t *testing.T) {
	b := mustFEN(t, "4k3/P7/8/8/8/8/7p/4K3 w - - 0 1")
	tests := []struct {
		from, to string
		want     bool
	}{
		{"a7", "a8", true},
		{"h2", "h1", true},
		{"e1", "d1", false},
		{"e8", "e7", false},
	}
	for _, tc := range tests {
		if got := b.IsPromotion(mustSquare(t, tc.from), mustSquare(t, tc.to)); got != tc.want {
			t.Errorf("IsPromotion(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
