package game

import (
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/memory"
	"github.com/hailam/chessrules/internal/board"
)

func quietLogger() log.Interface {
	return &log.Logger{Handler: discard.New(), Level: log.DebugLevel}
}

func sq(t testing.TB, s string) board.Square {
	t.Helper()
	out, err := board.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return out
}

func newGameFromFEN(t *testing.T, fen string, opts ...Option) *Game {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return New(append([]Option{WithLogger(quietLogger()), WithBoard(b)}, opts...)...)
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := g.RequestMove(sq(t, m[:2]), sq(t, m[2:])); err != nil {
			t.Fatalf("RequestMove(%s): %v", m, err)
		}
	}
}

func TestNewGame(t *testing.T) {
	g := New(WithLogger(quietLogger()))

	if g.SideToMove() != board.White {
		t.Errorf("side to move = %v, want White", g.SideToMove())
	}
	if g.GameOver() {
		t.Error("new game is over")
	}
	if got := g.LegalMoveCount(board.White); got != 20 {
		t.Errorf("White legal moves = %d, want 20", got)
	}
	if got := g.LegalMoveCount(board.Black); got != 0 {
		t.Errorf("Black legal moves = %d, want 0", got)
	}
	if got := len(g.Pieces()); got != 32 {
		t.Errorf("pieces = %d, want 32", got)
	}
	if p, ok := g.PieceAt(sq(t, "e1")); !ok || p.Kind != board.King || p.Color != board.White {
		t.Errorf("e1 = %+v, want white king", p)
	}
	if got := g.KingSquare(board.Black); got != sq(t, "e8") {
		t.Errorf("black king on %v, want e8", got)
	}
}

func TestFoolsMate(t *testing.T) {
	g := New(WithLogger(quietLogger()))
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if !g.GameOver() {
		t.Fatal("game not over after fool's mate")
	}
	if !g.InCheck() {
		t.Error("White should be in check")
	}
	if w, over := g.Winner(); !over || w != board.Black {
		t.Errorf("Winner() = %v, %v; want Black, true", w, over)
	}
	if got, want := g.Result(), "Checkmate, Black wins!"; got != want {
		t.Errorf("Result() = %q, want %q", got, want)
	}

	err := g.RequestMove(sq(t, "a2"), sq(t, "a3"))
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("move after mate: err = %v, want ErrGameOver", err)
	}
	if g.MoveCount() != 4 {
		t.Errorf("MoveCount() = %d, want 4", g.MoveCount())
	}
}

func TestRejections(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		from, to string
		want     error
		reason   Reason
	}{
		{"empty square", board.StartFEN, "e4", "e5", ErrNoPiece, ReasonNoPiece},
		{"wrong side", board.StartFEN, "e7", "e5", ErrWrongSide, ReasonWrongSide},
		{"not a pawn move", board.StartFEN, "e2", "e5", ErrNotPseudoMove, ReasonNotPseudoMove},
		{"own piece in the way", board.StartFEN, "a1", "a3", ErrNotPseudoMove, ReasonNotPseudoMove},
		{"capture own piece", board.StartFEN, "d1", "d2", ErrNotPseudoMove, ReasonNotPseudoMove},
		{"off board", board.StartFEN, "e2", "x9", ErrNotPseudoMove, ReasonNotPseudoMove},
		{"pinned bishop", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2", "d3", ErrKingExposed, ReasonKingExposed},
		{"walk into check", "4k3/8/8/8/8/8/8/r3K3 w - - 0 1", "e1", "d1", ErrKingExposed, ReasonKingExposed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGameFromFEN(t, tc.fen)
			before := g.FEN()

			to := board.NoSquare
			if s, err := board.ParseSquare(tc.to); err == nil {
				to = s
			}
			err := g.RequestMove(sq(t, tc.from), to)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}

			var me *MoveError
			if !errors.As(err, &me) {
				t.Fatalf("err = %T, want *MoveError", err)
			}
			if me.Reason() != tc.reason {
				t.Errorf("Reason() = %v, want %v", me.Reason(), tc.reason)
			}
			if g.FEN() != before || g.MoveCount() != 0 {
				t.Errorf("game changed after rejection: %s", g.FEN())
			}
		})
	}
}

func TestReasonOf(t *testing.T) {
	if got := ReasonOf(nil); got != ReasonNone {
		t.Errorf("ReasonOf(nil) = %v", got)
	}
	if got := ReasonOf(errors.New("boom")); got != ReasonUnknown {
		t.Errorf("ReasonOf(other) = %v", got)
	}
	if got := ReasonKingExposed.String(); got != "Your king is unprotected" {
		t.Errorf("ReasonKingExposed.String() = %q", got)
	}
}

func TestPromotionChooser(t *testing.T) {
	const fen = "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"

	calls := 0
	chooser := board.PromotionFunc(func(c board.Color, options []board.PieceKind) board.PieceKind {
		calls++
		return board.Rook
	})
	g := newGameFromFEN(t, fen, WithChooser(chooser))

	// Legality of a7-a8 has been evaluated by now without asking.
	play(t, g, "e1d1", "e8f7")
	if calls != 0 {
		t.Fatalf("chooser called %d times before promoting", calls)
	}

	play(t, g, "a7a8")
	if calls != 1 {
		t.Errorf("chooser called %d times, want 1", calls)
	}
	if p, _ := g.PieceAt(sq(t, "a8")); p.Kind != board.Rook {
		t.Errorf("a8 = %v, want rook", p.Kind)
	}
	if last, _ := g.LastMove(); last.Promotion != board.Rook {
		t.Errorf("last move promotion = %v, want Rook", last.Promotion)
	}
}

func TestInvalidPromotionChoice(t *testing.T) {
	g := newGameFromFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	before := g.FEN()

	err := g.RequestMoveWith(sq(t, "a7"), sq(t, "a8"), board.Promote(board.Pawn))
	if ReasonOf(err) != ReasonInvalidPromotion {
		t.Fatalf("err = %v, want invalid promotion", err)
	}
	if g.FEN() != before || g.MoveCount() != 0 {
		t.Errorf("game changed after rejected promotion: %s", g.FEN())
	}

	if err := g.RequestMoveWith(sq(t, "a7"), sq(t, "a8"), board.Promote(board.Knight)); err != nil {
		t.Fatalf("RequestMoveWith: %v", err)
	}
	if p, _ := g.PieceAt(sq(t, "a8")); p.Kind != board.Knight {
		t.Errorf("a8 = %v, want knight", p.Kind)
	}
}

func TestStalemateEndsGame(t *testing.T) {
	g := newGameFromFEN(t, "7k/8/6K1/8/8/8/5Q2/8 w - - 0 1")
	play(t, g, "f2f7")

	if !g.GameOver() {
		t.Fatal("game not over with Black stalemated")
	}
	if g.InCheck() {
		t.Error("Black is not in check")
	}
	if w, _ := g.Winner(); w != board.White {
		t.Errorf("winner = %v, want White", w)
	}
}

func TestGameOverFromStartingPosition(t *testing.T) {
	g := newGameFromFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !g.GameOver() {
		t.Error("mated position should start over")
	}
}

func TestHistoryAndReplay(t *testing.T) {
	g := New(WithLogger(quietLogger()))
	play(t, g, "e2e4", "d7d5", "e4d5", "g8f6")

	hist := g.History()
	if len(hist) != 4 {
		t.Fatalf("history length = %d, want 4", len(hist))
	}
	if !hist[2].IsCapture() || hist[2].Captured != board.Pawn {
		t.Errorf("third move = %+v, want pawn capture", hist[2])
	}

	var got []string
	for _, m := range g.Moves() {
		got = append(got, m.String())
	}
	want := []string{"e2e4", "d7d5", "e4d5", "g8f6"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Moves()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	replayed := New(WithLogger(quietLogger()))
	if err := replayed.Replay(g.Moves()); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if replayed.FEN() != g.FEN() {
		t.Errorf("replayed FEN = %s, want %s", replayed.FEN(), g.FEN())
	}

	g.Reset()
	if g.MoveCount() != 0 || g.FEN() != board.NewBoard().FEN() {
		t.Errorf("Reset left %d moves, FEN %s", g.MoveCount(), g.FEN())
	}
}

func TestReplayStopsAtIllegalMove(t *testing.T) {
	moves := []Move{
		{From: sq(t, "e2"), To: sq(t, "e4"), Promotion: board.NoPieceKind},
		{From: sq(t, "e2"), To: sq(t, "e3"), Promotion: board.NoPieceKind},
	}
	g := New(WithLogger(quietLogger()))
	err := g.Replay(moves)
	if !errors.Is(err, ErrNoPiece) {
		t.Fatalf("err = %v, want ErrNoPiece", err)
	}
	if g.MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, want 1", g.MoveCount())
	}
}

func TestReplayPromotion(t *testing.T) {
	g := newGameFromFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	m, err := ParseMove("a7a8n")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Replay([]Move{m}); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if p, _ := g.PieceAt(sq(t, "a8")); p.Kind != board.Knight {
		t.Errorf("a8 = %v, want knight", p.Kind)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"e2e4", false},
		{"a7a8q", false},
		{"h2h1r", false},
		{"e2", true},
		{"e2e9", true},
		{"i2e4", true},
		{"a7a8k", true},
		{"e2e4qq", true},
	}
	for _, tc := range tests {
		m, err := ParseMove(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMove(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && m.String() != tc.in {
			t.Errorf("ParseMove(%q).String() = %q", tc.in, m.String())
		}
	}
}

func TestLogging(t *testing.T) {
	h := memory.New()
	g := New(WithLogger(&log.Logger{Handler: h, Level: log.DebugLevel}))

	play(t, g, "f2f3", "e7e5", "g2g4")
	g.RequestMove(sq(t, "a2"), sq(t, "a3"))
	play(t, g, "d8h4")

	var moves, rejected, over int
	for _, e := range h.Entries {
		switch e.Message {
		case "move":
			moves++
			if e.Fields.Get("from") == nil || e.Fields.Get("to") == nil {
				t.Errorf("move entry without squares: %v", e.Fields)
			}
		case "move rejected":
			rejected++
		case "game over":
			over++
			if e.Level != log.InfoLevel {
				t.Errorf("game over logged at %v", e.Level)
			}
			if e.Fields.Get("winner") != board.Black {
				t.Errorf("winner field = %v", e.Fields.Get("winner"))
			}
		}
	}
	if moves != 4 || rejected != 1 || over != 1 {
		t.Errorf("logged %d moves, %d rejections, %d game overs", moves, rejected, over)
	}
}
