package tui

import (
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/gdamore/tcell/v2"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
)

var quiet = &log.Logger{Handler: discard.New(), Level: log.DebugLevel}

func newApp(t *testing.T, s *session.Session) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return New(screen, s, quiet), screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		if c := cells[y*w+x]; len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func sq(t *testing.T, name string) board.Square {
	t.Helper()
	s, err := board.ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func click(a *App, s board.Square) {
	col, row := a.cellOf(s)
	x, y := boardX+col*cellW+1, boardY+row
	a.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func clickMoves(t *testing.T, a *App, moves ...string) {
	t.Helper()
	for _, m := range moves {
		click(a, sq(t, m[:2]))
		click(a, sq(t, m[2:4]))
	}
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func fromFEN(t *testing.T, fen string) *session.Session {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	s := session.New(nil, quiet)
	s.Game = game.New(game.WithLogger(quiet), game.WithBoard(b))
	return s
}

func TestDrawBoard(t *testing.T) {
	tests := []struct {
		name    string
		flip    bool
		topRow  string
		files   string
		topRank string
	}{
		{"white at bottom", false, " r  n  b  q  k  b  n  r ", "a  b  c  d  e  f  g  h", "8"},
		{"black at bottom", true, " R  N  B  K  Q  B  N  R ", "h  g  f  e  d  c  b  a", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, screen := newApp(t, session.New(nil, quiet))
			if tt.flip {
				a.HandleEvent(key('f'))
			}
			a.Draw()

			top := rowText(screen, boardY)
			if !strings.Contains(top, tt.topRow) {
				t.Errorf("top row = %q, want %q", top, tt.topRow)
			}
			if got := top[boardX-2 : boardX-1]; got != tt.topRank {
				t.Errorf("top rank label = %q, want %q", got, tt.topRank)
			}
			if files := rowText(screen, boardY+8); !strings.Contains(files, tt.files) {
				t.Errorf("file labels = %q, want %q", files, tt.files)
			}
		})
	}
}

func TestCursorDrawn(t *testing.T) {
	a, screen := newApp(t, session.New(nil, quiet))
	a.Draw()

	// e2 is the fifth column of the second row from the bottom.
	row := rowText(screen, boardY+6)
	if got := row[boardX+4*cellW : boardX+5*cellW]; got != "[P]" {
		t.Errorf("cursor cell = %q, want [P]", got)
	}
}

func TestSquareAt(t *testing.T) {
	for _, flip := range []bool{false, true} {
		a, _ := newApp(t, session.New(nil, quiet))
		a.flipped = flip
		for s := board.Square(0); s < board.NoSquare; s++ {
			col, row := a.cellOf(s)
			for dx := 0; dx < cellW; dx++ {
				got, ok := a.squareAt(boardX+col*cellW+dx, boardY+row)
				if !ok || got != s {
					t.Fatalf("flip=%v: squareAt(cell of %v) = %v, %v", flip, s, got, ok)
				}
			}
		}
	}

	a, _ := newApp(t, session.New(nil, quiet))
	for _, pos := range [][2]int{{0, 0}, {boardX - 1, boardY}, {boardX + 8*cellW, boardY}, {boardX, boardY + 8}} {
		if s, ok := a.squareAt(pos[0], pos[1]); ok {
			t.Errorf("squareAt(%d, %d) = %v, want off-board", pos[0], pos[1], s)
		}
	}
}

func TestClickMove(t *testing.T) {
	s := session.New(nil, quiet)
	a, _ := newApp(t, s)

	clickMoves(t, a, "e2e4")
	if s.Game.MoveCount() != 1 {
		t.Fatalf("MoveCount = %d, want 1", s.Game.MoveCount())
	}
	if s.Game.SideToMove() != board.Black {
		t.Errorf("side to move = %v, want Black", s.Game.SideToMove())
	}
	if a.selected != board.NoSquare {
		t.Errorf("selection kept after move: %v", a.selected)
	}
}

func TestKeyboardMove(t *testing.T) {
	s := session.New(nil, quiet)
	a, _ := newApp(t, s)

	a.HandleEvent(special(tcell.KeyEnter))
	if a.selected != sq(t, "e2") {
		t.Fatalf("selected = %v, want e2", a.selected)
	}
	a.HandleEvent(special(tcell.KeyUp))
	a.HandleEvent(special(tcell.KeyUp))
	a.HandleEvent(special(tcell.KeyEnter))

	if got := s.MoveStrings(); len(got) != 1 || got[0] != "e2e4" {
		t.Errorf("moves = %v, want [e2e4]", got)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	a, _ := newApp(t, session.New(nil, quiet))
	for i := 0; i < 10; i++ {
		a.HandleEvent(special(tcell.KeyDown))
		a.HandleEvent(special(tcell.KeyLeft))
	}
	if a.cursor != sq(t, "a1") {
		t.Errorf("cursor = %v, want a1", a.cursor)
	}
}

func TestRejectedMoveMessage(t *testing.T) {
	s := session.New(nil, quiet)
	a, screen := newApp(t, s)

	clickMoves(t, a, "e7e5")
	if s.Game.MoveCount() != 0 {
		t.Fatalf("MoveCount = %d, want 0", s.Game.MoveCount())
	}
	want := game.ReasonWrongSide.String()
	if a.message != want {
		t.Errorf("message = %q, want %q", a.message, want)
	}

	a.Draw()
	if row := rowText(screen, 21); !strings.Contains(row, want) {
		t.Errorf("message row = %q", row)
	}
}

func TestCheckmateMessage(t *testing.T) {
	s := session.New(nil, quiet)
	a, screen := newApp(t, s)

	clickMoves(t, a, "f2f3", "e7e5", "g2g4", "d8h4")
	if !s.Game.GameOver() {
		t.Fatal("game not over")
	}
	if a.message != "Checkmate, Black wins!" {
		t.Errorf("message = %q", a.message)
	}

	a.Draw()
	if status := rowText(screen, boardY+3); !strings.Contains(status, "Checkmate, Black wins!") {
		t.Errorf("status row = %q", status)
	}
}

func TestPromotionPrompt(t *testing.T) {
	tests := []struct {
		name   string
		key    *tcell.EventKey
		want   board.PieceKind
		played bool
	}{
		{"knight", key('n'), board.Knight, true},
		{"rook", key('r'), board.Rook, true},
		{"cancel", special(tcell.KeyEscape), board.Pawn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fromFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - -")
			a, _ := newApp(t, s)

			clickMoves(t, a, "a7a8")
			if a.mode != modePromote {
				t.Fatalf("mode = %v, want promotion prompt", a.mode)
			}
			if s.Game.MoveCount() != 0 {
				t.Fatal("move made before a piece was chosen")
			}

			a.HandleEvent(key('x'))
			if a.mode != modePromote {
				t.Fatal("unknown key closed the prompt")
			}

			a.HandleEvent(tt.key)
			if a.mode != modePlay {
				t.Errorf("mode = %v after answer", a.mode)
			}
			if got := s.Game.MoveCount() == 1; got != tt.played {
				t.Fatalf("played = %v, want %v", got, tt.played)
			}
			if !tt.played {
				return
			}
			if p, ok := s.Game.PieceAt(sq(t, "a8")); !ok || p.Kind != tt.want {
				t.Errorf("a8 = %v, %v, want %v", p.Kind, ok, tt.want)
			}
		})
	}
}

func TestAutoQueen(t *testing.T) {
	s := fromFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - -")
	s.Prefs.AutoQueen = true
	a, _ := newApp(t, s)

	clickMoves(t, a, "a7a8")
	if a.mode != modePlay {
		t.Errorf("prompted with auto-queen on")
	}
	if p, ok := s.Game.PieceAt(sq(t, "a8")); !ok || p.Kind != board.Queen {
		t.Errorf("a8 = %v, %v, want Queen", p.Kind, ok)
	}
}

func TestResumePrompt(t *testing.T) {
	tests := []struct {
		name      string
		answer    *tcell.EventKey
		wantMoves int
		abandoned int
	}{
		{"resume", key('y'), 2, 0},
		{"discard", key('n'), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := storage.NewStorage(t.TempDir(), quiet)
			if err != nil {
				t.Fatal(err)
			}
			if err := store.SaveGame([]string{"e2e4", "e7e5"}); err != nil {
				t.Fatal(err)
			}
			s := session.New(store, quiet)
			defer s.Close()

			a, screen := newApp(t, s)
			if a.mode != modeResume {
				t.Fatalf("mode = %v, want resume prompt", a.mode)
			}
			a.Draw()
			if row := rowText(screen, 21); !strings.Contains(row, "(2 moves)") {
				t.Errorf("prompt row = %q", row)
			}

			// The board ignores clicks until the prompt is answered.
			clickMoves(t, a, "d2d4")

			a.HandleEvent(tt.answer)
			if a.mode != modePlay {
				t.Errorf("mode = %v after answer", a.mode)
			}
			if s.Game.MoveCount() != tt.wantMoves {
				t.Errorf("MoveCount = %d, want %d", s.Game.MoveCount(), tt.wantMoves)
			}
			if s.Stats.Abandoned != tt.abandoned {
				t.Errorf("Abandoned = %d, want %d", s.Stats.Abandoned, tt.abandoned)
			}
		})
	}
}

func TestFlipSavesPreference(t *testing.T) {
	s := session.New(nil, quiet)
	a, _ := newApp(t, s)

	a.HandleEvent(key('f'))
	if !a.flipped || !s.Prefs.FlipBoard {
		t.Errorf("flipped = %v, pref = %v", a.flipped, s.Prefs.FlipBoard)
	}

	// A flipped board still maps clicks to the right squares.
	clickMoves(t, a, "d2d4")
	if got := s.MoveStrings(); len(got) != 1 || got[0] != "d2d4" {
		t.Errorf("moves = %v, want [d2d4]", got)
	}
}

func TestNewGameKey(t *testing.T) {
	s := session.New(nil, quiet)
	a, _ := newApp(t, s)
	clickMoves(t, a, "e2e4")

	a.HandleEvent(key('n'))
	if s.Game.MoveCount() != 0 {
		t.Errorf("MoveCount = %d after new game", s.Game.MoveCount())
	}
}

func TestQuit(t *testing.T) {
	a, _ := newApp(t, session.New(nil, quiet))
	if !a.HandleEvent(key('f')) {
		t.Error("flip quit the app")
	}
	if a.HandleEvent(key('q')) {
		t.Error("q did not quit")
	}
	if a.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("ctrl-c did not quit")
	}
}
