// Package tui implements a terminal frontend for two players on one board,
// drawn with tcell.
package tui

import (
	"github.com/apex/log"
	"github.com/gdamore/tcell/v2"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/session"
	"golang.org/x/exp/slices"
)

// Board geometry in terminal cells.
const (
	boardX = 3
	boardY = 1
	cellW  = 3
	panelX = boardX + 8*cellW + 4
)

// mode is what keyboard input currently answers.
type mode int

const (
	modePlay mode = iota
	modeResume
	modePromote
)

// App is the terminal frontend. The caller owns the screen's Init and Fini.
type App struct {
	screen  tcell.Screen
	session *session.Session
	log     log.Interface
	theme   Theme

	mode     mode
	cursor   board.Square
	selected board.Square
	targets  []board.Square
	flipped  bool
	message  string

	// promotion waiting for a piece choice
	promoFrom, promoTo board.Square

	mouseDown bool
}

// New creates the frontend. If s holds an unfinished game the player is
// asked whether to resume it before play starts.
func New(screen tcell.Screen, s *session.Session, logger log.Interface) *App {
	if logger == nil {
		logger = log.Log
	}
	e2, _ := board.ParseSquare("e2")
	a := &App{
		screen:    screen,
		session:   s,
		log:       logger,
		theme:     DefaultTheme(),
		cursor:    e2,
		selected:  board.NoSquare,
		promoFrom: board.NoSquare,
		promoTo:   board.NoSquare,
		flipped:   s.Prefs.FlipBoard,
	}
	if s.Pending() != nil {
		a.mode = modeResume
	}
	return a
}

// Run draws and handles events until the player quits or the screen is
// finalized.
func (a *App) Run() error {
	a.screen.EnableMouse()
	a.screen.Clear()
	for {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.HandleEvent(ev) {
			a.log.Debug("quit")
			return nil
		}
	}
}

// HandleEvent applies one event. It returns false when the player quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	switch a.mode {
	case modeResume:
		a.handleResumeKey(ev)
		return true
	case modePromote:
		a.handlePromoteKey(ev)
		return true
	}

	switch ev.Key() {
	case tcell.KeyUp:
		a.moveCursor(0, -1)
	case tcell.KeyDown:
		a.moveCursor(0, 1)
	case tcell.KeyLeft:
		a.moveCursor(-1, 0)
	case tcell.KeyRight:
		a.moveCursor(1, 0)
	case tcell.KeyEnter:
		a.activate(a.cursor)
	case tcell.KeyEscape:
		a.clearSelection()
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			a.activate(a.cursor)
		case 'q':
			return false
		case 'f':
			a.flip()
		case 'n':
			a.newGame()
		}
	}
	return true
}

func (a *App) handleResumeKey(ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyRune && ev.Rune() == 'y':
		a.mode = modePlay
		if err := a.session.Resume(); err != nil {
			a.message = "Saved game was damaged; resumed up to the last good move"
		}
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
		a.mode = modePlay
		a.newGame()
	}
}

func (a *App) handlePromoteKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		a.mode = modePlay
		a.message = ""
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	for _, kind := range board.PromotionKinds {
		if ev.Rune() == rune(kind.Char()) {
			a.mode = modePlay
			a.submit(a.promoFrom, a.promoTo, board.Promote(kind))
			return
		}
	}
}

// handleMouse acts on the press edge of the left button.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	clicked := pressed && !a.mouseDown
	a.mouseDown = pressed
	if !clicked || a.mode != modePlay {
		return
	}

	x, y := ev.Position()
	if sq, ok := a.squareAt(x, y); ok {
		a.cursor = sq
		a.activate(sq)
	}
}

// moveCursor steps the cursor in screen directions.
func (a *App) moveCursor(dx, dy int) {
	col, row := a.cellOf(a.cursor)
	col = min(7, max(0, col+dx))
	row = min(7, max(0, row+dy))
	a.cursor = a.squareFromCell(col, row)
}

// activate selects the piece on sq, or moves the selected piece there.
func (a *App) activate(sq board.Square) {
	gm := a.session.Game
	p, occupied := gm.PieceAt(sq)

	switch {
	case a.selected == sq:
		a.clearSelection()
	case a.selected != board.NoSquare &&
		(!occupied || p.Color != gm.SideToMove() || slices.Contains(a.targets, sq)):
		a.tryMove(a.selected, sq)
	case occupied:
		a.selected = sq
		a.targets = gm.LegalMoves(sq)
	default:
		a.clearSelection()
	}
}

func (a *App) clearSelection() {
	a.selected = board.NoSquare
	a.targets = nil
}

// tryMove submits a move, first asking for the promotion piece when needed.
func (a *App) tryMove(from, to board.Square) {
	gm := a.session.Game
	if gm.IsPromotion(from, to) && slices.Contains(gm.LegalMoves(from), to) && !a.session.Prefs.AutoQueen {
		a.clearSelection()
		a.promoFrom, a.promoTo = from, to
		a.mode = modePromote
		a.message = "Promote to (q)ueen, (r)ook, k(n)ight or (b)ishop"
		return
	}
	a.submit(from, to, nil)
}

func (a *App) submit(from, to board.Square, chooser board.PromotionChooser) {
	a.clearSelection()
	a.promoFrom, a.promoTo = board.NoSquare, board.NoSquare

	_, err := a.session.Move(from, to, chooser)
	if err != nil {
		a.message = game.ReasonOf(err).String()
		return
	}

	switch gm := a.session.Game; {
	case gm.GameOver():
		a.message = gm.Result()
	case gm.InCheck():
		a.message = "Check!"
	default:
		a.message = ""
	}
}

func (a *App) newGame() {
	a.session.NewGame()
	a.clearSelection()
	a.message = ""
}

func (a *App) flip() {
	a.flipped = !a.flipped
	prefs := *a.session.Prefs
	prefs.FlipBoard = a.flipped
	a.session.SavePreferences(&prefs)
}

// cellOf returns the board cell (column, row from the top) showing sq.
// Unflipped, White is at the bottom with the a-file on the left.
func (a *App) cellOf(sq board.Square) (col, row int) {
	if a.flipped {
		return sq.File(), sq.Rank()
	}
	return 7 - sq.File(), 7 - sq.Rank()
}

func (a *App) squareFromCell(col, row int) board.Square {
	if a.flipped {
		return board.NewSquare(col, row)
	}
	return board.NewSquare(7-col, 7-row)
}

// squareAt maps a terminal position to the square drawn there.
func (a *App) squareAt(x, y int) (board.Square, bool) {
	if x < boardX || y < boardY {
		return board.NoSquare, false
	}
	col, row := (x-boardX)/cellW, y-boardY
	if col > 7 || row > 7 {
		return board.NoSquare, false
	}
	return a.squareFromCell(col, row), true
}
