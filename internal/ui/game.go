package ui

import (
	"image/color"

	"github.com/apex/log"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/exp/slices"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout() and used by widgets and modals.
var UIScale float64 = 1.0

var (
	statusGameOver = color.RGBA{255, 200, 80, 255}
	statusCheck    = color.RGBA{255, 120, 120, 255}
)

// Game implements ebiten.Game for two players sharing one board.
type Game struct {
	session *session.Session
	log     log.Interface

	// selection
	selected   board.Square
	targets    []board.Square
	dragging   bool
	dragSquare board.Square

	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	glass    *GlassEffect

	settingsModal *SettingsModal
	welcomeScreen *WelcomeScreen
	promotion     *PromotionPicker

	scale float64
}

// NewGame creates the window state around s. If s holds an unfinished game,
// the player is asked whether to resume it.
func NewGame(s *session.Session, logger log.Interface) *Game {
	if logger == nil {
		logger = log.Log
	}
	g := &Game{
		session:       s,
		log:           logger,
		selected:      board.NoSquare,
		dragSquare:    board.NoSquare,
		renderer:      NewRenderer(BoardSize, SquareSize),
		input:         NewInputHandler(),
		feedback:      NewFeedbackManager(),
		glass:         NewGlassEffect(),
		settingsModal: NewSettingsModal(),
		welcomeScreen: NewWelcomeScreen(),
		promotion:     NewPromotionPicker(),
		scale:         1.0,
	}
	g.panel = NewPanel(g)
	g.applyPreferences()

	if saved := s.Pending(); saved != nil {
		g.welcomeScreen.Show(s.Prefs.Username, len(saved.Moves), g.resume, g.NewGameAction)
	}
	return g
}

func (g *Game) applyPreferences() {
	g.renderer.SetFlipped(g.session.Prefs.FlipBoard)
	g.feedback.Audio().SetEnabled(g.session.Prefs.SoundEnabled)
}

func (g *Game) resume() {
	if err := g.session.Resume(); err != nil {
		g.feedback.Toast("Saved game was damaged; resumed up to the last good move", ToastError)
	}
	g.panel.ScrollToEnd()
	if g.game().InCheck() {
		g.feedback.OnCheck()
	}
}

func (g *Game) game() *game.Game {
	return g.session.Game
}

// Update handles one frame of input.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	switch {
	case g.welcomeScreen.IsVisible():
		g.welcomeScreen.Update(g.input)
	case g.promotion.IsVisible():
		g.promotion.Update(g.input)
	case g.settingsModal.IsVisible():
		g.settingsModal.Update(g.input)
	default:
		g.handleShortcut()
		if !g.panel.HandleInput(g.input) {
			g.handleBoardInput()
		}
	}

	g.updateCursor()
	return nil
}

func (g *Game) handleShortcut() {
	switch g.input.Shortcut() {
	case ShortcutNewGame:
		g.NewGameAction()
	case ShortcutFlip:
		g.FlipAction()
	case ShortcutSettings:
		g.ShowSettings()
	case ShortcutCancel:
		g.clearSelection()
	}
}

// updateCursor shows a pointer over anything clickable.
func (g *Game) updateCursor() {
	var hovered bool
	switch {
	case g.welcomeScreen.IsVisible():
		hovered = g.welcomeScreen.AnyButtonHovered()
	case g.promotion.IsVisible():
		hovered = g.promotion.AnyButtonHovered()
	case g.settingsModal.IsVisible():
		hovered = g.settingsModal.AnyButtonHovered()
	default:
		hovered = g.panel.AnyButtonHovered()
	}

	if hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the board, the panel and any open modal.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	screen.Fill(g.renderer.Theme().Background)

	gm := g.game()
	g.renderer.DrawBoard(screen)
	if gm.InCheck() {
		g.renderer.DrawCheck(screen, gm.KingSquare(gm.SideToMove()))
	}

	var last *board.MoveInfo
	if mi, ok := gm.LastMove(); ok {
		last = &mi
	}
	var targets []board.Square
	if g.session.Prefs.ShowLegalMoves {
		targets = g.targets
	}
	g.renderer.DrawHighlights(screen, g.selected, targets, last)

	dragFrom := board.NoSquare
	if g.dragging {
		dragFrom = g.dragSquare
	}
	g.renderer.DrawPieces(screen, gm.Pieces(), dragFrom, g.feedback.Animations())
	if g.dragging {
		if p, ok := gm.PieceAt(g.dragSquare); ok {
			mx, my := g.input.MousePosition()
			g.renderer.DrawDraggedPiece(screen, p, mx, my)
		}
	}

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen)

	g.settingsModal.Draw(screen, g.glass)
	g.promotion.Draw(screen, g.glass, g.renderer.Sprites())
	g.welcomeScreen.Draw(screen, g.glass)
}

// Layout returns the screen size in device pixels. The width depends on
// whether the panel is collapsed.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	UIScale = g.scale

	w := ScreenWidth
	if g.panel != nil && g.panel.Collapsed() {
		w = BoardSize + CollapsedWidth
	}
	return int(float64(w) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// handleBoardInput selects pieces and submits moves by click or drag.
func (g *Game) handleBoardInput() {
	mx, my := g.input.MousePosition()

	if g.input.IsLeftJustPressed() {
		sq := g.renderer.ScreenToSquare(mx, my)
		if sq == board.NoSquare {
			return
		}

		p, occupied := g.game().PieceAt(sq)
		switch {
		case g.selected != board.NoSquare && sq != g.selected &&
			(!occupied || p.Color != g.game().SideToMove() || slices.Contains(g.targets, sq)):
			g.tryMove(g.selected, sq)
		case occupied:
			g.selectSquare(sq)
			g.dragging = true
			g.dragSquare = sq
		default:
			g.clearSelection()
		}
		return
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		g.dragging = false
		to := g.renderer.ScreenToSquare(mx, my)
		if to != board.NoSquare && to != g.dragSquare {
			g.tryMove(g.dragSquare, to)
		}
	}
}

// selectSquare selects any piece. Only the side to move has legal targets,
// so moving the other side's piece is reported as a wrong-side request.
func (g *Game) selectSquare(sq board.Square) {
	g.selected = sq
	g.targets = g.game().LegalMoves(sq)
}

func (g *Game) clearSelection() {
	g.selected = board.NoSquare
	g.targets = nil
	g.dragging = false
	g.dragSquare = board.NoSquare
}

// tryMove submits a move, first asking for the promotion piece when needed.
func (g *Game) tryMove(from, to board.Square) {
	gm := g.game()
	if gm.IsPromotion(from, to) && slices.Contains(gm.LegalMoves(from), to) && !g.session.Prefs.AutoQueen {
		p, _ := gm.PieceAt(from)
		g.clearSelection()
		g.promotion.Show(p.Color, func(kind board.PieceKind) {
			g.submit(from, to, board.Promote(kind))
		}, nil)
		return
	}
	g.submit(from, to, nil)
}

func (g *Game) submit(from, to board.Square, chooser board.PromotionChooser) {
	g.clearSelection()
	info, err := g.session.Move(from, to, chooser)
	if err != nil {
		g.feedback.OnInvalidMove(from, to, game.ReasonOf(err))
		return
	}

	g.feedback.OnMoveMade(info)
	g.panel.ScrollToEnd()

	switch gm := g.game(); {
	case gm.GameOver():
		g.feedback.OnGameOver(gm.Result())
	case gm.InCheck():
		g.feedback.OnCheck()
	}
}

// NewGameAction starts a new game. An unfinished game counts as abandoned.
func (g *Game) NewGameAction() {
	g.session.NewGame()
	g.clearSelection()
	g.panel.scrollY = 0
}

// FlipAction turns the board around and remembers the choice.
func (g *Game) FlipAction() {
	prefs := *g.session.Prefs
	prefs.FlipBoard = !prefs.FlipBoard
	g.session.SavePreferences(&prefs)
	g.applyPreferences()
}

// ShowSettings opens the settings modal.
func (g *Game) ShowSettings() {
	g.clearSelection()
	g.settingsModal.Show(g.session.Prefs, func(prefs *storage.UserPreferences) {
		g.session.SavePreferences(prefs)
		g.applyPreferences()
		g.log.WithField("username", prefs.Username).Debug("preferences saved")
	})
}

// MoveList returns the moves played in coordinate form.
func (g *Game) MoveList() []string {
	return g.session.MoveStrings()
}

// Username returns the player's name.
func (g *Game) Username() string {
	return g.session.Prefs.Username
}

// Stats returns the stored game statistics.
func (g *Game) Stats() *storage.GameStats {
	return g.session.Stats
}

// Status describes whose turn it is, or the result.
func (g *Game) Status() (string, color.RGBA) {
	gm := g.game()
	switch {
	case gm.GameOver():
		return gm.Result(), statusGameOver
	case gm.InCheck():
		return gm.SideToMove().String() + " to move, in check", statusCheck
	default:
		return gm.SideToMove().String() + " to move", textPrimary
	}
}

// Close releases storage. The game in progress is already saved.
func (g *Game) Close() error {
	return g.session.Close()
}
