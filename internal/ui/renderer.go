package ui

import (
	"image/color"
	"strconv"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	ButtonColor    color.RGBA
	ButtonHover    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255},
		DarkSquare:     color.RGBA{181, 136, 99, 255},
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		ButtonColor:    color.RGBA{60, 64, 72, 255},
		ButtonHover:    color.RGBA{80, 84, 92, 255},
	}
}

// Renderer handles all board drawing.
//
// Board file 0 is the h-file, so with White at the bottom the screen column
// of a square is 7-file. Flipping puts Black at the bottom.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	scale      float64 // HiDPI scale factor
	flipped    bool
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetFlipped puts Black at the bottom of the board when true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// cell returns the screen column and row of a square.
func (r *Renderer) cell(sq board.Square) (col, row int) {
	if r.flipped {
		return sq.File(), sq.Rank()
	}
	return 7 - sq.File(), 7 - sq.Rank()
}

// DrawBoard draws the squares and the coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			c := r.theme.LightSquare
			if (rank+file)%2 == 1 {
				c = r.theme.DarkSquare
			}
			r.highlightSquare(screen, sq, c)
		}
	}
	r.drawCoordinates(screen)
}

// drawCoordinates labels the bottom row with files and the left column with
// ranks, in the color of the opposite square.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := regularFace(11 * r.scale)
	if face == nil {
		return
	}
	pad := float64(r.s(3))
	for i := 0; i < 8; i++ {
		bottom := r.ScreenToSquare(i*r.squareSize, r.boardSize-1)
		left := r.ScreenToSquare(0, i*r.squareSize)

		op := &text.DrawOptions{}
		w, h := measure(bottom.String()[:1], face)
		op.GeoM.Translate(float64(r.s((i+1)*r.squareSize))-w-pad, float64(r.s(r.boardSize))-h-pad)
		op.ColorScale.ScaleWithColor(r.labelColor(bottom))
		text.Draw(screen, bottom.String()[:1], face, op)

		op = &text.DrawOptions{}
		op.GeoM.Translate(pad, float64(r.s(i*r.squareSize))+pad)
		op.ColorScale.ScaleWithColor(r.labelColor(left))
		text.Draw(screen, strconv.Itoa(left.Rank()+1), face, op)
	}
}

func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 1 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// DrawHighlights draws the last move, the selection and legal destinations.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []board.Square, last *board.MoveInfo) {
	if last != nil {
		r.highlightSquare(screen, last.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, last.To, r.theme.LastMoveColor)
	}
	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	for _, sq := range targets {
		r.drawLegalMoveIndicator(screen, sq)
	}
}

// DrawCheck highlights the king's square.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

// highlightSquare fills a square with c.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

// drawLegalMoveIndicator draws a dot on a target square.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	cx := r.s(x) + r.s(r.squareSize)/2
	cy := r.s(y) + r.s(r.squareSize)/2
	vector.DrawFilledCircle(screen, cx, cy, r.s(r.squareSize)*0.15, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece except the one being dragged, applying shake
// offsets from anims.
func (r *Renderer) DrawPieces(screen *ebiten.Image, pieces []board.Piece, dragSquare board.Square, anims *AnimationManager) {
	for _, p := range pieces {
		if p.Square == dragSquare {
			continue
		}
		x, y := r.SquareToScreen(p.Square)
		fx := float64(x)
		if anims != nil {
			fx += anims.ShakeOffset(p.Square)
		}
		r.sprites.DrawPieceAt(screen, p.Kind, p.Color, fx*r.scale, float64(y)*r.scale)
	}
}

// DrawDraggedPiece draws a piece centered on the mouse position, given in
// logical coordinates.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, p board.Piece, mouseX, mouseY int) {
	half := float64(r.s(r.squareSize)) / 2
	r.sprites.DrawPieceAt(screen, p.Kind, p.Color, float64(r.s(mouseX))-half, float64(r.s(mouseY))-half)
}

// SquareToScreen converts a board square to logical screen coordinates.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	col, row := r.cell(sq)
	return col * r.squareSize, row * r.squareSize
}

// ScreenToSquare converts logical screen coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	col, row := x/r.squareSize, y/r.squareSize
	if r.flipped {
		return board.NewSquare(col, row)
	}
	return board.NewSquare(7-col, 7-row)
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
