// Package ui implements the chess board frontend using Ebitengine.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"image"

	"github.com/apex/log"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

type spriteKey struct {
	kind  board.PieceKind
	color board.Color
}

// SpriteManager rasterizes the embedded SVG pieces once and draws them.
type SpriteManager struct {
	pieces      map[spriteKey]*ebiten.Image
	size        int     // display size in logical pixels
	renderScale float64 // rasterize larger than displayed so HiDPI stays sharp
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[spriteKey]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
	sm.loadPieces()
	return sm
}

// assetPath returns the embedded file for a piece, e.g. assets/pieces/wN.svg.
func assetPath(kind board.PieceKind, c board.Color) string {
	prefix := 'w'
	if c == board.Black {
		prefix = 'b'
	}
	return fmt.Sprintf("assets/pieces/%c%c.svg", prefix, kind.Char()-'a'+'A')
}

func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for _, c := range []board.Color{board.White, board.Black} {
		for kind := board.Pawn; kind < board.NoPieceKind; kind++ {
			path := assetPath(kind, c)
			img, err := rasterize(path, renderSize)
			if err != nil {
				log.WithError(err).WithField("asset", path).Warn("piece sprite unavailable")
				continue
			}
			sm.pieces[spriteKey{kind, c}] = img
		}
	}
}

func rasterize(path string, size int) (*ebiten.Image, error) {
	data, err := pieceAssets.ReadFile(path)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return ebiten.NewImageFromImage(rgba), nil
}

// DrawPieceAt draws a piece with its top-left corner at the given screen
// pixel coordinates.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, kind board.PieceKind, c board.Color, x, y float64) {
	sprite := sm.pieces[spriteKey{kind, c}]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := UIScale / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// DrawPieceIn draws a piece scaled to fit a w-pixel square at x, y.
func (sm *SpriteManager) DrawPieceIn(screen *ebiten.Image, kind board.PieceKind, c board.Color, x, y, w float64) {
	sprite := sm.pieces[spriteKey{kind, c}]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := w / float64(sprite.Bounds().Dx())
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
