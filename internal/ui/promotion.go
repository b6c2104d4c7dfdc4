package ui

import (
	"github.com/hailam/chessrules/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	promoCell    = 72
	promoGap     = 12
	promoPadX    = 24
	PromoWidth   = promoPadX*2 + promoCell*4 + promoGap*3
	PromoHeight  = 44 + 24 + promoCell + 60
	promoCellTop = 44 + 16
)

// PromotionPicker asks which piece a pawn becomes. The move is only
// submitted once a kind is picked.
type PromotionPicker struct {
	visible bool
	x, y    int
	color   board.Color
	hovered int // index into board.PromotionKinds, -1 for none

	cancelBtn *Button
	onPick    func(board.PieceKind)
	onCancel  func()
}

// NewPromotionPicker creates a hidden picker.
func NewPromotionPicker() *PromotionPicker {
	pp := &PromotionPicker{hovered: -1}
	pp.x, pp.y = centered(PromoWidth, PromoHeight)
	pp.cancelBtn = NewButton(pp.x+PromoWidth/2-60, pp.y+PromoHeight-52, 120, 36, "Cancel", StyleSecondary, pp.cancel)
	return pp
}

// Show opens the picker for a pawn of color c.
func (pp *PromotionPicker) Show(c board.Color, onPick func(board.PieceKind), onCancel func()) {
	pp.color = c
	pp.onPick = onPick
	pp.onCancel = onCancel
	pp.visible = true
}

// IsVisible returns true while the picker is open.
func (pp *PromotionPicker) IsVisible() bool {
	return pp.visible
}

func (pp *PromotionPicker) cancel() {
	pp.visible = false
	if pp.onCancel != nil {
		pp.onCancel()
	}
}

func (pp *PromotionPicker) cellX(i int) int {
	return pp.x + promoPadX + i*(promoCell+promoGap)
}

// Update handles clicks and the Q/R/N/B keys.
func (pp *PromotionPicker) Update(input *InputHandler) bool {
	if !pp.visible {
		return false
	}
	if IsKeyJustPressed(ebiten.KeyEscape) {
		pp.cancel()
		return true
	}

	pp.hovered = -1
	for i := range board.PromotionKinds {
		if input.IsInBounds(pp.cellX(i), pp.y+promoCellTop, promoCell, promoCell) {
			pp.hovered = i
		}
	}

	pick := -1
	if pp.hovered >= 0 && input.IsLeftJustPressed() {
		pick = pp.hovered
	}
	for i, key := range []ebiten.Key{ebiten.KeyQ, ebiten.KeyR, ebiten.KeyN, ebiten.KeyB} {
		if IsKeyJustPressed(key) {
			pick = i
		}
	}
	if pick >= 0 {
		pp.visible = false
		pp.onPick(board.PromotionKinds[pick])
		return true
	}

	pp.cancelBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if a choice or the cancel button is hovered.
func (pp *PromotionPicker) AnyButtonHovered() bool {
	return pp.visible && (pp.hovered >= 0 || pp.cancelBtn.IsHovered())
}

// Draw renders the picker.
func (pp *PromotionPicker) Draw(screen *ebiten.Image, glass *GlassEffect, sprites *SpriteManager) {
	if !pp.visible {
		return
	}
	drawModalFrame(screen, glass, pp.x, pp.y, PromoWidth, PromoHeight, "Promote to")

	for i, kind := range board.PromotionKinds {
		x, y := pp.cellX(i), pp.y+promoCellTop
		bg := buttonBg
		if i == pp.hovered {
			bg = buttonHoverBg
		}
		fillRect(screen, x, y, promoCell, promoCell, bg)
		strokeRect(screen, x, y, promoCell, promoCell, buttonBorder)
		sprites.DrawPieceIn(screen, kind, pp.color, scaleD(x+4), scaleD(y+4), scaleD(promoCell-8))
	}
	pp.cancelBtn.Draw(screen)
}
