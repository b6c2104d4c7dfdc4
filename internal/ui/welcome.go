package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Welcome screen dimensions
const (
	WelcomeWidth  = 380
	WelcomeHeight = 260
	WelcomePadX   = 32
)

// WelcomeScreen greets the player at startup when an unfinished game was
// saved, offering to resume it or start over.
type WelcomeScreen struct {
	visible bool
	x, y    int

	greeting string
	detail   string

	resumeBtn *Button
	newBtn    *Button
}

// NewWelcomeScreen creates a hidden welcome screen.
func NewWelcomeScreen() *WelcomeScreen {
	ws := &WelcomeScreen{}
	ws.x, ws.y = centered(WelcomeWidth, WelcomeHeight)

	btnW := (WelcomeWidth - WelcomePadX*2 - 12) / 2
	btnY := ws.y + WelcomeHeight - 64
	ws.newBtn = NewButton(ws.x+WelcomePadX, btnY, btnW, 44, "New Game", StyleSecondary, nil)
	ws.resumeBtn = NewButton(ws.x+WelcomePadX+btnW+12, btnY, btnW, 44, "Resume", StylePrimary, nil)
	return ws
}

// Show opens the screen for a saved game of plies half-moves.
func (ws *WelcomeScreen) Show(username string, plies int, onResume, onNewGame func()) {
	ws.greeting = fmt.Sprintf("Welcome back, %s!", username)
	ws.detail = fmt.Sprintf("You have an unfinished game (%d moves).", (plies+1)/2)
	ws.resumeBtn.OnClick = func() {
		ws.visible = false
		onResume()
	}
	ws.newBtn.OnClick = func() {
		ws.visible = false
		onNewGame()
	}
	ws.visible = true
}

// IsVisible returns true if the screen is visible.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

// Update handles input. Enter resumes; the screen consumes all input.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}
	if IsKeyJustPressed(ebiten.KeyEnter) {
		ws.resumeBtn.OnClick()
		return true
	}
	ws.resumeBtn.Update(input)
	ws.newBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if either button is hovered.
func (ws *WelcomeScreen) AnyButtonHovered() bool {
	return ws.visible && (ws.resumeBtn.IsHovered() || ws.newBtn.IsHovered())
}

// Draw renders the welcome screen.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image, glass *GlassEffect) {
	if !ws.visible {
		return
	}
	drawModalFrame(screen, glass, ws.x, ws.y, WelcomeWidth, WelcomeHeight, "Chess")
	ws.drawKingIcon(screen)

	cx := ws.x + WelcomeWidth/2
	drawTextCentered(screen, ws.greeting, cx, ws.y+120, textPrimary, boldScaled())
	drawTextCentered(screen, ws.detail, cx, ws.y+150, textSecondary, regularScaled())

	ws.resumeBtn.Draw(screen)
	ws.newBtn.Draw(screen)
}

// drawKingIcon draws a small crown-and-cross emblem under the header.
func (ws *WelcomeScreen) drawKingIcon(screen *ebiten.Image) {
	cx := scaleF(ws.x + WelcomeWidth/2)
	y := scaleF(ws.y + 62)

	vector.DrawFilledCircle(screen, cx, y+scaleF(8), scaleF(6), accentColor, true)
	vector.DrawFilledRect(screen, cx-scaleF(8), y+scaleF(10), scaleF(16), scaleF(14), accentColor, false)
	vector.DrawFilledRect(screen, cx-scaleF(1), y-scaleF(2), scaleF(3), scaleF(10), accentColor, false)
	vector.DrawFilledRect(screen, cx-scaleF(4), y+scaleF(2), scaleF(9), scaleF(3), accentColor, false)
}
