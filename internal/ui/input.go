package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Shortcut is a keyboard command available outside modals.
type Shortcut int

const (
	ShortcutNone Shortcut = iota
	ShortcutNewGame
	ShortcutFlip
	ShortcutSettings
	ShortcutCancel
)

var shortcutKeys = []struct {
	key ebiten.Key
	cmd Shortcut
}{
	{ebiten.KeyN, ShortcutNewGame},
	{ebiten.KeyF, ShortcutFlip},
	{ebiten.KeyComma, ShortcutSettings},
	{ebiten.KeyEscape, ShortcutCancel},
}

// InputHandler snapshots mouse and keyboard state once per frame.
type InputHandler struct {
	mouseX, mouseY   int // logical (unscaled) coordinates
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
	shortcut         Shortcut
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update refreshes the snapshot. Call this once per frame.
func (ih *InputHandler) Update() {
	rawX, rawY := ebiten.CursorPosition()
	scale := UIScale
	if scale < 1.0 {
		scale = 1.0
	}
	ih.mouseX = int(float64(rawX) / scale)
	ih.mouseY = int(float64(rawY) / scale)

	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	ih.shortcut = ShortcutNone
	for _, sk := range shortcutKeys {
		if inpututil.IsKeyJustPressed(sk.key) {
			ih.shortcut = sk.cmd
			break
		}
	}
}

// MousePosition returns the current mouse position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftJustReleased returns true if the left mouse button was just released.
func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.leftJustReleased
}

// IsLeftPressed returns true if the left mouse button is held.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// Shortcut returns the keyboard command pressed this frame.
func (ih *InputHandler) Shortcut() Shortcut {
	return ih.shortcut
}

// IsInBounds returns true if the mouse is within the given rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// ClickedInBounds returns true if the mouse was just clicked within the given rectangle.
func (ih *InputHandler) ClickedInBounds(x, y, w, h int) bool {
	return ih.leftJustPressed && ih.IsInBounds(x, y, w, h)
}

// IsKeyJustPressed returns true if the specified key was just pressed.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
