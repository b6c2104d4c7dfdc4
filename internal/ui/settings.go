package ui

import (
	"strings"

	"github.com/hailam/chessrules/internal/storage"
	"github.com/hajimehoshi/ebiten/v2"
)

// Settings modal dimensions
const (
	SettingsWidth  = 380
	SettingsHeight = 380
	SettingsPadX   = 24
)

// SettingsModal edits the stored user preferences.
type SettingsModal struct {
	visible bool
	x, y    int

	usernameInput *TextInput
	sound         *Checkbox
	flip          *Checkbox
	autoQueen     *Checkbox
	showLegal     *Checkbox
	saveBtn       *Button
	cancelBtn     *Button

	prefs  storage.UserPreferences
	onSave func(*storage.UserPreferences)
}

// NewSettingsModal creates a hidden settings modal.
func NewSettingsModal() *SettingsModal {
	sm := &SettingsModal{}
	sm.x, sm.y = centered(SettingsWidth, SettingsHeight)

	cx := sm.x + SettingsPadX
	cw := SettingsWidth - SettingsPadX*2
	sm.usernameInput = NewTextInput(cx, sm.y+80, cw, 36, "Player", 20)
	sm.sound = NewCheckbox(cx, sm.y+152, "Sound effects", true)
	sm.flip = NewCheckbox(cx, sm.y+184, "Black at the bottom", false)
	sm.autoQueen = NewCheckbox(cx, sm.y+216, "Always promote to queen", false)
	sm.showLegal = NewCheckbox(cx, sm.y+248, "Show legal moves", true)

	btnW := (cw - 12) / 2
	btnY := sm.y + SettingsHeight - 60
	sm.cancelBtn = NewButton(cx, btnY, btnW, 40, "Cancel", StyleSecondary, sm.Hide)
	sm.saveBtn = NewButton(cx+btnW+12, btnY, btnW, 40, "Save", StylePrimary, sm.handleSave)
	return sm
}

// Show opens the modal with a copy of prefs. onSave receives the edited
// preferences; cancelling leaves prefs untouched.
func (sm *SettingsModal) Show(prefs *storage.UserPreferences, onSave func(*storage.UserPreferences)) {
	sm.prefs = *prefs
	sm.onSave = onSave
	sm.usernameInput.Value = prefs.Username
	sm.sound.Checked = prefs.SoundEnabled
	sm.flip.Checked = prefs.FlipBoard
	sm.autoQueen.Checked = prefs.AutoQueen
	sm.showLegal.Checked = prefs.ShowLegalMoves
	sm.visible = true
}

// Hide closes the modal.
func (sm *SettingsModal) Hide() {
	sm.visible = false
}

// IsVisible returns true while the modal is open.
func (sm *SettingsModal) IsVisible() bool {
	return sm.visible
}

func (sm *SettingsModal) handleSave() {
	prefs := sm.prefs
	prefs.Username = strings.TrimSpace(sm.usernameInput.Value)
	if prefs.Username == "" {
		prefs.Username = storage.DefaultPreferences().Username
	}
	prefs.SoundEnabled = sm.sound.Checked
	prefs.FlipBoard = sm.flip.Checked
	prefs.AutoQueen = sm.autoQueen.Checked
	prefs.ShowLegalMoves = sm.showLegal.Checked

	sm.Hide()
	if sm.onSave != nil {
		sm.onSave(&prefs)
	}
}

// Update handles input. The modal consumes all input while open.
func (sm *SettingsModal) Update(input *InputHandler) bool {
	if !sm.visible {
		return false
	}
	if !sm.usernameInput.IsFocused() {
		if IsKeyJustPressed(ebiten.KeyEscape) {
			sm.Hide()
			return true
		}
		if IsKeyJustPressed(ebiten.KeyEnter) {
			sm.handleSave()
			return true
		}
	}

	sm.usernameInput.Update(input)
	for _, cb := range sm.checkboxes() {
		cb.Update(input)
	}
	sm.saveBtn.Update(input)
	sm.cancelBtn.Update(input)
	return true
}

func (sm *SettingsModal) checkboxes() []*Checkbox {
	return []*Checkbox{sm.sound, sm.flip, sm.autoQueen, sm.showLegal}
}

// AnyButtonHovered returns true if a clickable element is under the mouse.
func (sm *SettingsModal) AnyButtonHovered() bool {
	if !sm.visible {
		return false
	}
	for _, cb := range sm.checkboxes() {
		if cb.hovered {
			return true
		}
	}
	return sm.saveBtn.IsHovered() || sm.cancelBtn.IsHovered()
}

// Draw renders the modal over the current frame.
func (sm *SettingsModal) Draw(screen *ebiten.Image, glass *GlassEffect) {
	if !sm.visible {
		return
	}
	drawModalFrame(screen, glass, sm.x, sm.y, SettingsWidth, SettingsHeight, "Settings")

	cx := sm.x + SettingsPadX
	DrawSectionHeader(screen, "Player Name", cx, sm.y+56)
	DrawSectionHeader(screen, "Options", cx, sm.y+128)

	sm.usernameInput.Draw(screen)
	for _, cb := range sm.checkboxes() {
		cb.Draw(screen)
	}
	sm.saveBtn.Draw(screen)
	sm.cancelBtn.Draw(screen)
}
