package ui

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Palette shared by the panel, widgets and modals.
var (
	panelBg           = color.RGBA{38, 40, 45, 255}
	sectionBg         = color.RGBA{48, 52, 58, 255}
	buttonBg          = color.RGBA{50, 54, 60, 255}
	buttonHoverBg     = color.RGBA{65, 70, 78, 255}
	buttonPressedBg   = color.RGBA{40, 44, 50, 255}
	buttonBorder      = color.RGBA{70, 75, 82, 255}
	accentColor       = color.RGBA{76, 175, 120, 255}
	accentHover       = color.RGBA{96, 195, 140, 255}
	accentPressed     = color.RGBA{56, 155, 100, 255}
	textPrimary       = color.RGBA{240, 240, 245, 255}
	textSecondary     = color.RGBA{160, 165, 175, 255}
	textMuted         = color.RGBA{120, 125, 135, 255}
	dividerColor      = color.RGBA{60, 65, 72, 255}
	widgetBg          = color.RGBA{48, 52, 58, 255}
	widgetBorder      = color.RGBA{68, 72, 78, 255}
	widgetFocusBorder = color.RGBA{76, 175, 120, 255}
	modalBg           = color.RGBA{38, 40, 45, 255}
	modalHeader       = color.RGBA{48, 52, 58, 255}
	modalBorder       = color.RGBA{58, 62, 68, 255}
	modalTint         = color.RGBA{0, 0, 0, 100}
)

// Layout is in logical pixels; these convert to device pixels.
func scaleF(v int) float32 { return float32(float64(v) * UIScale) }
func scaleD(v int) float64 { return float64(v) * UIScale }

func fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(h), c, false)
}

func strokeRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	vector.StrokeRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(h), float32(UIScale), c, false)
}

// drawText draws s with its top-left corner at logical x, y.
func drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := regularFace(defaultFontSize * UIScale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(x), scaleD(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawTextCentered centers s on logical cx, cy.
func drawTextCentered(screen *ebiten.Image, s string, cx, cy int, c color.Color, face *text.GoTextFace) {
	if face == nil {
		return
	}
	w, h := measure(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(cx)-w/2, scaleD(cy)-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func regularScaled() *text.GoTextFace { return regularFace(defaultFontSize * UIScale) }
func boldScaled() *text.GoTextFace { return boldFace(titleFontSize * UIScale) }

// ButtonStyle selects how a Button is painted.
type ButtonStyle int

const (
	StylePrimary ButtonStyle = iota
	StyleSecondary
)

// Button is a clickable rectangle with a label.
type Button struct {
	X, Y, W, H int
	Label      string
	Style      ButtonStyle
	OnClick    func()
	hovered    bool
	pressed    bool
}

// NewButton creates a button.
func NewButton(x, y, w, h int, label string, style ButtonStyle, onClick func()) *Button {
	return &Button{X: x, Y: y, W: w, H: h, Label: label, Style: style, OnClick: onClick}
}

// Update tracks hover state and fires OnClick. It returns true when clicked.
func (b *Button) Update(input *InputHandler) bool {
	b.hovered = input.IsInBounds(b.X, b.Y, b.W, b.H)
	b.pressed = b.hovered && input.IsLeftPressed()
	if b.hovered && input.IsLeftJustPressed() && b.OnClick != nil {
		b.OnClick()
		return true
	}
	return false
}

// IsHovered returns true if the mouse is over the button.
func (b *Button) IsHovered() bool {
	return b.hovered
}

// Draw renders the button.
func (b *Button) Draw(screen *ebiten.Image) {
	bg, border, fg := buttonBg, buttonBorder, textSecondary
	switch b.Style {
	case StylePrimary:
		bg, border, fg = accentColor, accentPressed, textPrimary
		if b.pressed {
			bg = accentPressed
		} else if b.hovered {
			bg, border = accentHover, color.RGBA{116, 215, 160, 255}
		}
	default:
		if b.pressed {
			bg = buttonPressedBg
		} else if b.hovered {
			bg, border = buttonHoverBg, accentColor
		}
	}
	fillRect(screen, b.X, b.Y, b.W, b.H, bg)
	strokeRect(screen, b.X, b.Y, b.W, b.H, border)
	drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, fg, regularScaled())
}

// TextInput is an editable single-line text field.
type TextInput struct {
	X, Y, W, H  int
	Value       string
	Placeholder string
	MaxLength   int
	focused     bool
	hovered     bool
	cursorBlink int
}

// NewTextInput creates a new text input widget.
func NewTextInput(x, y, w, h int, placeholder string, maxLen int) *TextInput {
	return &TextInput{X: x, Y: y, W: w, H: h, Placeholder: placeholder, MaxLength: maxLen}
}

// Update handles focus and typing. It returns true while focused.
func (ti *TextInput) Update(input *InputHandler) bool {
	ti.hovered = input.IsInBounds(ti.X, ti.Y, ti.W, ti.H)
	if input.IsLeftJustPressed() {
		ti.focused = ti.hovered
	}
	if !ti.focused {
		return false
	}

	ti.cursorBlink = (ti.cursorBlink + 1) % 60

	for _, c := range ebiten.AppendInputChars(nil) {
		if ti.MaxLength == 0 || utf8.RuneCountInString(ti.Value) < ti.MaxLength {
			ti.Value += string(c)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && ti.Value != "" {
		_, size := utf8.DecodeLastRuneInString(ti.Value)
		ti.Value = ti.Value[:len(ti.Value)-size]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		ti.focused = false
	}
	return true
}

// Draw renders the text input.
func (ti *TextInput) Draw(screen *ebiten.Image) {
	border := widgetBorder
	if ti.focused {
		border = widgetFocusBorder
	} else if ti.hovered {
		border = accentColor
	}
	fillRect(screen, ti.X, ti.Y, ti.W, ti.H, widgetBg)
	strokeRect(screen, ti.X, ti.Y, ti.W, ti.H, border)

	face := regularScaled()
	if face == nil {
		return
	}
	s, c := ti.Value, color.Color(textPrimary)
	if s == "" {
		s, c = ti.Placeholder, textMuted
	}
	w, h := measure(s, face)
	if ti.Value == "" {
		w = 0
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(ti.X+10), scaleD(ti.Y+ti.H/2)-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)

	if ti.focused && ti.cursorBlink < 30 {
		cx := scaleF(ti.X+12) + float32(w)
		vector.DrawFilledRect(screen, cx, scaleF(ti.Y+8), scaleF(2), scaleF(ti.H-16), textPrimary, false)
	}
}

// IsFocused returns true if the input is focused.
func (ti *TextInput) IsFocused() bool {
	return ti.focused
}

// Checkbox is a labeled toggle.
type Checkbox struct {
	X, Y    int
	Label   string
	Checked bool
	hovered bool
}

const checkboxSize = 20

// NewCheckbox creates a new checkbox.
func NewCheckbox(x, y int, label string, checked bool) *Checkbox {
	return &Checkbox{X: x, Y: y, Label: label, Checked: checked}
}

// Update toggles the box on click. It returns true when toggled.
func (cb *Checkbox) Update(input *InputHandler) bool {
	cb.hovered = input.IsInBounds(cb.X, cb.Y, 260, checkboxSize+4)
	if cb.hovered && input.IsLeftJustPressed() {
		cb.Checked = !cb.Checked
		return true
	}
	return false
}

// Draw renders the checkbox.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	bg, border := widgetBg, widgetBorder
	if cb.hovered {
		bg, border = buttonHoverBg, accentColor
	} else if cb.Checked {
		border = accentColor
	}
	fillRect(screen, cb.X, cb.Y, checkboxSize, checkboxSize, bg)
	strokeRect(screen, cb.X, cb.Y, checkboxSize, checkboxSize, border)

	if cb.Checked {
		x, y, sw := scaleF(cb.X), scaleF(cb.Y), scaleF(2)
		vector.StrokeLine(screen, x+scaleF(4), y+scaleF(10), x+scaleF(8), y+scaleF(14), sw, accentColor, true)
		vector.StrokeLine(screen, x+scaleF(8), y+scaleF(14), x+scaleF(16), y+scaleF(6), sw, accentColor, true)
	}

	fg := textSecondary
	if cb.Checked || cb.hovered {
		fg = textPrimary
	}
	drawText(screen, cb.Label, cb.X+30, cb.Y+2, fg)
}

// DrawDivider draws a horizontal divider line.
func DrawDivider(screen *ebiten.Image, x, y, w int) {
	fillRect(screen, x, y, w, 1, dividerColor)
}

// DrawSectionHeader draws a muted section label.
func DrawSectionHeader(screen *ebiten.Image, label string, x, y int) {
	drawText(screen, label, x, y, textMuted)
}

// drawModalFrame paints the backdrop, body and titled header of a modal
// centered on the window.
func drawModalFrame(screen *ebiten.Image, glass *GlassEffect, x, y, w, h int, title string) {
	glass.DrawBackdrop(screen, modalTint, 3.0*UIScale)
	fillRect(screen, x, y, w, h, modalBg)
	strokeRect(screen, x, y, w, h, modalBorder)
	fillRect(screen, x, y, w, 44, modalHeader)
	drawTextCentered(screen, title, x+w/2, y+22, textPrimary, boldScaled())
}

// centered returns the top-left corner that centers a w by h box in the
// board area.
func centered(w, h int) (int, int) {
	return (BoardSize - w) / 2, (ScreenHeight - h) / 2
}
