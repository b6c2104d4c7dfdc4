package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Panel dimensions
const (
	PanelPadding    = 20
	SectionSpacing  = 28
	ButtonHeight    = 40
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	SectionLabelH   = 20
	moveRowHeight   = 22
	statusBarHeight = 90
)

// Panel is the side panel with controls, move history and status.
type Panel struct {
	game      *Game
	collapsed bool

	collapseBtn *Button
	newGameBtn  *Button
	settingsBtn *Button
	flipBtn     *Button

	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.layout()
	return p
}

// layout positions the buttons for the current collapsed state.
func (p *Panel) layout() {
	tabX := BoardSize
	if p.collapsed {
		tabX = BoardSize + 2
	}
	p.collapseBtn = NewButton(tabX, (ScreenHeight-CollapseButtonH)/2, CollapseButtonW, CollapseButtonH, "", StyleSecondary, p.toggleCollapse)

	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	y := PanelPadding + 8
	p.newGameBtn = NewButton(x, y, w, ButtonHeight, "New Game", StylePrimary, p.game.NewGameAction)

	y += ButtonHeight + 8
	half := (w - 8) / 2
	p.settingsBtn = NewButton(x, y, half, ButtonHeight-6, "Settings", StyleSecondary, p.game.ShowSettings)
	p.flipBtn = NewButton(x+half+8, y, half, ButtonHeight-6, "Flip Board", StyleSecondary, p.game.FlipAction)
}

func (p *Panel) buttons() []*Button {
	return []*Button{p.newGameBtn, p.settingsBtn, p.flipBtn}
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	if p.collapseBtn.Update(input) {
		return true
	}
	if p.collapsed {
		return false
	}

	mx, my := input.MousePosition()
	if _, wheelY := ebiten.Wheel(); wheelY != 0 && mx >= BoardSize && my >= p.historyTop() {
		p.scrollY -= int(wheelY * 30)
		p.clampScroll()
	}

	for _, b := range p.buttons() {
		if b.Update(input) {
			return true
		}
	}
	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapseBtn.IsHovered() {
		return true
	}
	if p.collapsed {
		return false
	}
	for _, b := range p.buttons() {
		if b.IsHovered() {
			return true
		}
	}
	return false
}

// ScrollToEnd keeps the newest move visible.
func (p *Panel) ScrollToEnd() {
	p.scrollY = 1 << 30
}

func (p *Panel) clampScroll() {
	p.scrollY = max(0, min(p.scrollY, p.maxScrollY))
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.collapsed {
		fillRect(screen, BoardSize, 0, CollapsedWidth, ScreenHeight, panelBg)
		p.drawCollapseButton(screen, "›")
		return
	}

	fillRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg)
	p.drawCollapseButton(screen, "‹")
	for _, b := range p.buttons() {
		b.Draw(screen)
	}

	top := p.historyTop()
	DrawSectionHeader(screen, "Moves", BoardSize+PanelPadding, top-SectionLabelH)
	p.drawMoveHistory(screen, top)
	p.drawStatusBar(screen)
}

func (p *Panel) historyTop() int {
	return p.settingsBtn.Y + p.settingsBtn.H + SectionSpacing + SectionLabelH
}

func (p *Panel) drawCollapseButton(screen *ebiten.Image, arrow string) {
	b := p.collapseBtn
	bg, fg := panelBg, textMuted
	if b.IsHovered() {
		bg, fg = sectionBg, textPrimary
	}
	fillRect(screen, b.X, b.Y, b.W, b.H, bg)
	drawTextCentered(screen, arrow, b.X+b.W/2, b.Y+b.H/2, fg, regularScaled())
}

// drawMoveHistory lists moves two per row, White then Black, scrolled by
// scrollY.
func (p *Panel) drawMoveHistory(screen *ebiten.Image, top int) {
	moves := p.game.MoveList()
	x := BoardSize + PanelPadding
	if len(moves) == 0 {
		drawText(screen, "No moves yet", x, top+5, textMuted)
		return
	}

	bottom := ScreenHeight - statusBarHeight
	visible := bottom - top
	rows := (len(moves) + 1) / 2
	content := rows * moveRowHeight
	p.maxScrollY = max(0, content-visible)
	p.clampScroll()

	for row := p.scrollY / moveRowHeight; row < rows; row++ {
		y := top + row*moveRowHeight - p.scrollY
		if y+moveRowHeight > bottom {
			break
		}
		if y < top {
			continue
		}
		if row%2 == 1 {
			fillRect(screen, x-4, y-2, PanelWidth-PanelPadding*2+8, moveRowHeight, sectionBg)
		}
		drawText(screen, fmt.Sprintf("%d.", row+1), x, y, textMuted)
		drawText(screen, moves[row*2], x+36, y, textPrimary)
		if row*2+1 < len(moves) {
			drawText(screen, moves[row*2+1], x+120, y, textPrimary)
		}
	}

	if p.maxScrollY > 0 {
		barH := max(20, visible*visible/content)
		barY := top + (visible-barH)*p.scrollY/p.maxScrollY
		fillRect(screen, BoardSize+PanelWidth-8, barY, 4, barH, textMuted)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	x := BoardSize + PanelPadding
	y := ScreenHeight - statusBarHeight + 12
	DrawDivider(screen, x, y-10, PanelWidth-PanelPadding*2)

	name := p.game.Username()
	if len(name) > 12 {
		name = name[:12] + "..."
	}
	drawText(screen, name, x, y, textPrimary)

	if stats := p.game.Stats(); stats != nil {
		record := fmt.Sprintf("W %d  B %d", stats.WhiteWins, stats.BlackWins)
		drawText(screen, record, x+130, y, textSecondary)
	}

	status, c := p.game.Status()
	drawText(screen, status, x, y+24, c)
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel and resizes the window to match.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.layout()
	if p.collapsed {
		ebiten.SetWindowSize(BoardSize+CollapsedWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}
}
