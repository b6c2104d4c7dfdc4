package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/chessrules/internal/board"
	"golang.org/x/exp/slices"
)

// Theme holds the terminal colors.
type Theme struct {
	LightSquare tcell.Color
	DarkSquare  tcell.Color
	Selected    tcell.Color
	LastMove    tcell.Color
	Check       tcell.Color
	Target      tcell.Color
	WhitePiece  tcell.Color
	BlackPiece  tcell.Color
	Text        tcell.Color
	Muted       tcell.Color
}

// DefaultTheme returns colors close to the desktop board.
func DefaultTheme() Theme {
	return Theme{
		LightSquare: tcell.NewRGBColor(240, 217, 181),
		DarkSquare:  tcell.NewRGBColor(181, 136, 99),
		Selected:    tcell.NewRGBColor(130, 151, 105),
		LastMove:    tcell.NewRGBColor(205, 210, 106),
		Check:       tcell.NewRGBColor(220, 80, 80),
		Target:      tcell.NewRGBColor(60, 60, 60),
		WhitePiece:  tcell.ColorWhite,
		BlackPiece:  tcell.ColorBlack,
		Text:        tcell.ColorReset,
		Muted:       tcell.ColorGray,
	}
}

// Draw renders the board and panel and shows the frame.
func (a *App) Draw() {
	a.screen.Clear()
	a.drawBoard()
	a.drawPanel()
	a.screen.Show()
}

func (a *App) puts(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (a *App) drawBoard() {
	gm := a.session.Game
	last, hasLast := gm.LastMove()
	checkSq := board.NoSquare
	if gm.InCheck() {
		checkSq = gm.KingSquare(gm.SideToMove())
	}

	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		bg := a.theme.LightSquare
		if (sq.File()+sq.Rank())%2 == 1 {
			bg = a.theme.DarkSquare
		}
		switch {
		case sq == checkSq:
			bg = a.theme.Check
		case sq == a.selected:
			bg = a.theme.Selected
		case hasLast && (sq == last.From || sq == last.To):
			bg = a.theme.LastMove
		}

		style := tcell.StyleDefault.Background(bg)
		text := "   "
		if p, ok := gm.PieceAt(sq); ok {
			fg := a.theme.WhitePiece
			if p.Color == board.Black {
				fg = a.theme.BlackPiece
			}
			style = style.Foreground(fg).Bold(true)
			text = " " + p.String() + " "
		} else if a.session.Prefs.ShowLegalMoves && slices.Contains(a.targets, sq) {
			style = style.Foreground(a.theme.Target)
			text = " · "
		}
		if sq == a.cursor && a.mode == modePlay {
			text = "[" + string([]rune(text)[1]) + "]"
		}

		col, row := a.cellOf(sq)
		a.puts(boardX+col*cellW, boardY+row, style, text)
	}

	label := tcell.StyleDefault.Foreground(a.theme.Muted)
	for i := 0; i < 8; i++ {
		sq := a.squareFromCell(i, i)
		a.puts(boardX-2, boardY+i, label, sq.String()[1:])
		a.puts(boardX+i*cellW+1, boardY+8, label, sq.String()[:1])
	}
}

func (a *App) drawPanel() {
	text := tcell.StyleDefault.Foreground(a.theme.Text)
	muted := tcell.StyleDefault.Foreground(a.theme.Muted)
	y := boardY

	a.puts(panelX, y, text.Bold(true), a.session.Prefs.Username)
	if st := a.session.Stats; st != nil {
		a.puts(panelX, y+1, muted, fmt.Sprintf("W %d  B %d  played %d", st.WhiteWins, st.BlackWins, st.GamesPlayed))
	}
	y += 3

	a.puts(panelX, y, text, a.status())
	y += 2

	moves := a.session.MoveStrings()
	rows := (len(moves) + 1) / 2
	const shown = 8
	for row := max(0, rows-shown); row < rows; row++ {
		line := fmt.Sprintf("%3d. %-6s", row+1, moves[row*2])
		if row*2+1 < len(moves) {
			line += moves[row*2+1]
		}
		a.puts(panelX, y, text, line)
		y++
	}

	_, h := a.screen.Size()
	bottom := max(boardY+10, h-3)
	switch a.mode {
	case modeResume:
		pending := a.session.Pending()
		a.puts(boardX, bottom, text.Bold(true),
			fmt.Sprintf("Resume the unfinished game (%d moves)? [y/n]", len(pending.Moves)))
	default:
		if a.message != "" {
			a.puts(boardX, bottom, text.Bold(true), a.message)
		}
	}
	a.puts(boardX, bottom+1, muted, "arrows/mouse select  enter move  f flip  n new  q quit")
}

// status describes whose turn it is, or the result.
func (a *App) status() string {
	gm := a.session.Game
	switch {
	case gm.GameOver():
		return gm.Result()
	case gm.InCheck():
		return gm.SideToMove().String() + " to move, in check"
	default:
		return gm.SideToMove().String() + " to move"
	}
}
