// Package game enforces turn order on top of the board package: it validates
// move requests, records history and detects the end of the game.
package game

import (
	"fmt"

	"github.com/apex/log"
	"github.com/hailam/chessrules/internal/board"
	"golang.org/x/exp/slices"
)

// Game holds the authoritative board and the state around it.
type Game struct {
	start   *board.Board
	board   *board.Board
	chooser board.PromotionChooser

	over   bool
	winner board.Color

	history []board.MoveInfo
	log     log.Interface
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for move and game-over events.
func WithLogger(l log.Interface) Option {
	return func(g *Game) { g.log = l }
}

// WithChooser sets the promotion chooser consulted by RequestMove. Without
// one, pawns promote to a queen.
func WithChooser(c board.PromotionChooser) Option {
	return func(g *Game) { g.chooser = c }
}

// WithBoard starts the game from b instead of the standard position. The
// game keeps its own copy.
func WithBoard(b *board.Board) Option {
	return func(g *Game) { g.start = b.Clone() }
}

// New creates a game in the starting position with White to move.
func New(opts ...Option) *Game {
	g := &Game{
		start:   board.NewBoard(),
		chooser: board.AutoQueen,
		log:     log.Log,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset()
	return g
}

// Reset returns the game to its starting position.
func (g *Game) Reset() {
	g.board = g.start.Clone()
	g.over = false
	g.winner = board.White
	g.history = nil
	g.checkGameEnd()
}

// RequestMove validates and plays a move for the side to move. On rejection
// it returns a *MoveError and the game is unchanged.
func (g *Game) RequestMove(from, to board.Square) error {
	return g.RequestMoveWith(from, to, g.chooser)
}

// RequestMoveWith is RequestMove with a chooser for this move only. Frontends
// that ask the player before submitting pass board.Promote(kind).
func (g *Game) RequestMoveWith(from, to board.Square, chooser board.PromotionChooser) error {
	if err := g.validate(from, to); err != nil {
		return g.reject(from, to, err)
	}

	info, err := g.board.MakeMove(from, to, chooser)
	if err != nil {
		return g.reject(from, to, err)
	}
	g.history = append(g.history, info)

	g.log.WithFields(log.Fields{
		"from":    from,
		"to":      to,
		"piece":   info.Piece,
		"capture": info.Captured,
		"ply":     len(g.history),
	}).Debug("move")

	g.checkGameEnd()
	return nil
}

// validate runs the rejection checks in order.
func (g *Game) validate(from, to board.Square) error {
	if g.over {
		return ErrGameOver
	}
	p, ok := g.board.PieceAt(from)
	if !ok {
		return ErrNoPiece
	}
	if p.Color != g.board.SideToMove() {
		return ErrWrongSide
	}
	if !slices.Contains(g.board.Sight(from), to) {
		return ErrNotPseudoMove
	}
	if !slices.Contains(g.board.LegalMoves(from), to) {
		return ErrKingExposed
	}
	return nil
}

func (g *Game) reject(from, to board.Square, err error) error {
	g.log.WithFields(log.Fields{
		"from":   from,
		"to":     to,
		"reason": err,
	}).Debug("move rejected")
	return &MoveError{From: from, To: to, Err: err}
}

// checkGameEnd ends the game when the side to move has no legal move. The
// other side is recorded as the winner; stalemate is not told apart.
func (g *Game) checkGameEnd() {
	side := g.board.SideToMove()
	if g.board.LegalMoveCount(side) > 0 {
		return
	}
	g.over = true
	g.winner = side.Other()
	g.log.WithFields(log.Fields{
		"winner": g.winner,
		"check":  g.board.InCheck(side),
		"plies":  len(g.history),
	}).Info("game over")
}

// PieceAt returns a copy of the piece on sq.
func (g *Game) PieceAt(sq board.Square) (board.Piece, bool) {
	return g.board.PieceAt(sq)
}

// Pieces returns copies of every piece on the board, White first.
func (g *Game) Pieces() []board.Piece {
	return append(g.board.Pieces(board.White), g.board.Pieces(board.Black)...)
}

// SideToMove returns the color whose turn it is.
func (g *Game) SideToMove() board.Color {
	return g.board.SideToMove()
}

// LegalMoves returns the legal destinations of the piece on sq.
func (g *Game) LegalMoves(sq board.Square) []board.Square {
	return g.board.LegalMoves(sq)
}

// LegalMoveCount returns the number of legal moves available to c.
func (g *Game) LegalMoveCount(c board.Color) int {
	return g.board.LegalMoveCount(c)
}

// IsPromotion reports whether moving from to to would promote a pawn.
func (g *Game) IsPromotion(from, to board.Square) bool {
	return g.board.IsPromotion(from, to)
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.board.InCheck(g.board.SideToMove())
}

// KingSquare returns the square of c's king.
func (g *Game) KingSquare(c board.Color) board.Square {
	return g.board.KingSquare(c)
}

// GameOver returns true once the side to move has no legal moves.
func (g *Game) GameOver() bool {
	return g.over
}

// Winner returns the winning color, if the game is over.
func (g *Game) Winner() (board.Color, bool) {
	return g.winner, g.over
}

// Result returns a short description of the outcome, or "" while the game
// is in progress.
func (g *Game) Result() string {
	if !g.over {
		return ""
	}
	return fmt.Sprintf("Checkmate, %s wins!", g.winner)
}

// History returns the moves played so far.
func (g *Game) History() []board.MoveInfo {
	return slices.Clone(g.history)
}

// LastMove returns the most recent move.
func (g *Game) LastMove() (board.MoveInfo, bool) {
	if len(g.history) == 0 {
		return board.MoveInfo{}, false
	}
	return g.history[len(g.history)-1], true
}

// MoveCount returns the number of moves played.
func (g *Game) MoveCount() int {
	return len(g.history)
}

// FEN describes the current position.
func (g *Game) FEN() string {
	return g.board.FEN()
}

// Snapshot returns an independent copy of the current board.
func (g *Game) Snapshot() *board.Board {
	return g.board.Clone()
}
