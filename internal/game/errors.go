package game

import (
	"errors"
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// Rejection reasons returned by RequestMove, wrapped in a *MoveError.
var (
	ErrNoPiece       = errors.New("no piece selected")
	ErrWrongSide     = errors.New("piece belongs to the other side")
	ErrNotPseudoMove = errors.New("piece cannot move there")
	ErrKingExposed   = errors.New("move leaves the king in check")
	ErrGameOver      = errors.New("game is over")

	// ErrInvalidPromotion is returned when the promotion chooser answers
	// with a kind that was not offered.
	ErrInvalidPromotion = board.ErrInvalidPromotion
)

// MoveError describes a rejected move request. The board is unchanged.
type MoveError struct {
	From, To board.Square
	Err      error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %v-%v rejected: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Reason classifies the rejection for frontends.
func (e *MoveError) Reason() Reason {
	return ReasonOf(e)
}

// Reason represents why a move request was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoPiece
	ReasonWrongSide
	ReasonNotPseudoMove
	ReasonKingExposed
	ReasonGameOver
	ReasonInvalidPromotion
	ReasonUnknown
)

var reasonErrors = []struct {
	reason Reason
	err    error
}{
	{ReasonNoPiece, ErrNoPiece},
	{ReasonWrongSide, ErrWrongSide},
	{ReasonNotPseudoMove, ErrNotPseudoMove},
	{ReasonKingExposed, ErrKingExposed},
	{ReasonGameOver, ErrGameOver},
	{ReasonInvalidPromotion, ErrInvalidPromotion},
}

// ReasonOf maps an error returned by RequestMove to its Reason. A nil error
// maps to ReasonNone.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	for _, re := range reasonErrors {
		if errors.Is(err, re.err) {
			return re.reason
		}
	}
	return ReasonUnknown
}

// String returns a message suitable for showing to the player.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonNoPiece:
		return "You have not selected a piece"
	case ReasonWrongSide:
		return "You have selected the wrong color piece"
	case ReasonNotPseudoMove:
		return "Your piece cannot move there"
	case ReasonKingExposed:
		return "Your king is unprotected"
	case ReasonGameOver:
		return "The game is over"
	case ReasonInvalidPromotion:
		return "Invalid promotion piece"
	default:
		return "Invalid move"
	}
}
