package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// toastColors holds background and text colors per toast type.
var toastColors = map[ToastType][2]color.RGBA{
	ToastInfo:    {{50, 100, 150, 220}, {255, 255, 255, 255}},
	ToastWarning: {{180, 140, 20, 220}, {40, 30, 0, 255}},
	ToastError:   {{180, 50, 50, 220}, {255, 255, 255, 255}},
	ToastSuccess: {{50, 150, 50, 220}, {255, 255, 255, 255}},
}

// Toast is a short-lived notification drawn over the board.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// alpha returns the fade factor at now.
func (t *Toast) alpha(now time.Time) float64 {
	const fade = 0.2
	elapsed := now.Sub(t.StartTime).Seconds()
	remaining := t.Duration.Seconds() - elapsed
	return math.Max(0, math.Min(1, math.Min(elapsed/fade, remaining/fade)))
}

// ToastManager keeps a small stack of toasts.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification, dropping the oldest when the stack
// is full.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Draw renders all active toasts centered over the board.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := regularFace(defaultFontSize * UIScale)
	if face == nil {
		return
	}

	now := time.Now()
	y := scaleD(50)
	for _, t := range tm.toasts {
		a := t.alpha(now)
		colors := toastColors[t.Type]
		bg, fg := colors[0], colors[1]
		bg.A = uint8(float64(bg.A) * a)
		fg.A = uint8(float64(fg.A) * a)

		w, h := measure(t.Message, face)
		padding := scaleD(12)
		boxW, boxH := w+padding*2, h+padding*2
		x := scaleD(BoardSize)/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(screen, t.Message, face, op)

		y += boxH + scaleD(8)
	}
}

// ShakeAnimation wiggles the piece on a square.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation fades a colored overlay on a square.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager manages visual animations.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := time.Now()

	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// ShakeOffset returns the horizontal shake offset for a square.
func (am *AnimationManager) ShakeOffset(sq board.Square) float64 {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0
		}
		// damped sine
		return s.Intensity * math.Exp(-5*progress) * math.Sin(40*progress)
	}
	return 0
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(c.A) * (1 - progress))
		r.highlightSquare(screen, f.Square, c)
	}
}

// FeedbackManager turns game events into toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// Toast shows a plain message.
func (fm *FeedbackManager) Toast(message string, t ToastType) {
	fm.toasts.Show(message, t, 2*time.Second)
}

// OnInvalidMove reports a rejected move request.
func (fm *FeedbackManager) OnInvalidMove(from, to board.Square, reason game.Reason) {
	fm.toasts.Show(reason.String(), ToastWarning, 2*time.Second)
	if reason != game.ReasonNoPiece {
		fm.animations.StartShake(from)
	}
	if reason == game.ReasonNotPseudoMove || reason == game.ReasonKingExposed {
		fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	}
	fm.audio.Play(SoundInvalid)
}

// OnMoveMade plays the sound for a completed move.
func (fm *FeedbackManager) OnMoveMade(info board.MoveInfo) {
	switch {
	case info.Promotion != board.NoPieceKind:
		fm.audio.Play(SoundPromote)
	case info.Castle:
		fm.audio.Play(SoundCastle)
	case info.IsCapture():
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
}

// OnCheck handles a check event.
func (fm *FeedbackManager) OnCheck() {
	fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
	fm.audio.Play(SoundCheck)
}

// OnGameOver announces the result.
func (fm *FeedbackManager) OnGameOver(result string) {
	fm.toasts.Show(result, ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}
