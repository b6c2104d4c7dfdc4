package ui

import (
	"image/color"

	"github.com/apex/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// blurShader is one pass of a separable 9-tap Gaussian blur along Dir. The
// tint is mixed in by the amount TintMix, so the second pass can apply it.
var blurShader = []byte(`
//kage:unit pixels

package main

var Dir vec2
var Tint vec4
var TintMix float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
    var sum vec4
    sum += imageSrc0At(srcPos - 4*Dir) * 0.0162
    sum += imageSrc0At(srcPos - 3*Dir) * 0.0540
    sum += imageSrc0At(srcPos - 2*Dir) * 0.1218
    sum += imageSrc0At(srcPos - Dir) * 0.1954
    sum += imageSrc0At(srcPos) * 0.2252
    sum += imageSrc0At(srcPos + Dir) * 0.1954
    sum += imageSrc0At(srcPos + 2*Dir) * 0.1218
    sum += imageSrc0At(srcPos + 3*Dir) * 0.0540
    sum += imageSrc0At(srcPos + 4*Dir) * 0.0162
    return mix(sum, vec4(Tint.rgb, 1.0), Tint.a*TintMix)
}
`)

// GlassEffect draws a blurred, tinted backdrop behind modals. Without shader
// support it falls back to a flat translucent overlay.
type GlassEffect struct {
	shader       *ebiten.Shader
	capture, tmp *ebiten.Image
}

// NewGlassEffect compiles the blur shader.
func NewGlassEffect() *GlassEffect {
	shader, err := ebiten.NewShader(blurShader)
	if err != nil {
		log.WithError(err).Warn("glass shader unavailable, using flat overlay")
		return &GlassEffect{}
	}
	return &GlassEffect{shader: shader}
}

// IsEnabled returns whether the blur is available.
func (ge *GlassEffect) IsEnabled() bool {
	return ge != nil && ge.shader != nil
}

func (ge *GlassEffect) ensureImages(w, h int) {
	if ge.capture == nil || ge.capture.Bounds().Dx() != w || ge.capture.Bounds().Dy() != h {
		ge.capture = ebiten.NewImage(w, h)
		ge.tmp = ebiten.NewImage(w, h)
	}
}

// DrawBackdrop blurs the whole screen and tints it. sigma is the tap spacing
// in pixels.
func (ge *GlassEffect) DrawBackdrop(screen *ebiten.Image, tint color.RGBA, sigma float64) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if !ge.IsEnabled() {
		overlay := ebiten.NewImage(w, h)
		overlay.Fill(tint)
		screen.DrawImage(overlay, nil)
		return
	}

	ge.ensureImages(w, h)
	ge.capture.Clear()
	ge.capture.DrawImage(screen, nil)

	tintVec := []float32{
		float32(tint.R) / 255, float32(tint.G) / 255,
		float32(tint.B) / 255, float32(tint.A) / 255,
	}

	ge.tmp.Clear()
	ge.tmp.DrawRectShader(w, h, ge.shader, &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{
			"Dir":     []float32{float32(sigma), 0},
			"Tint":    tintVec,
			"TintMix": float32(0),
		},
		Images: [4]*ebiten.Image{ge.capture},
	})
	screen.DrawRectShader(w, h, ge.shader, &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{
			"Dir":     []float32{0, float32(sigma)},
			"Tint":    tintVec,
			"TintMix": float32(1),
		},
		Images: [4]*ebiten.Image{ge.tmp},
	})
}
