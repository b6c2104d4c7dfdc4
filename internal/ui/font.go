package ui

import (
	"bytes"

	"github.com/apex/log"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Point sizes at a UI scale of 1.
const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
)

var regularSource, boldSource = loadSource("regular", goregular.TTF), loadSource("bold", gobold.TTF)

// loadSource parses an embedded Go font. Text is skipped if it fails.
func loadSource(name string, ttf []byte) *text.GoTextFaceSource {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		log.WithError(err).WithField("font", name).Error("load font")
		return nil
	}
	return src
}

func faceOf(src *text.GoTextFaceSource, size float64) *text.GoTextFace {
	if src == nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// regularFace returns the regular face at size device pixels.
func regularFace(size float64) *text.GoTextFace {
	return faceOf(regularSource, size)
}

// boldFace returns the bold face at size device pixels.
func boldFace(size float64) *text.GoTextFace {
	return faceOf(boldSource, size)
}

// measure returns the size of s in face, or zero without a face.
func measure(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
