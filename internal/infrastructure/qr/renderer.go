// Package qr composes scannable QR code images with a caption strip, in the
// house style: gold modules on black, red caption text.
package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	defaultSize = 360
	lineHeight  = 16
	stripMargin = 8
)

var (
	gold        = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	black       = color.RGBA{A: 255}
	captionText = color.RGBA{R: 255, A: 255}
)

// Renderer implements ports.CodeRenderer with go-qrcode plus a basicfont
// caption strip drawn beneath the code.
type Renderer struct {
	size int
}

// NewRenderer returns a Renderer producing defaultSize-pixel codes.
func NewRenderer() *Renderer {
	return &Renderer{size: defaultSize}
}

// Render encodes payload as a QR code with caption drawn centred below it and
// returns the composed PNG. Payloads exceeding QR capacity fail loudly;
// nothing is ever truncated.
func (r *Renderer) Render(payload, caption string) ([]byte, error) {
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("render: encode payload: %w", err)
	}
	code.ForegroundColor = gold
	code.BackgroundColor = black

	qrImg := code.Image(r.size)
	bounds := qrImg.Bounds()
	width := bounds.Dx()

	// Each whitespace-separated word of the caption becomes its own
	// centred line, e.g. "50 COIN" renders as "50" over "COIN".
	lines := strings.Fields(caption)
	stripHeight := len(lines)*lineHeight + stripMargin

	canvas := image.NewRGBA(image.Rect(0, 0, width, bounds.Dy()+stripHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)
	draw.Draw(canvas, bounds, qrImg, bounds.Min, draw.Src)

	face := basicfont.Face7x13
	for i, line := range lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		drawer := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(captionText),
			Face: face,
			Dot: fixed.P(
				(width-lineWidth)/2,
				bounds.Dy()+stripMargin/2+(i+1)*lineHeight-4,
			),
		}
		drawer.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
