package qr

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

func TestRenderer_ProducesDecodablePNG(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("http://coin.local/attribute/abc", "50 COIN")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}

	b := img.Bounds()
	if b.Dx() < defaultSize {
		t.Fatalf("image narrower than the code: %d", b.Dx())
	}
	// The caption strip extends the canvas below the square code.
	if b.Dy() <= b.Dx() {
		t.Fatalf("caption strip missing: %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderer_CaptionLines(t *testing.T) {
	r := NewRenderer()

	one, err := r.Render("payload", "alice")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	two, err := r.Render("payload", "50 COIN")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	imgOne, _ := png.Decode(bytes.NewReader(one))
	imgTwo, _ := png.Decode(bytes.NewReader(two))
	if imgTwo.Bounds().Dy() <= imgOne.Bounds().Dy() {
		t.Fatalf("two-word caption not taller: %d vs %d", imgTwo.Bounds().Dy(), imgOne.Bounds().Dy())
	}
}

func TestRenderer_OversizedPayloadFailsLoudly(t *testing.T) {
	r := NewRenderer()

	// Beyond QR capacity at any version; must error, never truncate.
	payload := strings.Repeat("x", 5000)
	if _, err := r.Render(payload, "caption"); err == nil {
		t.Fatalf("expected error for oversized payload")
	}
}
