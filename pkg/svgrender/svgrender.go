// Package svgrender rasterizes the SVG documents the gauge and cable
// renderers generate. Rendering failures yield a blank image, never a
// panic; a malformed document is a bug in the generator, not a reason
// to take the page down.
package svgrender

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Document wraps a generated SVG body with its viewBox so the drawing
// scales with the widget regardless of pixel size.
func Document(viewW, viewH float64, body string) string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f">%s</svg>`,
		viewW, viewH, body)
}

// Rasterize renders an SVG document into a w x h RGBA image.
func Rasterize(svg string, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		log.Println("svgrender: bad document:", err)
		return img
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img
}
