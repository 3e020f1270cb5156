package svgpath_test

import (
	"strings"
	"testing"

	"github.com/byosamah/volteria-canvas/pkg/svgpath"
)

func TestDialArcPaths(t *testing.T) {
	const cx, cy, r = 100.0, 100.0, 80.0
	tests := []struct {
		name       string
		percentage float64
		wantFill   string
		wantRem    string
	}{
		{
			name:       "empty",
			percentage: 0,
			wantFill:   "",
			wantRem:    "M 43.43 43.43 A 80.00 80.00 0 1 1 43.43 156.57",
		},
		{
			name:       "below one third keeps large remainder",
			percentage: 33,
			wantFill:   "M 43.43 43.43 A 80.00 80.00 0 0 1 155.67 42.55",
			wantRem:    "M 155.67 42.55 A 80.00 80.00 0 1 1 43.43 156.57",
		},
		{
			name:       "above one third flips the flag",
			percentage: 34,
			wantFill:   "M 43.43 43.43 A 80.00 80.00 0 0 1 158.32 45.24",
			wantRem:    "M 158.32 45.24 A 80.00 80.00 0 0 1 43.43 156.57",
		},
		{
			name:       "full",
			percentage: 100,
			wantFill:   "M 43.43 43.43 A 80.00 80.00 0 1 1 43.43 156.57",
			wantRem:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svgpath.DialFill(cx, cy, r, tt.percentage); got != tt.wantFill {
				t.Errorf("DialFill(%v) = %q, want %q", tt.percentage, got, tt.wantFill)
			}
			if got := svgpath.DialRemainder(cx, cy, r, tt.percentage); got != tt.wantRem {
				t.Errorf("DialRemainder(%v) = %q, want %q", tt.percentage, got, tt.wantRem)
			}
		})
	}
}

func TestDialFillRemainderContinuity(t *testing.T) {
	// The fill end point must equal the remainder start point at every
	// percentage, otherwise the dial shows a visual discontinuity.
	const cx, cy, r = 100.0, 100.0, 80.0
	track := svgpath.DialTrack(cx, cy, r)
	if track != "M 43.43 43.43 A 80.00 80.00 0 1 1 43.43 156.57" {
		t.Errorf("DialTrack() = %q", track)
	}
	for p := 1.0; p < 100; p++ {
		fill := strings.Fields(svgpath.DialFill(cx, cy, r, p))
		rem := strings.Fields(svgpath.DialRemainder(cx, cy, r, p))
		fillEnd := fill[len(fill)-2:]
		remStart := rem[1:3]
		if fillEnd[0] != remStart[0] || fillEnd[1] != remStart[1] {
			t.Fatalf("p=%v: fill ends %v but remainder starts %v", p, fillEnd, remStart)
		}
	}
}

func TestDialNeedleAngle(t *testing.T) {
	tests := []struct {
		percentage float64
		want       float64
	}{
		{0, 225},
		{50, 360},
		{100, 495},
		{-10, 225},
		{200, 495},
	}
	for _, tt := range tests {
		if got := svgpath.DialNeedleAngle(tt.percentage); got != tt.want {
			t.Errorf("DialNeedleAngle(%v) = %v, want %v", tt.percentage, got, tt.want)
		}
	}
}

func TestCablePaths(t *testing.T) {
	a := svgpath.Point{X: 100, Y: 100}
	b := svgpath.Point{X: 300, Y: 200}

	if got, want := svgpath.StraightPath(a, b), "M 100.00 100.00 L 300.00 200.00"; got != want {
		t.Errorf("StraightPath() = %q, want %q", got, want)
	}
	if got, want := svgpath.CurvedPath(a, b), "M 100.00 100.00 Q 170.00 210.00 300.00 200.00"; got != want {
		t.Errorf("CurvedPath() = %q, want %q", got, want)
	}
	if got, want := svgpath.OrthogonalPath(a, b), "M 100.00 100.00 L 200.00 100.00 L 200.00 200.00 L 300.00 200.00"; got != want {
		t.Errorf("OrthogonalPath() = %q, want %q", got, want)
	}
}

func TestCurvedPathZeroChord(t *testing.T) {
	p := svgpath.Point{X: 50, Y: 50}
	if got, want := svgpath.CurvedPath(p, p), "M 50.00 50.00 L 50.00 50.00"; got != want {
		t.Errorf("CurvedPath(zero chord) = %q, want %q", got, want)
	}
}

func TestGridToCanvas(t *testing.T) {
	tests := []struct {
		name       string
		x, y       float64
		cols, rows int
		want       svgpath.Point
	}{
		{name: "inside", x: 2, y: 3, cols: 12, rows: 8, want: svgpath.Point{X: 200, Y: 300}},
		{name: "fractional", x: 1.5, y: 0.25, cols: 12, rows: 8, want: svgpath.Point{X: 150, Y: 25}},
		{name: "clamped low", x: -4, y: -1, cols: 12, rows: 8, want: svgpath.Point{X: 0, Y: 0}},
		{name: "clamped high", x: 40, y: 99, cols: 12, rows: 8, want: svgpath.Point{X: 1200, Y: 800}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svgpath.GridToCanvas(tt.x, tt.y, tt.cols, tt.rows); got != tt.want {
				t.Errorf("GridToCanvas() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
