// Package svgpath generates SVG path data for the gauge and cable
// renderers. Output formatting is fixed at two decimals so generated
// documents are deterministic and can be snapshot tested.
package svgpath

import (
	"fmt"
	"math"
	"strconv"

	"github.com/byosamah/volteria-canvas/pkg/common"
)

type Point struct {
	X, Y float64
}

func fmtNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// PolarToCartesian converts an angle in degrees (SVG screen
// coordinates, y axis down, 0 deg pointing right) to a point on the
// circle around cx,cy.
func PolarToCartesian(cx, cy, r, angleDeg float64) Point {
	rad := angleDeg * common.PiDiv180
	return Point{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)}
}

// Arc draws a clockwise arc from startDeg to endDeg. The large-arc
// flag must flip as the sweep crosses 180 degrees or the geometry
// breaks. A non-positive sweep yields an empty path.
func Arc(cx, cy, r, startDeg, endDeg float64) string {
	if endDeg <= startDeg {
		return ""
	}
	start := PolarToCartesian(cx, cy, r, startDeg)
	end := PolarToCartesian(cx, cy, r, endDeg)
	large := 0
	if endDeg-startDeg > 180 {
		large = 1
	}
	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s",
		fmtNum(start.X), fmtNum(start.Y),
		fmtNum(r), fmtNum(r),
		large,
		fmtNum(end.X), fmtNum(end.Y))
}

// DialTrack is the full 270 degree dial background arc.
func DialTrack(cx, cy, r float64) string {
	return Arc(cx, cy, r, common.DialStartDeg, common.DialEndDeg)
}

// DialFill is the filled part of the dial arc for a percentage. Zero
// percent yields an empty path.
func DialFill(cx, cy, r, percentage float64) string {
	p := common.Clamp(percentage, 0, 100)
	return Arc(cx, cy, r, common.DialStartDeg, common.DialStartDeg+common.DialSweepDeg*p*0.01)
}

// DialRemainder is the unfilled rest of the dial arc, from the fill
// boundary to the end of the track. Its sweep is 270*(1-p/100), so its
// large-arc flag flips as the percentage crosses one third of scale.
func DialRemainder(cx, cy, r, percentage float64) string {
	p := common.Clamp(percentage, 0, 100)
	return Arc(cx, cy, r, common.DialStartDeg+common.DialSweepDeg*p*0.01, common.DialEndDeg)
}

// DialNeedleAngle is the needle angle in degrees for a percentage.
func DialNeedleAngle(percentage float64) float64 {
	p := common.Clamp(percentage, 0, 100)
	return common.DialStartDeg + common.DialSweepDeg*p*0.01
}

// StraightPath is a direct line between two points.
func StraightPath(a, b Point) string {
	return fmt.Sprintf("M %s %s L %s %s",
		fmtNum(a.X), fmtNum(a.Y), fmtNum(b.X), fmtNum(b.Y))
}

// CurvedPath is a quadratic bezier whose control point sits
// perpendicular to the chord at 30 percent of the chord length. A
// zero-length chord degenerates to a straight line so there is no
// divide by zero.
func CurvedPath(a, b Point) string {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return StraightPath(a, b)
	}
	mx := (a.X + b.X) * common.OneHalf
	my := (a.Y + b.Y) * common.OneHalf
	// perpendicular offset scaled by 0.3 of the chord; the chord
	// length cancels out of the unit vector
	cx := mx - dy*0.3
	cy := my + dx*0.3
	return fmt.Sprintf("M %s %s Q %s %s %s %s",
		fmtNum(a.X), fmtNum(a.Y), fmtNum(cx), fmtNum(cy), fmtNum(b.X), fmtNum(b.Y))
}

// OrthogonalPath is a right-angle path through the horizontal
// midpoint.
func OrthogonalPath(a, b Point) string {
	mx := (a.X + b.X) * common.OneHalf
	return fmt.Sprintf("M %s %s L %s %s L %s %s L %s %s",
		fmtNum(a.X), fmtNum(a.Y),
		fmtNum(mx), fmtNum(a.Y),
		fmtNum(mx), fmtNum(b.Y),
		fmtNum(b.X), fmtNum(b.Y))
}

// GridToCanvas maps grid coordinates to virtual canvas units. The
// coordinates are clamped to the grid first so endpoints can never
// land off canvas.
func GridToCanvas(x, y float64, cols, rows int) Point {
	return Point{
		X: common.Clamp(x, 0, float64(cols)) * common.CellUnits,
		Y: common.Clamp(y, 0, float64(rows)) * common.CellUnits,
	}
}
