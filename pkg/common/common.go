package common

import "math"

const (
	PiDiv180 = math.Pi / 180

	// Dial geometry. The dial sweeps 270 degrees starting at the lower
	// left (225 deg in SVG screen coordinates, y axis pointing down) and
	// opens at the bottom.
	DialStartDeg = 225.0
	DialSweepDeg = 270.0
	DialEndDeg   = DialStartDeg + DialSweepDeg

	// One grid cell maps to this many canvas units so drawings are
	// resolution independent.
	CellUnits = 100.0

	OneHalf    = 1.0 / 2.0 // 0.5
	OneThird   = 1.0 / 3.0 // 0.3333333333333333
	OneFourth  = 1.0 / 4.0 // 0.25
	OneFifth   = 1.0 / 5.0 // 0.2
	OneSixth   = 1.0 / 6.0 // 0.16666666666666666
	OneSeventh = 1.0 / 7.0 // 0.14285714285714285
	OneEight   = 1.0 / 8.0 // 0.125
	OneTenth   = 1.0 / 10.0
)

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Percentage maps value onto [0,100] within [min,max]. A degenerate
// range (max <= min) yields 0 rather than NaN or Inf.
func Percentage(value, min, max float64) float64 {
	if max <= min {
		return 0
	}
	p := (value - min) / (max - min) * 100
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return Clamp(p, 0, 100)
}
