// Package layout positions diagram nodes: fixed formulas for static views,
// a force simulation for the switchable architecture views and a radial
// partition for the role sunburst.
package layout

import "math"

// Radial returns the position of item i of n evenly spaced on a circle of
// radius r around (cx, cy), starting at angle zero.
func Radial(cx, cy, r float64, i, n int) (x, y float64) {
	if n <= 0 {
		return cx, cy
	}
	angle := 2 * math.Pi * float64(i) / float64(n)
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

// Band returns the x coordinate of item i of n spread over the middle 60%
// of width. A single item is centred.
func Band(width float64, i, n int) float64 {
	if n <= 1 {
		return width / 2
	}
	return width * (0.2 + 0.6*float64(i)/float64(n-1))
}

// Fraction scales a relative coordinate onto an axis of the given length.
func Fraction(length, f float64) float64 { return length * f }

// LevelY returns the y coordinate of a hierarchy level.
func LevelY(top, step float64, level int) float64 {
	return top + step*float64(level)
}
