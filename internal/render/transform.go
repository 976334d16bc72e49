package render

import "fmt"

// Transform is a pan/zoom viewport: translate(X, Y) scale(K).
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the untransformed viewport.
func Identity() Transform { return Transform{K: 1} }

// IsIdentity reports whether t leaves coordinates unchanged.
func (t Transform) IsIdentity() bool { return t.X == 0 && t.Y == 0 && t.K == 1 }

// String renders t as an SVG transform attribute value.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%s,%s) scale(%s)", num(t.X), num(t.Y), num(t.K))
}

// Interpolate returns the transform a fraction f of the way from t to u.
func (t Transform) Interpolate(u Transform, f float64) Transform {
	if f <= 0 {
		return t
	}
	if f >= 1 {
		return u
	}
	return Transform{
		X: t.X + (u.X-t.X)*f,
		Y: t.Y + (u.Y-t.Y)*f,
		K: t.K + (u.K-t.K)*f,
	}
}
