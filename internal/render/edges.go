package render

import (
	"fmt"
	"math"
)

// StraightPath joins two points with a line.
func StraightPath(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("M%s,%s L%s,%s", num(x1), num(y1), num(x2), num(y2))
}

// ArcPath joins two points with a gentle elliptical arc whose radius is
// 1.5 times their distance. Nearly vertical edges (|dx| < 10) stay straight.
func ArcPath(x1, y1, x2, y2 float64) string {
	dx, dy := x2-x1, y2-y1
	if math.Abs(dx) < 10 {
		return StraightPath(x1, y1, x2, y2)
	}
	dr := math.Sqrt(dx*dx+dy*dy) * 1.5
	return fmt.Sprintf("M%s,%s A%s,%s 0 0,1 %s,%s", num(x1), num(y1), num(dr), num(dr), num(x2), num(y2))
}

// QuadPath joins two points with a quadratic curve through their midpoint.
// Dashed edges bend 30 units further down.
func QuadPath(x1, y1, x2, y2 float64, dashed bool) string {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2
	if dashed {
		midY += 30
	}
	return fmt.Sprintf("M%s,%s Q%s,%s %s,%s", num(x1), num(y1), num(midX), num(midY), num(x2), num(y2))
}

func edgePath(style Style, x1, y1, x2, y2 float64, dashed bool) string {
	switch style {
	case StyleWorkflow:
		return QuadPath(x1, y1, x2, y2, dashed)
	case StyleStandard:
		return ArcPath(x1, y1, x2, y2)
	default:
		return StraightPath(x1, y1, x2, y2)
	}
}

// AnnularSector returns the path of a ring slice between radii r0 < r1
// spanning angles a0 to a1, measured clockwise from twelve o'clock.
func AnnularSector(a0, a1, r0, r1 float64) string {
	if a1-a0 >= 2*math.Pi-1e-9 {
		mid := a0 + math.Pi
		return AnnularSector(a0, mid, r0, r1) + " " + AnnularSector(mid, a1, r0, r1)
	}
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	point := func(r, a float64) string {
		return num(r*math.Sin(a)) + "," + num(-r*math.Cos(a))
	}
	if r0 <= 0 {
		return fmt.Sprintf("M%s A%s,%s 0 %d,1 %s L0,0 Z",
			point(r1, a0), num(r1), num(r1), large, point(r1, a1))
	}
	return fmt.Sprintf("M%s A%s,%s 0 %d,1 %s L%s A%s,%s 0 %d,0 %s Z",
		point(r1, a0), num(r1), num(r1), large, point(r1, a1),
		point(r0, a1), num(r0), num(r0), large, point(r0, a0))
}
