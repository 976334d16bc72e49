package render

import (
	"math"

	"github.com/samber/lo"
)

// RadarSeries is one dataset on a radar chart, one value per axis.
type RadarSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color"`
}

// Radar is a radial comparison of series over shared axes. Values run from
// zero at the centre to Max at the outer ring.
type Radar struct {
	Title  string        `json:"title"`
	Axes   []string      `json:"axes"`
	Max    float64       `json:"max"`
	Series []RadarSeries `json:"series"`
}

const radarRings = 4

// DrawRadar clears scene and draws r: concentric grid rings, one spoke per
// axis, a filled polygon per series and a series legend under the chart.
// Values outside [0, Max] are clamped and missing values count as zero.
func DrawRadar(scene *Scene, r Radar) Result {
	scene.Clear()
	w, h := scene.Width, scene.Height
	n := len(r.Axes)
	if n == 0 {
		return Result{}
	}
	limit := r.Max
	if limit <= 0 {
		limit = 100
	}

	cx, cy := w/2, h*0.45
	radius := math.Max(math.Min(w, h)*0.32, 10)
	point := func(i int, frac float64) (float64, float64) {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		return cx + radius*frac*math.Cos(angle), cy + radius*frac*math.Sin(angle)
	}

	if r.Title != "" {
		scene.Overlay = append(scene.Overlay,
			TextShape{X: cx, Y: 30, Lines: []string{r.Title}, Size: 16, Bold: true, Anchor: "middle", Fill: "#333"})
	}

	for ring := 1; ring <= radarRings; ring++ {
		grid := PolygonShape{Fill: "none", Stroke: "#ddd", StrokeWidth: 1}
		for i := 0; i < n; i++ {
			x, y := point(i, float64(ring)/radarRings)
			grid.Xs, grid.Ys = append(grid.Xs, x), append(grid.Ys, y)
		}
		scene.Polygons = append(scene.Polygons, grid)
	}

	for i, axis := range r.Axes {
		x, y := point(i, 1)
		scene.Lines = append(scene.Lines, LineShape{X1: cx, Y1: cy, X2: x, Y2: y, Stroke: "#ccc", Width: 1})

		lx, ly := point(i, 1.15)
		anchor := "middle"
		switch {
		case lx < cx-1:
			anchor = "end"
		case lx > cx+1:
			anchor = "start"
		}
		scene.Overlay = append(scene.Overlay,
			TextShape{X: lx, Y: ly, Lines: []string{axis}, Size: 11, Anchor: anchor, Fill: "#333", DY: "0.35em"})
	}

	for _, s := range r.Series {
		shape := PolygonShape{Name: s.Name, Fill: s.Color, FillOpacity: 0.5, Stroke: s.Color, StrokeWidth: 1}
		for i := 0; i < n; i++ {
			v := 0.0
			if i < len(s.Values) {
				v = lo.Clamp(s.Values[i], 0, limit)
			}
			x, y := point(i, v/limit)
			shape.Xs, shape.Ys = append(shape.Xs, x), append(shape.Ys, y)
		}
		scene.Polygons = append(scene.Polygons, shape)
	}

	legendY := h - 25
	for i, s := range r.Series {
		x := w/2 + (float64(i)-float64(len(r.Series)-1)/2)*180 - 70
		scene.Dots = append(scene.Dots, DotShape{X: x, Y: legendY, R: 6, Fill: s.Color})
		scene.Overlay = append(scene.Overlay,
			TextShape{X: x + 12, Y: legendY, Lines: []string{s.Name}, Size: 11, Anchor: "start", Fill: "#333", DY: "0.35em"})
	}

	return Result{Nodes: len(r.Series)}
}
