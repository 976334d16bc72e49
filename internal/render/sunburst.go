package render

import (
	"fmt"
	"math"

	"github.com/ziadkadry99/rolemap/internal/layout"
)

// SunburstOptions describe a role sunburst.
type SunburstOptions struct {
	Title       string
	Description string
	Palette     *Palette
}

// DrawSunburst clears scene and draws root as concentric rings. The root
// cell itself is not drawn; every other cell is coloured by its depth-1
// ancestor and depth-1 cells are labelled along their mid angle.
func DrawSunburst(scene *Scene, root *layout.Hierarchy, opts SunburstOptions) Result {
	scene.Clear()
	w, h := scene.Width, scene.Height

	scene.Overlay = append(scene.Overlay,
		TextShape{X: w / 2, Y: 30, Lines: []string{opts.Title}, Size: 18, Bold: true, Anchor: "middle", Fill: "#333"},
		TextShape{X: w / 2, Y: 55, Lines: []string{opts.Description}, Size: 14, Anchor: "middle", Fill: "#555"},
	)

	radius := math.Max(math.Min(w, h)/2-60, 10)
	scene.ArcOriginX, scene.ArcOriginY = w/2, h/2+30

	var res Result
	for _, c := range layout.Partition(root, 2*math.Pi, radius) {
		if c.Depth == 0 {
			continue
		}
		scene.Arcs = append(scene.Arcs, ArcShape{
			Name:    c.Name,
			Depth:   c.Depth,
			Path:    AnnularSector(c.X0, c.X1, c.Y0, c.Y1),
			Fill:    opts.Palette.Color(c.Branch),
			Tooltip: c.Name,
		})
		res.Nodes++

		if c.Depth != 1 {
			continue
		}
		mid := (c.X0 + c.X1) / 2
		deg := mid * 180 / math.Pi
		flip := 0.0
		anchor := "start"
		if deg >= 180 {
			flip = 180
		}
		if mid >= math.Pi {
			anchor = "end"
		}
		scene.ArcLabels = append(scene.ArcLabels, TextShape{
			Lines:     []string{c.Name},
			Size:      12,
			Bold:      true,
			Anchor:    anchor,
			Fill:      "#222",
			DY:        "0.35em",
			Transform: fmt.Sprintf("rotate(%s) translate(%s,0) rotate(%s)", num(deg-90), num((c.Y0+c.Y1)/2), num(flip)),
		})
	}
	return res
}
