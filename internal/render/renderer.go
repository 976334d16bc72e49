package render

import (
	"github.com/ziadkadry99/rolemap/internal/graph"
)

// Options describe how a graph diagram is drawn.
type Options struct {
	Title       string
	Style       Style
	Palette     *Palette
	Legend      bool
	Zoomable    bool
	LabelBudget int
}

// Draw clears scene and draws g into it. Edges whose endpoints do not both
// resolve are skipped and counted; the rest of the graph still draws.
func Draw(scene *Scene, g *graph.Graph, opts Options) Result {
	scene.Clear()
	scene.Zoomable = opts.Zoomable

	var res Result
	if opts.Title != "" {
		scene.Overlay = append(scene.Overlay, TextShape{
			X: scene.Width / 2, Y: 20, Lines: []string{opts.Title},
			Size: 14, Bold: true, Anchor: "middle", Fill: "#333",
		})
	}

	stroke, width, marker := edgeStyle(opts.Style)
	if marker != nil {
		scene.Markers = append(scene.Markers, *marker)
	}
	for _, e := range g.Edges {
		src, dst, ok := g.Resolve(e)
		if !ok {
			res.Skipped++
			continue
		}
		shape := EdgeShape{
			Source:      e.Source,
			Target:      e.Target,
			Path:        edgePath(opts.Style, src.X, src.Y, dst.X, dst.Y, e.Dashed),
			Stroke:      stroke,
			StrokeWidth: width,
			Dashed:      e.Dashed || opts.Style == StyleBlock,
		}
		if marker != nil {
			shape.MarkerID = marker.ID
		}
		scene.Edges = append(scene.Edges, shape)
		res.Edges++
	}

	budget := opts.LabelBudget
	if budget == 0 {
		budget = DefaultLabelBudget
	}
	for _, n := range g.Nodes {
		fill := opts.Palette.TypeColor(n.Type)
		if opts.Style == StyleWorkflow {
			fill = workflowFill
		}
		scene.Nodes = append(scene.Nodes, nodeShape(opts.Style, n, fill, budget))
		res.Nodes++
	}

	if opts.Legend {
		scene.Legend = Legend(opts.Palette, g.Types())
	}
	return res
}

const workflowFill = "#3A86FF"

// Reposition moves already drawn nodes and their edges to the positions in
// g without rebuilding the scene. It is used after a drag.
func Reposition(scene *Scene, g *graph.Graph, style Style) {
	for i := range scene.Nodes {
		if n, ok := g.Node(scene.Nodes[i].ID); ok {
			scene.Nodes[i].X, scene.Nodes[i].Y = n.X, n.Y
		}
	}
	for i, e := range scene.Edges {
		src, dst, ok := g.Resolve(graph.Edge{Source: e.Source, Target: e.Target})
		if !ok {
			continue
		}
		scene.Edges[i].Path = edgePath(style, src.X, src.Y, dst.X, dst.Y, e.Dashed)
	}
}
