package viewcontrol

import (
	"context"

	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/views"
)

// Pipeline lays out and draws built diagrams.
type Pipeline struct {
	Driver *layout.Driver
	Params layout.Params
	// LabelBudget overrides the label budget of diagrams that leave it unset.
	LabelBudget int
}

// DefaultPipeline uses the default force parameters and budget.
func DefaultPipeline() Pipeline {
	return Pipeline{Driver: layout.NewDriver(layout.DefaultBudget()), Params: layout.DefaultParams()}
}

// Outcome reports one pass through the pipeline. Simulation is set for
// force layouts and is frozen.
type Outcome struct {
	Result     render.Result
	Run        layout.RunResult
	Simulation *layout.Simulation
}

// Draw positions d and draws it into scene, replacing what was there.
func (p Pipeline) Draw(ctx context.Context, d *views.Diagram, scene *render.Scene) Outcome {
	var out Outcome
	switch d.Layout {
	case views.LayoutTimeline:
		out.Result = render.DrawTimeline(scene, d.Stages)
		scene.Zoomable = d.Render.Zoomable
		return out
	case views.LayoutRadar:
		if d.Radar != nil {
			out.Result = render.DrawRadar(scene, *d.Radar)
		} else {
			scene.Clear()
		}
		scene.Zoomable = d.Render.Zoomable
		return out
	case views.LayoutForce:
		out.Simulation = layout.NewSimulation(d.Graph, p.Params)
		out.Run = p.Driver.Run(ctx, out.Simulation)
		out.Simulation.Apply(d.Graph)
	}
	opts := d.Render
	if opts.LabelBudget == 0 {
		opts.LabelBudget = p.LabelBudget
	}
	out.Result = render.Draw(scene, d.Graph, opts)
	return out
}

// DrawRole draws a role sunburst into scene.
func (p Pipeline) DrawRole(rd *views.RoleDiagram, scene *render.Scene) render.Result {
	return render.DrawSunburst(scene, rd.Hierarchy, rd.Options)
}
