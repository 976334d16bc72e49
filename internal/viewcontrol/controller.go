package viewcontrol

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ziadkadry99/rolemap/internal/graph"
	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/telemetry"
	"github.com/ziadkadry99/rolemap/internal/views"
)

// State is the controller's current selection.
type State struct {
	View string `json:"view"`
	Role string `json:"role"`
}

// Options configure a Controller. Zero values take defaults.
type Options struct {
	Builder  *views.Builder
	Host     views.Host
	Pipeline Pipeline
	MinScale float64
	MaxScale float64
	Logger   *log.Logger
	Metrics  *telemetry.Metrics
}

// Controller owns the scenes of the interactive mounts: the static
// architecture diagram, the switchable architecture visualization and the
// role sunburst. Rebuilds run one at a time.
type Controller struct {
	mu sync.Mutex

	builder  *views.Builder
	host     views.Host
	pipeline Pipeline
	logger   *log.Logger
	metrics  *telemetry.Metrics

	state   State
	zoom    *Zoom
	scenes  map[string]*render.Scene
	current *views.Diagram
	sim     *layout.Simulation
}

// New returns a controller with empty scenes. Call Init to draw them.
func New(opts Options) *Controller {
	if opts.Builder == nil {
		opts.Builder = views.NewBuilder(960, 640)
	}
	if opts.Host == nil {
		opts.Host = views.AllMounts()
	}
	if opts.Pipeline.Driver == nil {
		opts.Pipeline = DefaultPipeline()
	}
	if opts.MinScale <= 0 {
		opts.MinScale = DefaultMinScale
	}
	if opts.MaxScale <= 0 {
		opts.MaxScale = DefaultMaxScale
	}
	if opts.Logger == nil {
		opts.Logger = telemetry.Discard()
	}

	w, h := opts.Builder.Width, opts.Builder.Height
	return &Controller{
		builder:  opts.Builder,
		host:     opts.Host,
		pipeline: opts.Pipeline,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		zoom:     NewZoom(w, h, opts.MinScale, opts.MaxScale),
		scenes: map[string]*render.Scene{
			views.MountArchitecture:    render.NewScene(w, h),
			views.MountSwitchable:      render.NewScene(w, h),
			views.MountRolePermissions: render.NewScene(w, h),
		},
	}
}

// Init draws the architecture diagram, the overview and the first role.
func (c *Controller) Init(ctx context.Context) {
	c.mu.Lock()
	if c.host.HasMount(views.MountArchitecture) {
		c.draw(ctx, c.builder.Build(views.Architecture))
	}
	c.mu.Unlock()

	c.SetView(ctx, views.Overview)
	c.SetRole(views.RoleIDs()[0])
}

// State returns the current selection.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetView tears down the switchable visualization and rebuilds it for
// name. Unknown names show the overview. Nothing happens when the page has
// no mount for it.
func (c *Controller) SetView(ctx context.Context, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.host.HasMount(views.MountSwitchable) {
		c.logger.Debug("mount missing, view skipped", "view", name, "mount", views.MountSwitchable)
		return
	}
	d := c.builder.Switchable(name)
	c.state.View = d.Name
	c.current = d
	c.sim = c.draw(ctx, d).Simulation
}

// SetRole rebuilds the role sunburst. Unknown roles show the first role.
func (c *Controller) SetRole(role string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.host.HasMount(views.MountRolePermissions) {
		c.logger.Debug("mount missing, role skipped", "role", role, "mount", views.MountRolePermissions)
		return
	}
	start := time.Now()
	rd := c.builder.RolePermissions(role)
	res := c.pipeline.DrawRole(rd, c.scenes[views.MountRolePermissions])
	c.state.Role = rd.Role.ID
	c.metrics.RecordRender("role:"+rd.Role.ID, time.Since(start), 0)
	c.logger.Debug("role rebuilt", "role", rd.Role.ID, "arcs", res.Nodes)
}

// draw runs d through the pipeline into its mount's scene and reapplies
// the viewport to zoomable scenes. Callers hold c.mu.
func (c *Controller) draw(ctx context.Context, d *views.Diagram) Outcome {
	start := time.Now()
	scene := c.scenes[d.Mount]
	out := c.pipeline.Draw(ctx, d, scene)
	if scene.Zoomable {
		scene.Transform = c.zoom.Current()
	}

	c.metrics.RecordRender(d.Name, time.Since(start), out.Result.Skipped)
	if out.Simulation != nil {
		c.metrics.RecordSimulation(out.Run.Ticks)
	}
	c.logger.Debug("view rebuilt", "view", d.Name, "nodes", out.Result.Nodes,
		"edges", out.Result.Edges, "skipped", out.Result.Skipped, "ticks", out.Run.Ticks)
	if out.Result.Skipped > 0 {
		c.logger.Warn("dangling edges skipped", "view", d.Name, "skipped", out.Result.Skipped)
	}
	return out
}

// ZoomIn scales the zoomable scenes up one step.
func (c *Controller) ZoomIn() Transition { return c.applyZoom(c.zoom.In) }

// ZoomOut scales the zoomable scenes down one step.
func (c *Controller) ZoomOut() Transition { return c.applyZoom(c.zoom.Out) }

// ResetView restores the identity viewport.
func (c *Controller) ResetView() Transition { return c.applyZoom(c.zoom.Reset) }

func (c *Controller) applyZoom(step func() Transition) Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := step()
	for _, s := range c.scenes {
		if s.Zoomable {
			s.Transform = t.To
		}
	}
	return t
}

// Drag pins node id of the switchable visualization at (x, y) for the rest
// of the view's lifetime. It reports false when the node is not shown.
func (c *Controller) Drag(id string, x, y float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sim == nil || c.current == nil || !c.sim.Pin(id, x, y) {
		return false
	}
	c.sim.Apply(c.current.Graph)
	render.Reposition(c.scenes[views.MountSwitchable], c.current.Graph, c.current.Render.Style)
	return true
}

// Scene returns a snapshot of the switchable visualization.
func (c *Controller) Scene() *render.Scene { return c.MountScene(views.MountSwitchable) }

// RoleScene returns a snapshot of the role sunburst.
func (c *Controller) RoleScene() *render.Scene { return c.MountScene(views.MountRolePermissions) }

// MountScene returns a snapshot of the scene drawn into mount, or nil for
// mounts the controller does not own.
func (c *Controller) MountScene(mount string) *render.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.scenes[mount]
	if !ok {
		return nil
	}
	return s.Clone()
}

// Graph returns a copy of the switchable visualization's laid-out graph.
func (c *Controller) Graph() *graph.Graph {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	return c.current.Graph.Clone()
}

// Update is what a handled signal changed.
type Update struct {
	Signal     Signal      `json:"signal"`
	State      State       `json:"state"`
	Transition *Transition `json:"transition,omitempty"`
	// Mounts lists the scenes that were redrawn or re-transformed.
	Mounts []string `json:"mounts"`
}

// Apply handles one signal.
func (c *Controller) Apply(ctx context.Context, sig Signal) (Update, error) {
	if !sig.Type.valid() {
		return Update{}, ErrUnknownSignal
	}
	c.metrics.RecordSignal(string(sig.Type))
	up := Update{Signal: sig}

	var t Transition
	switch sig.Type {
	case SignalZoomIn:
		t = c.ZoomIn()
	case SignalZoomOut:
		t = c.ZoomOut()
	case SignalResetView:
		t = c.ResetView()
	case SignalChangeView:
		c.SetView(ctx, sig.View)
		up.Mounts = []string{views.MountSwitchable}
	case SignalChangeRole:
		c.SetRole(sig.Role)
		up.Mounts = []string{views.MountRolePermissions}
	}
	if up.Mounts == nil {
		up.Transition = &t
		up.Mounts = c.zoomableMounts()
	}
	up.State = c.State()
	return up, nil
}

func (c *Controller) zoomableMounts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, m := range []string{views.MountArchitecture, views.MountSwitchable, views.MountRolePermissions} {
		if c.scenes[m].Zoomable {
			out = append(out, m)
		}
	}
	return out
}

// Attach subscribes the controller to every signal on bus and returns a
// function that detaches it.
func (c *Controller) Attach(bus *Bus) (detach func()) {
	var unsubs []func()
	for _, t := range SignalTypes() {
		unsubs = append(unsubs, bus.Subscribe(t, func(s Signal) {
			if _, err := c.Apply(context.Background(), s); err != nil {
				c.logger.Error("signal failed", "type", s.Type, "err", err)
			}
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
