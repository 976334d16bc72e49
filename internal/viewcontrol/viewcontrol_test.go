package viewcontrol

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/telemetry"
	"github.com/ziadkadry99/rolemap/internal/views"
)

// frozenClock never advances, so runs end on iterations or settling only.
func frozenClock() time.Time { return time.Unix(0, 0) }

func newTestController(t *testing.T, host views.Host) *Controller {
	t.Helper()
	driver := layout.NewDriver(layout.DefaultBudget())
	driver.Now = frozenClock
	return New(Options{
		Builder:  &views.Builder{Width: 800, Height: 600, MaxSampleUsers: views.DefaultMaxSampleUsers},
		Host:     host,
		Pipeline: Pipeline{Driver: driver, Params: layout.DefaultParams()},
		Metrics:  telemetry.NewMetrics(),
	})
}

func TestParseSignal(t *testing.T) {
	sig, err := ParseSignal("change-visualization-view", json.RawMessage(`{"view":"detailed"}`))
	require.NoError(t, err)
	assert.Equal(t, Signal{Type: SignalChangeView, View: "detailed"}, sig)

	sig, err = ParseSignal("change-role-visualization", json.RawMessage(`{"role":"executive","view":"ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, Signal{Type: SignalChangeRole, Role: "executive"}, sig)

	sig, err = ParseSignal("diagram-zoom-in", nil)
	require.NoError(t, err)
	assert.Equal(t, SignalZoomIn, sig.Type)

	_, err = ParseSignal("diagram-spin", nil)
	assert.True(t, errors.Is(err, ErrUnknownSignal))

	_, err = ParseSignal("change-role-visualization", json.RawMessage(`{"role":`))
	assert.Error(t, err)
}

func TestBusDeliversByType(t *testing.T) {
	bus := NewBus()
	var got []Signal
	unsubscribe := bus.Subscribe(SignalZoomIn, func(s Signal) { got = append(got, s) })

	require.NoError(t, bus.Publish(Signal{Type: SignalZoomIn}))
	require.NoError(t, bus.Publish(Signal{Type: SignalZoomOut}))
	assert.Len(t, got, 1)

	unsubscribe()
	require.NoError(t, bus.Publish(Signal{Type: SignalZoomIn}))
	assert.Len(t, got, 1)

	err := bus.Publish(Signal{Type: "diagram-spin"})
	assert.True(t, errors.Is(err, ErrUnknownSignal))
}

func TestZoomClampsAndResets(t *testing.T) {
	z := NewZoom(800, 600, DefaultMinScale, DefaultMaxScale)

	tr := z.In()
	assert.Equal(t, render.Identity(), tr.From)
	assert.InDelta(t, 1.2, tr.To.K, 1e-9)
	assert.InDelta(t, 400-400*1.2, tr.To.X, 1e-9)
	assert.Equal(t, TransitionDuration, tr.Duration)

	for i := 0; i < 20; i++ {
		z.In()
	}
	assert.Equal(t, DefaultMaxScale, z.Current().K)

	for i := 0; i < 40; i++ {
		z.Out()
	}
	assert.Equal(t, DefaultMinScale, z.Current().K)

	tr = z.Reset()
	assert.Equal(t, render.Identity(), tr.To)
	assert.Equal(t, render.Identity(), z.Current())
}

func TestZoomBoundsProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("scale stays within [0.5, 3] for any zoom sequence", prop.ForAll(
		func(steps []int) bool {
			z := NewZoom(800, 600, DefaultMinScale, DefaultMaxScale)
			for _, s := range steps {
				switch s {
				case 0:
					z.In()
				case 1:
					z.Out()
				default:
					z.Reset()
				}
				k := z.Current().K
				if k < DefaultMinScale-1e-12 || k > DefaultMaxScale+1e-12 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}

func TestTransitionAt(t *testing.T) {
	tr := Transition{From: render.Identity(), To: render.Transform{X: -80, Y: -60, K: 1.2}, Duration: TransitionDuration}
	assert.Equal(t, tr.From, tr.At(0))
	assert.Equal(t, tr.To, tr.At(TransitionDuration))
	mid := tr.At(TransitionDuration / 2)
	assert.InDelta(t, 1.1, mid.K, 1e-9)
}

func TestSetViewIsIdempotent(t *testing.T) {
	c := newTestController(t, views.AllMounts())
	ctx := context.Background()

	c.SetView(ctx, views.Detailed)
	first := c.Scene()
	c.SetView(ctx, views.Detailed)
	second := c.Scene()

	assert.Equal(t, State{View: views.Detailed}, c.State())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("rebuild changed the scene (-first +second):\n%s", diff)
	}
	assert.Len(t, second.Nodes, 16)
	assert.Len(t, second.Legend, 6)
}

func TestSetViewReplacesPreviousContent(t *testing.T) {
	c := newTestController(t, views.AllMounts())
	ctx := context.Background()

	c.SetView(ctx, views.Overview)
	require.Len(t, c.Scene().Nodes, 23)

	c.SetView(ctx, views.Licensing)
	s := c.Scene()
	assert.Len(t, s.Nodes, 16)
	_, ok := s.Node("entraID")
	assert.False(t, ok)
	assert.Equal(t, "License Type", s.Legend[0].Label)

	c.SetView(ctx, "bogus")
	assert.Equal(t, views.Overview, c.State().View)
}

func TestForceLayoutPositionsAreFinite(t *testing.T) {
	c := newTestController(t, views.AllMounts())
	c.SetView(context.Background(), views.Overview)
	g := c.Graph()
	require.NotNil(t, g)
	for _, n := range g.Nodes {
		assert.False(t, math.IsNaN(n.X) || math.IsNaN(n.Y), n.ID)
	}
}

func TestMissingMountSkipsBuild(t *testing.T) {
	c := newTestController(t, views.NewMountSet(views.MountArchitecture))
	c.Init(context.Background())

	assert.Equal(t, State{}, c.State())
	assert.True(t, c.Scene().Empty())
	assert.True(t, c.RoleScene().Empty())
	assert.False(t, c.MountScene(views.MountArchitecture).Empty())
	assert.Nil(t, c.MountScene("nowhere"))
	assert.False(t, c.Drag("entraID", 1, 1))
}

func TestSetRole(t *testing.T) {
	c := newTestController(t, views.AllMounts())
	c.SetRole("compliance-officer")
	assert.Equal(t, "compliance-officer", c.State().Role)
	assert.Len(t, c.RoleScene().Arcs, 4+15)

	c.SetRole("astronaut")
	assert.Equal(t, "financial-analyst", c.State().Role)
	assert.Len(t, c.RoleScene().Arcs, 4+11)
}

func TestZoomAppliesToZoomableScenes(t *testing.T) {
	c := newTestController(t, views.AllMounts())
	ctx := context.Background()
	c.Init(ctx)

	tr := c.ZoomIn()
	assert.Equal(t, tr.To, c.Scene().Transform)
	assert.Equal(t, tr.To, c.MountScene(views.MountArchitecture).Transform)
	assert.True(t, c.RoleScene().Transform.IsIdentity())

	// a view switch keeps the viewport
	c.SetView(ctx, views.Detailed)
	assert.Equal(t, tr.To, c.Scene().Transform)

	c.ResetView()
	assert.True(t, c.Scene().Transform.IsIdentity())
}

func TestDragPinsNode(t *testing.T) {
	c := newTestController(t, views.AllMounts())
	c.SetView(context.Background(), views.Overview)

	require.True(t, c.Drag("biz1", 42, 84))
	n, ok := c.Scene().Node("biz1")
	require.True(t, ok)
	assert.Equal(t, 42.0, n.X)
	assert.Equal(t, 84.0, n.Y)

	gn, _ := c.Graph().Node("biz1")
	assert.Equal(t, 42.0, gn.X)
	assert.False(t, c.Drag("ghost", 0, 0))
}

func TestAttachHandlesBusSignals(t *testing.T) {
	c := newTestController(t, views.AllMounts())
	bus := NewBus()
	detach := c.Attach(bus)

	require.NoError(t, bus.Publish(Signal{Type: SignalChangeView, View: views.Licensing}))
	require.NoError(t, bus.Publish(Signal{Type: SignalChangeRole, Role: "executive"}))
	assert.Equal(t, State{View: views.Licensing, Role: "executive"}, c.State())

	require.NoError(t, bus.Publish(Signal{Type: SignalZoomIn}))
	assert.InDelta(t, 1.2, c.Scene().Transform.K, 1e-9)

	detach()
	require.NoError(t, bus.Publish(Signal{Type: SignalChangeView, View: views.Detailed}))
	assert.Equal(t, views.Licensing, c.State().View)
}

func TestApply(t *testing.T) {
	c := newTestController(t, views.AllMounts())
	ctx := context.Background()
	c.Init(ctx)

	up, err := c.Apply(ctx, Signal{Type: SignalZoomOut})
	require.NoError(t, err)
	require.NotNil(t, up.Transition)
	assert.InDelta(t, 0.8, up.Transition.To.K, 1e-9)
	assert.ElementsMatch(t, []string{views.MountArchitecture, views.MountSwitchable}, up.Mounts)

	up, err = c.Apply(ctx, Signal{Type: SignalChangeRole, Role: "it-support"})
	require.NoError(t, err)
	assert.Nil(t, up.Transition)
	assert.Equal(t, []string{views.MountRolePermissions}, up.Mounts)
	assert.Equal(t, "it-support", up.State.Role)

	_, err = c.Apply(ctx, Signal{Type: "diagram-spin"})
	assert.True(t, errors.Is(err, ErrUnknownSignal))
}
