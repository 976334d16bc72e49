// Package views builds the graph behind every explainer diagram: the fixed
// architecture and workflow views, the switchable architecture views, the
// analysis views derived from user input and the per-role sunburst.
package views

import (
	"math/rand"
	"time"

	"github.com/samber/lo"

	"github.com/ziadkadry99/rolemap/internal/graph"
	"github.com/ziadkadry99/rolemap/internal/render"
)

// View names accepted by the builder and the view controller.
const (
	Architecture      = "architecture"
	LicenseWorkflow   = "license-workflow"
	Onboarding        = "onboarding"
	LicenseMetrics    = "license-metrics"
	Overview          = "overview"
	Detailed          = "detailed"
	Licensing         = "licensing"
	CurrentStructure  = "current-structure"
	ProposedStructure = "proposed-structure"
)

// Mount ids are the page containers diagrams are drawn into.
const (
	MountArchitecture      = "architecture-diagram"
	MountLicenseWorkflow   = "license-workflow-diagram"
	MountOnboarding        = "onboarding-visualization"
	MountLicenseMetrics    = "license-metrics-chart"
	MountSwitchable        = "architecture-visualization"
	MountCurrentStructure  = "current-structure-visualization"
	MountProposedStructure = "proposed-structure-visualization"
	MountRolePermissions   = "role-permission-visualization"
)

// Kind groups views by where their data comes from.
type Kind string

const (
	KindStatic     Kind = "static"
	KindSwitchable Kind = "switchable"
	KindAnalysis   Kind = "analysis"
	KindRole       Kind = "role"
)

// LayoutMode selects how the controller positions a diagram.
type LayoutMode string

const (
	// LayoutFixed keeps the coordinates assigned by the builder.
	LayoutFixed LayoutMode = "fixed"
	// LayoutForce relaxes builder coordinates with a force simulation.
	LayoutForce LayoutMode = "force"
	// LayoutTimeline draws Stages instead of the graph.
	LayoutTimeline LayoutMode = "timeline"
	// LayoutRadar draws Radar instead of the graph.
	LayoutRadar LayoutMode = "radar"
)

// Diagram is a built view ready for layout and drawing.
type Diagram struct {
	Name   string
	Kind   Kind
	Mount  string
	Graph  *graph.Graph
	Layout LayoutMode
	Render render.Options
	// Stages is set for timeline diagrams only.
	Stages []render.Stage
	// Radar is set for radar diagrams only.
	Radar *render.Radar
}

// Graphless reports whether d is drawn from Stages or Radar rather than
// its graph.
func (d *Diagram) Graphless() bool {
	return d.Layout == LayoutTimeline || d.Layout == LayoutRadar
}

// Info describes a view in listings.
type Info struct {
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Mount string `json:"mount"`
}

var catalog = []Info{
	{Architecture, KindStatic, MountArchitecture},
	{LicenseWorkflow, KindStatic, MountLicenseWorkflow},
	{Onboarding, KindStatic, MountOnboarding},
	{LicenseMetrics, KindStatic, MountLicenseMetrics},
	{Overview, KindSwitchable, MountSwitchable},
	{Detailed, KindSwitchable, MountSwitchable},
	{Licensing, KindSwitchable, MountSwitchable},
	{CurrentStructure, KindAnalysis, MountCurrentStructure},
	{ProposedStructure, KindAnalysis, MountProposedStructure},
}

// Catalog lists every view in page order.
func Catalog() []Info { return append([]Info(nil), catalog...) }

// Lookup returns the catalog entry for name.
func Lookup(name string) (Info, bool) {
	return lo.Find(catalog, func(i Info) bool { return i.Name == name })
}

// Fixed lists the views that need no user input.
func Fixed() []string {
	return lo.FilterMap(catalog, func(i Info, _ int) (string, bool) {
		return i.Name, i.Kind == KindStatic || i.Kind == KindSwitchable
	})
}

// Host reports which mounts exist on the page being served. Views whose
// mount is absent are not built at all.
type Host interface {
	HasMount(id string) bool
}

// MountSet is a Host backed by a fixed list of mount ids.
type MountSet map[string]bool

// NewMountSet returns a host declaring ids.
func NewMountSet(ids ...string) MountSet {
	m := make(MountSet, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// AllMounts declares every known mount.
func AllMounts() MountSet {
	ids := lo.Uniq(lo.Map(catalog, func(i Info, _ int) string { return i.Mount }))
	return NewMountSet(append(ids, MountRolePermissions)...)
}

// HasMount implements Host.
func (m MountSet) HasMount(id string) bool { return m[id] }

// Sampler supplies the randomness used for synthetic users and links.
// *rand.Rand satisfies it.
type Sampler interface {
	Intn(n int) int
	Float64() float64
}

// NewRandomSampler returns a Sampler seeded from the clock.
func NewRandomSampler() Sampler {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// DefaultMaxSampleUsers caps the synthetic users in the current-structure view.
const DefaultMaxSampleUsers = 8

// Builder builds diagrams for a canvas of Width x Height.
type Builder struct {
	Width          float64
	Height         float64
	Sampler        Sampler
	MaxSampleUsers int
}

// NewBuilder returns a builder with a clock-seeded sampler.
func NewBuilder(width, height float64) *Builder {
	return &Builder{
		Width:          width,
		Height:         height,
		Sampler:        NewRandomSampler(),
		MaxSampleUsers: DefaultMaxSampleUsers,
	}
}

// Build returns the named fixed view. Names that are not static views are
// passed to Switchable, which falls back to the overview.
func (b *Builder) Build(name string) *Diagram {
	switch name {
	case Architecture:
		return b.architecture()
	case LicenseWorkflow:
		return b.licenseWorkflow()
	case Onboarding:
		return b.onboarding()
	case LicenseMetrics:
		return b.licenseMetrics()
	default:
		return b.Switchable(name)
	}
}
