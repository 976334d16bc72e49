// Package render draws laid-out graphs into a retained scene and encodes
// scenes as SVG.
package render

import (
	"github.com/ziadkadry99/rolemap/internal/graph"
)

// ShapeKind is the primitive used to draw a node.
type ShapeKind string

const (
	ShapeEllipse ShapeKind = "ellipse"
	ShapeCircle  ShapeKind = "circle"
	ShapeRect    ShapeKind = "rect"
)

// Marker is an arrowhead definition referenced by edges.
type Marker struct {
	ID    string
	RefX  float64
	Color string
}

// EdgeShape is one drawn edge.
type EdgeShape struct {
	Source, Target string
	Path           string
	Stroke         string
	StrokeWidth    float64
	Dashed         bool
	MarkerID       string
}

// NodeShape is one drawn node, centred on (X, Y).
type NodeShape struct {
	ID       string
	Type     graph.NodeType
	Kind     ShapeKind
	X, Y     float64
	Width    float64
	Height   float64
	Radius   float64
	RX       float64
	Fill     string
	Opacity  float64
	Lines    []string
	LineDY   []float64
	FontSize float64
	// Caption is a second, smaller line under the label.
	Caption string
	// Tooltip carries the untruncated label.
	Tooltip string
}

// TextShape is free-standing text. Lines after the first are emitted as
// tspans LineHeight ems apart.
type TextShape struct {
	X, Y       float64
	Lines      []string
	LineHeight float64
	Size       float64
	Bold       bool
	Fill       string
	Anchor     string
	Transform  string
	DY         string
}

// LineShape is a plain line segment.
type LineShape struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	Width          float64
}

// DotShape is a filled circle without label.
type DotShape struct {
	X, Y, R float64
	Fill    string
}

// PolygonShape is a closed outline through the points (Xs[i], Ys[i]).
type PolygonShape struct {
	Name        string
	Xs, Ys      []float64
	Fill        string
	FillOpacity float64
	Stroke      string
	StrokeWidth float64
}

// ArcShape is one sunburst cell.
type ArcShape struct {
	Name    string
	Depth   int
	Path    string
	Fill    string
	Tooltip string
}

// LegendEntry maps a node type to its swatch colour and display label.
type LegendEntry struct {
	Type  graph.NodeType `json:"type"`
	Label string         `json:"label"`
	Color string         `json:"color"`
}

// Scene is the retained drawing surface for one mount. Content (edges,
// nodes, arcs) sits under the viewport transform; overlay text, lines and
// dots do not.
type Scene struct {
	Width, Height float64

	Markers []Marker
	Edges   []EdgeShape
	Nodes   []NodeShape
	Arcs    []ArcShape
	// ArcOrigin is where the sunburst centre is placed.
	ArcOriginX, ArcOriginY float64
	ArcLabels              []TextShape

	Overlay  []TextShape
	Lines    []LineShape
	Dots     []DotShape
	Polygons []PolygonShape
	Legend   []LegendEntry

	Transform Transform
	// Zoomable marks scenes that react to zoom signals.
	Zoomable bool
}

// NewScene returns an empty scene of the given size.
func NewScene(width, height float64) *Scene {
	return &Scene{Width: width, Height: height, Transform: Identity()}
}

// Clear removes every drawn element and the legend. Size and transform are
// kept; a view switch clears the scene but keeps the user's zoom.
func (s *Scene) Clear() {
	s.Markers = nil
	s.Edges = nil
	s.Nodes = nil
	s.Arcs = nil
	s.ArcLabels = nil
	s.Overlay = nil
	s.Lines = nil
	s.Dots = nil
	s.Polygons = nil
	s.Legend = nil
}

// Empty reports whether nothing is drawn.
func (s *Scene) Empty() bool {
	return len(s.Edges) == 0 && len(s.Nodes) == 0 && len(s.Arcs) == 0 &&
		len(s.Overlay) == 0 && len(s.Lines) == 0 && len(s.Dots) == 0 && len(s.Polygons) == 0
}

// Node finds a drawn node by id.
func (s *Scene) Node(id string) (NodeShape, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeShape{}, false
}

// Result summarises one draw.
type Result struct {
	Nodes   int `json:"nodes"`
	Edges   int `json:"edges"`
	Skipped int `json:"skipped"`
}

// Clone returns a snapshot of s. Shapes are copied; their label slices are
// shared since drawing never edits them in place.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Markers = append([]Marker(nil), s.Markers...)
	c.Edges = append([]EdgeShape(nil), s.Edges...)
	c.Nodes = append([]NodeShape(nil), s.Nodes...)
	c.Arcs = append([]ArcShape(nil), s.Arcs...)
	c.ArcLabels = append([]TextShape(nil), s.ArcLabels...)
	c.Overlay = append([]TextShape(nil), s.Overlay...)
	c.Lines = append([]LineShape(nil), s.Lines...)
	c.Dots = append([]DotShape(nil), s.Dots...)
	c.Polygons = append([]PolygonShape(nil), s.Polygons...)
	c.Legend = append([]LegendEntry(nil), s.Legend...)
	return &c
}
