package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/ziadkadry99/rolemap/internal/graph"
)

// Style selects the drawing conventions of a diagram.
type Style string

const (
	// StyleStandard draws the switchable architecture views: large shapes,
	// arc edges, full labels.
	StyleStandard Style = "standard"
	// StyleCompact draws the analysis views: small shapes, straight edges,
	// truncated labels.
	StyleCompact Style = "compact"
	// StyleBlock draws wide captioned blocks joined by dashed lines.
	StyleBlock Style = "block"
	// StyleWorkflow draws circular steps joined by curved flows.
	StyleWorkflow Style = "workflow"
)

// DefaultLabelBudget is the longest compact label drawn in full.
const DefaultLabelBudget = 15

const (
	edgeColor      = "#666"
	lightEdgeColor = "#999"
	arrowID        = "arrowhead"
)

// Truncate shortens labels longer than budget runes to budget-2 runes
// followed by "...". A non-positive budget disables truncation.
func Truncate(label string, budget int) string {
	r := []rune(label)
	if budget <= 0 || len(r) <= budget {
		return label
	}
	keep := max(budget-2, 0)
	return string(r[:keep]) + "..."
}

// MeasureText approximates the rendered width of text in a sans-serif font.
func MeasureText(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * 0.6
}

// Wrap breaks text into lines no wider than width, never splitting words.
func Wrap(text string, size, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if MeasureText(candidate, size) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// shapeKind is type-keyed only: identity platforms, business functions and
// licence types are ellipses, users are circles, everything else is a
// rounded rectangle.
func shapeKind(t graph.NodeType) ShapeKind {
	switch t {
	case graph.TypeCloud, graph.TypeBusiness, graph.TypeLicenseType:
		return ShapeEllipse
	case graph.TypeUser:
		return ShapeCircle
	default:
		return ShapeRect
	}
}

// nodeShape applies the style's shape policy to n.
func nodeShape(style Style, n *graph.Node, fill string, labelBudget int) NodeShape {
	s := NodeShape{
		ID:      n.ID,
		Type:    n.Type,
		X:       n.X,
		Y:       n.Y,
		Fill:    fill,
		Opacity: 1,
		Tooltip: n.Label,
		Lines:   []string{n.Label},
		LineDY:  []float64{5},
	}

	switch style {
	case StyleBlock:
		s.Kind, s.Width, s.Height, s.RX = ShapeRect, 200, 50, 8
		s.FontSize = 12
		s.Caption = n.Description
	case StyleWorkflow:
		s.Kind, s.Radius, s.Opacity = ShapeCircle, 40, 0.9
		s.FontSize = 11
		s.Lines = strings.Split(n.Label, " ")
		s.LineDY = make([]float64, len(s.Lines))
		for i := range s.LineDY {
			if i == 0 {
				s.LineDY[i] = -5
			} else {
				s.LineDY[i] = 15
			}
		}
	case StyleCompact:
		s.Kind = shapeKind(n.Type)
		s.FontSize = 10
		s.Lines = []string{Truncate(n.Label, labelBudget)}
		switch s.Kind {
		case ShapeEllipse:
			s.Width, s.Height = 120, 50
		case ShapeCircle:
			s.Radius = 15
			s.FontSize = 8
		default:
			s.Height, s.RX = 30, 5
			switch n.Type {
			case graph.TypeDepartment:
				s.Width = 140
			case graph.TypeRole:
				s.Width = 100
			default:
				s.Width = 90
			}
		}
	default:
		s.Kind = shapeKind(n.Type)
		s.FontSize = 12
		switch s.Kind {
		case ShapeEllipse:
			s.Width, s.Height = 120, 40
		case ShapeCircle:
			s.Radius = 25
		default:
			s.Width, s.Height, s.RX = 120, 40, 6
		}
	}
	return s
}

// edgeStyle returns stroke, width and marker settings for a style.
func edgeStyle(style Style) (stroke string, width float64, marker *Marker) {
	switch style {
	case StyleBlock:
		return lightEdgeColor, 2, nil
	case StyleWorkflow:
		return edgeColor, 2, &Marker{ID: arrowID, RefX: 8, Color: edgeColor}
	case StyleCompact:
		return lightEdgeColor, 1, &Marker{ID: arrowID, RefX: 15, Color: edgeColor}
	default:
		return edgeColor, 1.5, &Marker{ID: arrowID, RefX: 15, Color: edgeColor}
	}
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
