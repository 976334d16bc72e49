package render

import (
	"github.com/samber/lo"

	"github.com/ziadkadry99/rolemap/internal/graph"
)

// FallbackColor is used for keys outside a palette's domain.
const FallbackColor = "#999999"

// Palette is an ordinal colour scale: the i-th domain key takes the i-th
// colour, cycling when the domain is longer than the range.
type Palette struct {
	domain []string
	colors []string
}

// NewPalette pairs domain keys with colours.
func NewPalette(domain []string, colors ...string) *Palette {
	return &Palette{domain: append([]string(nil), domain...), colors: colors}
}

// NewTypePalette is NewPalette keyed by node type.
func NewTypePalette(domain []graph.NodeType, colors ...string) *Palette {
	return NewPalette(lo.Map(domain, func(t graph.NodeType, _ int) string { return string(t) }), colors...)
}

// Color returns the colour for key.
func (p *Palette) Color(key string) string {
	if p == nil || len(p.colors) == 0 {
		return FallbackColor
	}
	i := lo.IndexOf(p.domain, key)
	if i < 0 {
		return FallbackColor
	}
	return p.colors[i%len(p.colors)]
}

// TypeColor returns the colour for a node type.
func (p *Palette) TypeColor(t graph.NodeType) string { return p.Color(string(t)) }

// Domain returns the palette keys in order.
func (p *Palette) Domain() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.domain...)
}

var typeLabels = map[graph.NodeType]string{
	graph.TypeBusiness:       "Business Function",
	graph.TypeRole:           "Role",
	graph.TypePermission:     "Permission Set",
	graph.TypeApplication:    "Application",
	graph.TypeData:           "Data Resource",
	graph.TypeLicense:        "License",
	graph.TypeAppPermission:  "Application Permission",
	graph.TypeDBPermission:   "Database Permission",
	graph.TypeFilePermission: "File System Permission",
	graph.TypeLicenseType:    "License Type",
	graph.TypeLicenseGroup:   "License Group",
	graph.TypeUser:           "User",
	graph.TypeDepartment:     "Department",
	graph.TypeGroup:          "Directory Group",
	graph.TypeCloud:          "Identity Platform",
	graph.TypeMetric:         "Metric",
}

// TypeLabel is the human label for a node type, falling back to the raw
// type name.
func TypeLabel(t graph.NodeType) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Legend lists one entry per distinct node type in types. Types in the
// palette domain come first, in domain order; any others follow in the
// order given and take the fallback colour.
func Legend(p *Palette, types []graph.NodeType) []LegendEntry {
	present := lo.Uniq(types)
	domain := lo.Map(p.Domain(), func(key string, _ int) graph.NodeType { return graph.NodeType(key) })
	ordered := lo.Filter(domain, func(t graph.NodeType, _ int) bool { return lo.Contains(present, t) })
	ordered = append(ordered, lo.Without(present, domain...)...)
	return lo.Map(ordered, func(t graph.NodeType, _ int) LegendEntry {
		return LegendEntry{Type: t, Label: TypeLabel(t), Color: p.TypeColor(t)}
	})
}
