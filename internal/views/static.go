package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/ziadkadry99/rolemap/internal/graph"
	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/render"
)

var architecturePalette = render.NewTypePalette(
	[]graph.NodeType{graph.TypeFunction, graph.TypeRole, graph.TypePermission, graph.TypeApplication, graph.TypeData},
	"#3A86FF", "#8338EC", "#FF006E", "#FB5607", "#FFBE0B",
)

func (b *Builder) architecture() *Diagram {
	cx := b.Width / 2
	nodes := []*graph.Node{
		{ID: "business_functions", Label: "Business Functions", Type: graph.TypeFunction, Description: "Top-level organizational units", X: cx, Y: 80},
		{ID: "roles", Label: "Roles", Type: graph.TypeRole, Description: "Standardized job functions", X: cx, Y: 160},
		{ID: "permission_sets", Label: "Permission Sets", Type: graph.TypePermission, Description: "Groups of specific permissions", X: cx, Y: 240},
		{ID: "applications", Label: "Applications", Type: graph.TypeApplication, Description: "Software applications access", X: cx - 120, Y: 320},
		{ID: "data_resources", Label: "Data Resources", Type: graph.TypeData, Description: "Database and file system access", X: cx + 120, Y: 320},
	}
	edges := []graph.Edge{
		{Source: "business_functions", Target: "roles"},
		{Source: "roles", Target: "permission_sets"},
		{Source: "permission_sets", Target: "applications"},
		{Source: "permission_sets", Target: "data_resources"},
	}
	return &Diagram{
		Name:   Architecture,
		Kind:   KindStatic,
		Mount:  MountArchitecture,
		Graph:  graph.MustNew(nodes, edges),
		Layout: LayoutFixed,
		Render: render.Options{Style: render.StyleBlock, Palette: architecturePalette, Zoomable: true},
	}
}

func (b *Builder) licenseWorkflow() *Diagram {
	at := func(id, label string, fx, fy float64) *graph.Node {
		return &graph.Node{
			ID: id, Label: label, Type: graph.TypeStep,
			X: layout.Fraction(b.Width, fx), Y: layout.Fraction(b.Height, fy),
		}
	}
	nodes := []*graph.Node{
		at("role_assignment", "Role Assignment", 0.2, 0.2),
		at("license_requirement", "License Requirement Detection", 0.5, 0.2),
		at("license_check", "License Availability Check", 0.8, 0.2),
		at("license_assignment", "License Assignment", 0.8, 0.5),
		at("app_provisioning", "Application Provisioning", 0.5, 0.5),
		at("user_notification", "User Notification", 0.2, 0.5),
		at("license_monitoring", "Usage Monitoring", 0.5, 0.8),
	}
	var edges []graph.Edge
	for i := 0; i+1 < len(nodes); i++ {
		edges = append(edges, graph.Edge{Source: nodes[i].ID, Target: nodes[i+1].ID})
	}
	edges = append(edges, graph.Edge{Source: "license_monitoring", Target: "license_check", Dashed: true})

	return &Diagram{
		Name:   LicenseWorkflow,
		Kind:   KindStatic,
		Mount:  MountLicenseWorkflow,
		Graph:  graph.MustNew(nodes, edges),
		Layout: LayoutFixed,
		Render: render.Options{Style: render.StyleWorkflow},
	}
}

// OnboardingStages compares the manual onboarding process with the
// role-based one, step by step.
var OnboardingStages = []render.Stage{
	{Name: "Request", Old: "Manual form submission", New: "Self-service portal request", OldTime: "1 day", NewTime: "10 min", X: 0.14},
	{Name: "Approval", Old: "Multiple approvers chain", New: "Role-based auto-approval", OldTime: "2-3 days", NewTime: "0-4 hours", X: 0.29},
	{Name: "Permission Setup", Old: "Manual AD group assignment", New: "Automated role assignment", OldTime: "1-2 days", NewTime: "5 min", X: 0.43},
	{Name: "License Assignment", Old: "Separate license request", New: "Included in role package", OldTime: "1 day", NewTime: "Immediate", X: 0.57},
	{Name: "Verification", Old: "Manual testing by IT", New: "Automated verification", OldTime: "0.5 day", NewTime: "2 min", X: 0.71},
	{Name: "Notification", Old: "Email to requester", New: "Automated notifications & dashboard", OldTime: "0.5 day", NewTime: "Immediate", X: 0.86},
}

// onboarding also exposes the stages as a chain graph so the view can be
// listed and exported like the others.
func (b *Builder) onboarding() *Diagram {
	stages := append([]render.Stage(nil), OnboardingStages...)
	nodes := make([]*graph.Node, len(stages))
	var edges []graph.Edge
	for i, st := range stages {
		nodes[i] = &graph.Node{
			ID:          stageID(i),
			Label:       st.Name,
			Type:        graph.TypeStep,
			Description: st.New,
			X:           layout.Fraction(b.Width, st.X),
			Y:           b.Height / 2,
		}
		if i > 0 {
			edges = append(edges, graph.Edge{Source: stageID(i - 1), Target: stageID(i)})
		}
	}
	return &Diagram{
		Name:   Onboarding,
		Kind:   KindStatic,
		Mount:  MountOnboarding,
		Graph:  graph.MustNew(nodes, edges),
		Layout: LayoutTimeline,
		Render: render.Options{Style: render.StyleWorkflow},
		Stages: stages,
	}
}

// LicenseMetricsChart scores licence management before and after
// role-based optimisation, out of 100 per axis.
var LicenseMetricsChart = render.Radar{
	Title: "License Management Metrics",
	Axes:  []string{"License Utilization", "Cost Optimization", "Provisioning Time", "License Compliance"},
	Max:   100,
	Series: []render.RadarSeries{
		{Name: "Before Optimization", Values: []float64{60, 40, 30, 70}, Color: "#dc3545"},
		{Name: "After Optimization", Values: []float64{85, 75, 80, 95}, Color: "#198754"},
	},
}

// licenseMetrics lists each axis as a node carrying its before and after
// scores, so the chart can be listed and exported like the graph views.
func (b *Builder) licenseMetrics() *Diagram {
	radar := LicenseMetricsChart
	radar.Axes = append([]string(nil), radar.Axes...)
	radar.Series = lo.Map(radar.Series, func(s render.RadarSeries, _ int) render.RadarSeries {
		s.Values = append([]float64(nil), s.Values...)
		return s
	})

	nodes := lo.Map(radar.Axes, func(axis string, i int) *graph.Node {
		scores := lo.Map(radar.Series, func(s render.RadarSeries, _ int) string {
			v := 0.0
			if i < len(s.Values) {
				v = s.Values[i]
			}
			return fmt.Sprintf("%s %g", s.Name, v)
		})
		x, y := layout.Radial(b.Width/2, b.Height/2, math.Min(b.Width, b.Height)/3, i, len(radar.Axes))
		return &graph.Node{
			ID:          metricID(i),
			Label:       axis,
			Type:        graph.TypeMetric,
			Description: strings.Join(scores, ", "),
			X:           x,
			Y:           y,
		}
	})
	return &Diagram{
		Name:   LicenseMetrics,
		Kind:   KindStatic,
		Mount:  MountLicenseMetrics,
		Graph:  graph.MustNew(nodes, nil),
		Layout: LayoutRadar,
		Render: render.Options{Title: radar.Title},
		Radar:  &radar,
	}
}
