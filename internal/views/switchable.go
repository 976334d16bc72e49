package views

import (
	"github.com/ziadkadry99/rolemap/internal/graph"
	"github.com/ziadkadry99/rolemap/internal/render"
)

var (
	overviewPalette = render.NewTypePalette(
		[]graph.NodeType{graph.TypeBusiness, graph.TypeRole, graph.TypePermission, graph.TypeApplication, graph.TypeData, graph.TypeLicense},
		"#3A86FF", "#8338EC", "#FF006E", "#FB5607", "#FFBE0B", "#06D6A0",
	)
	detailedPalette = render.NewTypePalette(
		[]graph.NodeType{graph.TypeBusiness, graph.TypeRole, graph.TypePermission, graph.TypeAppPermission, graph.TypeDBPermission, graph.TypeFilePermission},
		"#3A86FF", "#8338EC", "#FF006E", "#FB5607", "#FFBE0B", "#06D6A0",
	)
	licensingPalette = render.NewTypePalette(
		[]graph.NodeType{graph.TypeLicenseType, graph.TypeApplication, graph.TypeLicenseGroup, graph.TypeRole, graph.TypeUser},
		"#3A86FF", "#FB5607", "#FF006E", "#8338EC", "#06D6A0",
	)
)

// placer positions nodes by fraction of the canvas width and absolute y.
type placer struct{ width float64 }

func (p placer) node(id, label string, t graph.NodeType, fx, y float64) *graph.Node {
	return &graph.Node{ID: id, Label: label, Type: t, X: p.width * fx, Y: y}
}

func (p placer) level(id, label string, t graph.NodeType, level int, fx, y float64) *graph.Node {
	n := p.node(id, label, t, fx, y)
	n.Level = level
	return n
}

func link(source, target string) graph.Edge { return graph.Edge{Source: source, Target: target} }

func dashed(source, target string) graph.Edge {
	return graph.Edge{Source: source, Target: target, Dashed: true}
}

// Switchable builds one of the overview, detailed or licensing views. Any
// other name yields the overview.
func (b *Builder) Switchable(name string) *Diagram {
	var (
		g       *graph.Graph
		palette *render.Palette
	)
	switch name {
	case Detailed:
		g, palette = b.detailed(), detailedPalette
	case Licensing:
		g, palette = b.licensing(), licensingPalette
	default:
		name = Overview
		g, palette = b.overview(), overviewPalette
	}
	return &Diagram{
		Name:   name,
		Kind:   KindSwitchable,
		Mount:  MountSwitchable,
		Graph:  g,
		Layout: LayoutForce,
		Render: render.Options{Style: render.StyleStandard, Palette: palette, Legend: true, Zoomable: true},
	}
}

func (b *Builder) overview() *graph.Graph {
	p := placer{b.Width}
	nodes := []*graph.Node{
		p.level("entraID", "Microsoft Entra ID", graph.TypeBusiness, 0, 0.5, 50),
		p.level("adminUnits", "Administrative Units", graph.TypeBusiness, 1, 0.5, 130),

		p.level("biz1", "Finance", graph.TypeBusiness, 2, 0.2, 210),
		p.level("biz2", "Trading", graph.TypeBusiness, 2, 0.4, 210),
		p.level("biz3", "Operations", graph.TypeBusiness, 2, 0.6, 210),
		p.level("biz4", "IT", graph.TypeBusiness, 2, 0.8, 210),

		p.level("role1", "Financial Analyst", graph.TypeRole, 3, 0.2, 290),
		p.level("role2", "Trading Manager", graph.TypeRole, 3, 0.4, 290),
		p.level("role3", "Operations Specialist", graph.TypeRole, 3, 0.6, 290),
		p.level("role4", "IT Support", graph.TypeRole, 3, 0.8, 290),

		p.level("perm1", "Financial Data Access", graph.TypePermission, 4, 0.2, 370),
		p.level("perm2", "Trading Systems", graph.TypePermission, 4, 0.4, 370),
		p.level("perm3", "Operations Tools", graph.TypePermission, 4, 0.6, 370),
		p.level("perm4", "IT Systems", graph.TypePermission, 4, 0.8, 370),

		p.level("app1", "Bloomberg", graph.TypeApplication, 5, 0.3, 450),
		p.level("app2", "Trading Platform", graph.TypeApplication, 5, 0.5, 450),
		p.level("app3", "Operations Portal", graph.TypeApplication, 5, 0.7, 450),

		p.level("data1", "Financial DB", graph.TypeData, 6, 0.2, 530),
		p.level("data2", "Trading DB", graph.TypeData, 6, 0.4, 530),
		p.level("data3", "Operations DB", graph.TypeData, 6, 0.6, 530),
		p.level("data4", "System Logs", graph.TypeData, 6, 0.8, 530),

		p.level("license1", "Bloomberg Licenses", graph.TypeLicense, 7, 0.3, 610),
		p.level("license2", "Trading Platform Licenses", graph.TypeLicense, 7, 0.7, 610),
	}
	edges := []graph.Edge{
		link("entraID", "adminUnits"),
		link("adminUnits", "biz1"), link("adminUnits", "biz2"), link("adminUnits", "biz3"), link("adminUnits", "biz4"),
		link("biz1", "role1"), link("biz2", "role2"), link("biz3", "role3"), link("biz4", "role4"),
		link("role1", "perm1"), link("role2", "perm2"), link("role3", "perm3"), link("role4", "perm4"),
		link("perm1", "app1"), link("perm2", "app2"), link("perm3", "app3"),
		link("app1", "data1"), link("app2", "data2"), link("app3", "data3"), link("app3", "data4"),
		link("app1", "license1"), link("app2", "license2"),
	}
	return graph.MustNew(nodes, edges)
}

func (b *Builder) detailed() *graph.Graph {
	p := placer{b.Width}
	nodes := []*graph.Node{
		p.node("finance", "Finance Department", graph.TypeBusiness, 0.5, 50),

		p.node("analyst", "Financial Analyst", graph.TypeRole, 0.3, 150),
		p.node("manager", "Finance Manager", graph.TypeRole, 0.7, 150),

		p.node("basic_finance", "Basic Finance Permissions", graph.TypePermission, 0.2, 250),
		p.node("advanced_finance", "Advanced Finance Permissions", graph.TypePermission, 0.5, 250),
		p.node("approval_perms", "Approval Permissions", graph.TypePermission, 0.8, 250),

		p.node("bloomberg_view", "Bloomberg View", graph.TypeAppPermission, 0.1, 350),
		p.node("bloomberg_analyze", "Bloomberg Analyze", graph.TypeAppPermission, 0.3, 350),
		p.node("erp_view", "ERP View", graph.TypeAppPermission, 0.5, 350),
		p.node("erp_modify", "ERP Modify", graph.TypeAppPermission, 0.7, 350),
		p.node("erp_approve", "ERP Approve", graph.TypeAppPermission, 0.9, 350),

		p.node("finance_db_read", "Finance DB Read", graph.TypeDBPermission, 0.2, 450),
		p.node("finance_db_write", "Finance DB Write", graph.TypeDBPermission, 0.5, 450),
		p.node("finance_db_admin", "Finance DB Admin", graph.TypeDBPermission, 0.8, 450),

		p.node("reports_read", "Reports Read", graph.TypeFilePermission, 0.3, 550),
		p.node("reports_write", "Reports Write", graph.TypeFilePermission, 0.7, 550),
	}
	edges := []graph.Edge{
		link("finance", "analyst"), link("finance", "manager"),

		link("analyst", "basic_finance"),
		link("manager", "basic_finance"), link("manager", "advanced_finance"), link("manager", "approval_perms"),

		link("basic_finance", "bloomberg_view"), link("basic_finance", "erp_view"),
		link("advanced_finance", "bloomberg_analyze"), link("advanced_finance", "erp_modify"),
		link("approval_perms", "erp_approve"),

		link("basic_finance", "finance_db_read"),
		link("advanced_finance", "finance_db_write"),
		link("approval_perms", "finance_db_admin"),

		link("basic_finance", "reports_read"),
		link("advanced_finance", "reports_write"),
	}
	return graph.MustNew(nodes, edges)
}

func (b *Builder) licensing() *graph.Graph {
	p := placer{b.Width}
	nodes := []*graph.Node{
		p.node("named_user", "Named User Licenses", graph.TypeLicenseType, 0.25, 50),
		p.node("concurrent", "Concurrent Use Licenses", graph.TypeLicenseType, 0.75, 50),

		p.node("bloomberg", "Bloomberg Terminal", graph.TypeApplication, 0.15, 150),
		p.node("reuters", "Reuters Eikon", graph.TypeApplication, 0.35, 150),
		p.node("trading_platform", "Trading Platform", graph.TypeApplication, 0.65, 150),
		p.node("analysis_tool", "Analysis Tool", graph.TypeApplication, 0.85, 150),

		p.node("bloomberg_licenses", "Bloomberg Licenses", graph.TypeLicenseGroup, 0.15, 250),
		p.node("reuters_licenses", "Reuters Licenses", graph.TypeLicenseGroup, 0.35, 250),
		p.node("trading_licenses", "Trading Licenses Pool", graph.TypeLicenseGroup, 0.65, 250),
		p.node("analysis_licenses", "Analysis Licenses Pool", graph.TypeLicenseGroup, 0.85, 250),

		p.node("analyst_role", "Financial Analyst", graph.TypeRole, 0.25, 350),
		p.node("trader_role", "Trader", graph.TypeRole, 0.75, 350),

		p.node("user1", "John (Analyst)", graph.TypeUser, 0.15, 450),
		p.node("user2", "Sarah (Analyst)", graph.TypeUser, 0.35, 450),
		p.node("user3", "Michael (Trader)", graph.TypeUser, 0.65, 450),
		p.node("user4", "Emily (Trader)", graph.TypeUser, 0.85, 450),
	}
	edges := []graph.Edge{
		link("named_user", "bloomberg"), link("named_user", "reuters"),
		link("concurrent", "trading_platform"), link("concurrent", "analysis_tool"),

		link("bloomberg", "bloomberg_licenses"),
		link("reuters", "reuters_licenses"),
		link("trading_platform", "trading_licenses"),
		link("analysis_tool", "analysis_licenses"),

		dashed("bloomberg_licenses", "analyst_role"),
		dashed("reuters_licenses", "analyst_role"),
		dashed("trading_licenses", "trader_role"),
		dashed("analysis_licenses", "trader_role"),
		dashed("analysis_licenses", "analyst_role"),

		link("analyst_role", "user1"), link("analyst_role", "user2"),
		link("trader_role", "user3"), link("trader_role", "user4"),
	}
	return graph.MustNew(nodes, edges)
}
