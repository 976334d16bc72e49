package views

import (
	"github.com/samber/lo"

	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/render"
)

// PermissionCategory is one slice of a role profile.
type PermissionCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// RoleProfile is an example role and everything it grants.
type RoleProfile struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Permissions []PermissionCategory `json:"permissions"`
}

var roleProfiles = []RoleProfile{
	{
		ID:          "financial-analyst",
		Title:       "Financial Analyst",
		Description: "Analyzes financial data and prepares reports",
		Permissions: []PermissionCategory{
			{"Applications", []string{"Bloomberg Terminal (View)", "Financial Reporting System", "Microsoft Office Suite"}},
			{"Databases", []string{"Financial Database (Read)", "Market Data (Read)", "Report Repository (Read/Write)"}},
			{"File Systems", []string{"Finance Department Share (Read/Write)", "Company Reports (Read)"}},
			{"Communication", []string{"Email", "Teams Finance Channels", "All-Company Channels"}},
		},
	},
	{
		ID:          "trading-manager",
		Title:       "Trading Manager",
		Description: "Oversees trading operations and manages trading team",
		Permissions: []PermissionCategory{
			{"Applications", []string{"Trading Platform (Full)", "Risk Management System", "Bloomberg Terminal (Full)", "Microsoft Office Suite"}},
			{"Databases", []string{"Trading Database (Read/Write)", "Customer Data (Read)", "Market Data (Read/Write)", "Transaction Logs (Read)"}},
			{"File Systems", []string{"Trading Department Share (Full)", "Compliance Documents (Read)", "Executive Reports (Read)"}},
			{"Communication", []string{"Email", "Teams Trading Channels", "All-Company Channels", "Executive Channel"}},
		},
	},
	{
		ID:          "compliance-officer",
		Title:       "Compliance Officer",
		Description: "Ensures regulatory compliance across operations",
		Permissions: []PermissionCategory{
			{"Applications", []string{"Compliance Monitoring System", "Regulatory Reporting Tools", "Audit System", "Microsoft Office Suite"}},
			{"Databases", []string{"Transaction Logs (Read)", "Trading Database (Read)", "Customer Data (Read)", "Employee Records (Read)"}},
			{"File Systems", []string{"Compliance Share (Full)", "Department Policies (Read)", "Regulatory Documents (Read/Write)"}},
			{"Communication", []string{"Email", "Teams Compliance Channels", "All-Company Channels", "Regulatory Announcements"}},
		},
	},
	{
		ID:          "it-support",
		Title:       "IT Support Specialist",
		Description: "Provides technical support and system maintenance",
		Permissions: []PermissionCategory{
			{"Applications", []string{"IT Service Desk", "System Monitoring Tools", "Network Management", "User Administration"}},
			{"Databases", []string{"System Logs (Read/Write)", "User Directory (Read)", "Configuration DB (Read/Write)"}},
			{"File Systems", []string{"IT Department Share (Full)", "Software Repository (Read)", "System Backup (Read/Write)"}},
			{"Communication", []string{"Email", "Teams IT Channels", "All-Company Channels", "Emergency Notifications"}},
		},
	},
	{
		ID:          "executive",
		Title:       "Executive",
		Description: "Senior leadership responsible for strategic decisions",
		Permissions: []PermissionCategory{
			{"Applications", []string{"Executive Dashboard", "Bloomberg Terminal (Full)", "Financial Planning System", "Microsoft Office Suite"}},
			{"Databases", []string{"Executive Reports (Read)", "Financial Summaries (Read)", "Strategic Planning (Read/Write)"}},
			{"File Systems", []string{"Executive Share (Full)", "Department Reports (Read)", "Board Documents (Read/Write)"}},
			{"Communication", []string{"Email", "Teams Executive Channels", "All-Company Channels", "Board Communications"}},
		},
	},
}

var sunburstColors = []string{"#3A86FF", "#FF006E", "#FB5607", "#8338EC"}

// RoleIDs lists the role profiles in display order.
func RoleIDs() []string {
	return lo.Map(roleProfiles, func(r RoleProfile, _ int) string { return r.ID })
}

// LookupRole returns the profile with the given id.
func LookupRole(id string) (RoleProfile, bool) {
	return lo.Find(roleProfiles, func(r RoleProfile) bool { return r.ID == id })
}

// RoleDiagram is a role profile prepared for the sunburst.
type RoleDiagram struct {
	Role      RoleProfile
	Mount     string
	Hierarchy *layout.Hierarchy
	Options   render.SunburstOptions
}

// RolePermissions builds the sunburst for role. Unknown ids show the first
// profile.
func (b *Builder) RolePermissions(role string) *RoleDiagram {
	p, ok := LookupRole(role)
	if !ok {
		p = roleProfiles[0]
	}
	root := &layout.Hierarchy{Name: p.Title}
	for _, c := range p.Permissions {
		cat := &layout.Hierarchy{Name: c.Category}
		for _, item := range c.Items {
			cat.Children = append(cat.Children, &layout.Hierarchy{Name: item, Value: 1})
		}
		root.Children = append(root.Children, cat)
	}
	categories := lo.Map(p.Permissions, func(c PermissionCategory, _ int) string { return c.Category })
	return &RoleDiagram{
		Role:      p,
		Mount:     MountRolePermissions,
		Hierarchy: root,
		Options: render.SunburstOptions{
			Title:       p.Title,
			Description: p.Description,
			Palette:     render.NewPalette(categories, sunburstColors...),
		},
	}
}
