package views

import (
	"fmt"

	"github.com/ziadkadry99/rolemap/internal/classify"
	"github.com/ziadkadry99/rolemap/internal/graph"
	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/orgstructure"
	"github.com/ziadkadry99/rolemap/internal/render"
)

var analysisPalette = render.NewTypePalette(
	[]graph.NodeType{graph.TypeDepartment, graph.TypeGroup, graph.TypeUser, graph.TypeCloud, graph.TypeRole, graph.TypePermission},
	"#3A86FF", "#FB5607", "#06D6A0", "#8338EC", "#FF006E", "#FFBE0B",
)

const (
	maxProposedRoles       = 4
	maxProposedPermissions = 4
	maxProposedUsers       = 4
	// roleNeedsPermission is the chance a proposed role links to a given
	// permission set.
	roleNeedsPermission = 0.7
)

func analysisDiagram(name, mount, title string, g *graph.Graph) *Diagram {
	return &Diagram{
		Name:   name,
		Kind:   KindAnalysis,
		Mount:  mount,
		Graph:  g,
		Layout: LayoutFixed,
		Render: render.Options{Title: title, Style: render.StyleCompact, Palette: analysisPalette, Legend: true},
	}
}

// CurrentStructure draws the department's existing directory groups on a
// ring with a sample of users attached to one to three groups each.
func (b *Builder) CurrentStructure(department string, groups []string) *Diagram {
	cx := b.Width / 2
	const cy = 180

	nodes := []*graph.Node{{ID: "department", Label: department, Type: graph.TypeDepartment, X: cx, Y: 50}}
	var edges []graph.Edge

	for i, label := range groups {
		x, y := layout.Radial(cx, cy, 120, i, len(groups))
		nodes = append(nodes, &graph.Node{ID: groupID(i), Label: label, Type: graph.TypeGroup, X: x, Y: y})
		edges = append(edges, link("department", groupID(i)))
	}

	users := min(b.maxSampleUsers(), 2*len(groups))
	for i := 0; i < users; i++ {
		x, y := layout.Radial(cx, cy, 200, i, users)
		nodes = append(nodes, &graph.Node{ID: userID(i), Label: fmt.Sprintf("User %d", i+1), Type: graph.TypeUser, X: x, Y: y})

		k := min(1+b.Sampler.Intn(3), len(groups))
		for _, gi := range b.pick(len(groups), k) {
			edges = append(edges, link(userID(i), groupID(gi)))
		}
	}
	return analysisDiagram(CurrentStructure, MountCurrentStructure, "Current Permission Structure", graph.MustNew(nodes, edges))
}

// ProposedStructure draws the target layout: the identity platform, the
// department's administrative unit, up to four roles and permission sets
// and a few users assigned to roles.
func (b *Builder) ProposedStructure(department string, roles []orgstructure.Role, buckets *classify.Buckets) *Diagram {
	cx := b.Width / 2
	nodes := []*graph.Node{
		{ID: "entraID", Label: "Microsoft Entra ID", Type: graph.TypeCloud, X: cx, Y: 30},
		{ID: "adminUnit", Label: department + " (Admin Unit)", Type: graph.TypeDepartment, X: cx, Y: 90},
	}
	edges := []graph.Edge{link("entraID", "adminUnit")}

	roleCount := min(maxProposedRoles, len(roles))
	for i := 0; i < roleCount; i++ {
		nodes = append(nodes, &graph.Node{
			ID: roleID(i), Label: roles[i].RoleName, Type: graph.TypeRole,
			X: layout.Band(b.Width, i, roleCount), Y: 150,
		})
		edges = append(edges, link("adminUnit", roleID(i)))
	}

	var categories []classify.Category
	if buckets != nil {
		categories = buckets.Keys()
	}
	permCount := min(maxProposedPermissions, len(categories))
	for i := 0; i < permCount; i++ {
		nodes = append(nodes, &graph.Node{
			ID: permID(i), Label: string(categories[i]) + " Permissions", Type: graph.TypePermission,
			X: layout.Band(b.Width, i, permCount), Y: 210,
		})
		for j := 0; j < roleCount; j++ {
			if b.Sampler.Float64() > 1-roleNeedsPermission {
				edges = append(edges, link(roleID(j), permID(i)))
			}
		}
	}

	users := min(maxProposedUsers, 2*len(roles))
	for i := 0; i < users; i++ {
		nodes = append(nodes, &graph.Node{
			ID: userID(i), Label: fmt.Sprintf("User %d", i+1), Type: graph.TypeUser,
			X: layout.Band(b.Width, i, users), Y: 270,
		})
		edges = append(edges, link(userID(i), roleID(i%roleCount)))
	}
	return analysisDiagram(ProposedStructure, MountProposedStructure, "Proposed Role-Based Structure", graph.MustNew(nodes, edges))
}

func (b *Builder) maxSampleUsers() int {
	if b.MaxSampleUsers <= 0 {
		return DefaultMaxSampleUsers
	}
	return b.MaxSampleUsers
}

// pick draws k distinct indices from [0, n) with a partial shuffle, so the
// draw always finishes in k steps.
func (b *Builder) pick(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + b.Sampler.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
