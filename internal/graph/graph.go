// Package graph holds the node/edge model shared by every diagram.
package graph

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrDuplicateNode is returned when two nodes in one graph share an id.
var ErrDuplicateNode = errors.New("duplicate node id")

// NodeType drives shape, colour and legend label of a node.
type NodeType string

const (
	TypeDepartment     NodeType = "department"
	TypeGroup          NodeType = "group"
	TypeUser           NodeType = "user"
	TypeCloud          NodeType = "cloud"
	TypeRole           NodeType = "role"
	TypePermission     NodeType = "permission"
	TypeBusiness       NodeType = "business"
	TypeApplication    NodeType = "application"
	TypeData           NodeType = "data"
	TypeLicense        NodeType = "license"
	TypeAppPermission  NodeType = "app-permission"
	TypeDBPermission   NodeType = "db-permission"
	TypeFilePermission NodeType = "file-permission"
	TypeLicenseType    NodeType = "license-type"
	TypeLicenseGroup   NodeType = "license-group"
	TypeFunction       NodeType = "function"
	TypeStep           NodeType = "step"
	TypeMetric         NodeType = "metric"
)

// Node is a labelled, typed vertex. X and Y are layout outputs; Level is an
// optional hint (zero when unset) used for home positions.
type Node struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        NodeType `json:"type"`
	Description string   `json:"description,omitempty"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Level       int      `json:"level,omitempty"`
}

// Edge is a directed link between two node ids. Either endpoint may be
// missing from the graph; such edges are tolerated and skipped at draw time.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Dashed bool   `json:"dashed,omitempty"`
}

// Graph is an immutable node and edge set with an id index.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`
	index map[string]*Node
}

// New builds a graph and its id index. Node ids must be unique.
func New(nodes []*Node, edges []Edge) (*Graph, error) {
	g := &Graph{Nodes: nodes, Edges: edges, index: make(map[string]*Node, len(nodes))}
	for _, n := range nodes {
		if _, dup := g.index[n.ID]; dup {
			return nil, errors.Wrapf(ErrDuplicateNode, "node %q", n.ID)
		}
		g.index[n.ID] = n
	}
	return g, nil
}

// MustNew is New for graphs assembled from fixed tables.
func MustNew(nodes []*Node, edges []Edge) *Graph {
	g, err := New(nodes, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Resolve returns both endpoints of e. ok is false when either is missing.
func (g *Graph) Resolve(e Edge) (src, dst *Node, ok bool) {
	src, okSrc := g.index[e.Source]
	dst, okDst := g.index[e.Target]
	if !okSrc || !okDst {
		return nil, nil, false
	}
	return src, dst, true
}

// Dangling returns the edges with at least one unresolved endpoint.
func (g *Graph) Dangling() []Edge {
	return lo.Filter(g.Edges, func(e Edge, _ int) bool {
		_, _, ok := g.Resolve(e)
		return !ok
	})
}

// Types returns the distinct node types in first-seen order.
func (g *Graph) Types() []NodeType {
	return lo.Uniq(lo.Map(g.Nodes, func(n *Node, _ int) NodeType { return n.Type }))
}

// Degree counts resolved edges touching each node.
func (g *Graph) Degree() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		if _, _, ok := g.Resolve(e); !ok {
			continue
		}
		deg[e.Source]++
		deg[e.Target]++
	}
	return deg
}

// Clone deep-copies the graph so layout can run without touching the source.
func (g *Graph) Clone() *Graph {
	nodes := make([]*Node, len(g.Nodes))
	for i, n := range g.Nodes {
		cp := *n
		nodes[i] = &cp
	}
	edges := append([]Edge(nil), g.Edges...)
	return MustNew(nodes, edges)
}
