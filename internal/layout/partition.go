package layout

// Hierarchy is a named tree whose leaves carry a value. Inner node values
// are the sum of their leaves.
type Hierarchy struct {
	Name     string
	Value    float64
	Children []*Hierarchy
}

// Cell is one node of a partitioned hierarchy. X spans the first axis
// (angle for a sunburst) and Y spans depth rings.
type Cell struct {
	Name   string
	Depth  int
	Value  float64
	X0, X1 float64
	Y0, Y1 float64
	// Branch is the name of the depth-1 ancestor, or the cell's own name at
	// depth 1. The root has an empty branch.
	Branch string
}

// Sum returns the leaf total of h.
func (h *Hierarchy) Sum() float64 {
	if len(h.Children) == 0 {
		return h.Value
	}
	var total float64
	for _, c := range h.Children {
		total += c.Sum()
	}
	return total
}

func (h *Hierarchy) height() int {
	best := 0
	for _, c := range h.Children {
		if ch := c.height() + 1; ch > best {
			best = ch
		}
	}
	return best
}

// Partition lays out h as adjacent slices: each node takes a share of its
// parent's [X0, X1) span proportional to its value, and each depth takes an
// equal ring of [0, height). Cells are returned in pre-order, root first.
func Partition(h *Hierarchy, width, height float64) []Cell {
	if h == nil {
		return nil
	}
	ring := height / float64(h.height()+1)
	var cells []Cell
	var walk func(n *Hierarchy, depth int, x0, x1 float64, branch string)
	walk = func(n *Hierarchy, depth int, x0, x1 float64, branch string) {
		if depth == 1 {
			branch = n.Name
		}
		value := n.Sum()
		cells = append(cells, Cell{
			Name:   n.Name,
			Depth:  depth,
			Value:  value,
			X0:     x0,
			X1:     x1,
			Y0:     float64(depth) * ring,
			Y1:     float64(depth+1) * ring,
			Branch: branch,
		})
		if value == 0 {
			return
		}
		k := (x1 - x0) / value
		x := x0
		for _, c := range n.Children {
			cx1 := x + c.Sum()*k
			walk(c, depth+1, x, cx1, branch)
			x = cx1
		}
	}
	walk(h, 0, 0, width, "")
	return cells
}
