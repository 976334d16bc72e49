package layout

import (
	"math"

	"github.com/ziadkadry99/rolemap/internal/graph"
)

// Params tunes the force simulation. The zero value is not usable; start
// from DefaultParams.
type Params struct {
	LinkDistance   float64
	Charge         float64
	AnchorStrength float64
	// VelocityDecay is the fraction of velocity kept after each tick.
	VelocityDecay float64
	AlphaMin      float64
	AlphaDecay    float64
}

// DefaultParams matches the classic d3-force defaults used by the
// architecture views: alpha decays from 1 to AlphaMin in roughly 300 ticks.
func DefaultParams() Params {
	alphaMin := 0.001
	return Params{
		LinkDistance:   100,
		Charge:         -300,
		AnchorStrength: 0.5,
		VelocityDecay:  0.6,
		AlphaMin:       alphaMin,
		AlphaDecay:     1 - math.Pow(alphaMin, 1.0/300),
	}
}

type particle struct {
	id           string
	x, y         float64
	vx, vy       float64
	homeX, homeY float64
	pinned       bool
	fx, fy       float64
}

type spring struct {
	source, target *particle
	strength       float64
	bias           float64
}

// Simulation is an explicit force-directed stepper over one graph. Forces
// are link springs, pairwise repulsion and anchoring toward each node's
// starting position. It never runs on its own; callers Step it or hand it
// to a Driver.
type Simulation struct {
	params    Params
	particles []*particle
	index     map[string]*particle
	springs   []spring
	alpha     float64
	ticks     int
	frozen    bool
}

// NewSimulation seeds a simulation from the current node positions, which
// also become the anchor (home) positions. Dangling edges are ignored.
func NewSimulation(g *graph.Graph, p Params) *Simulation {
	s := &Simulation{
		params: p,
		index:  make(map[string]*particle, len(g.Nodes)),
		alpha:  1,
	}
	for _, n := range g.Nodes {
		pt := &particle{id: n.ID, x: n.X, y: n.Y, homeX: n.X, homeY: n.Y}
		s.particles = append(s.particles, pt)
		s.index[n.ID] = pt
	}

	degree := g.Degree()
	for _, e := range g.Edges {
		src, okSrc := s.index[e.Source]
		dst, okDst := s.index[e.Target]
		if !okSrc || !okDst {
			continue
		}
		ds, dt := float64(degree[e.Source]), float64(degree[e.Target])
		s.springs = append(s.springs, spring{
			source:   src,
			target:   dst,
			strength: 1 / math.Min(ds, dt),
			bias:     ds / (ds + dt),
		})
	}
	return s
}

// Alpha is the current energy of the simulation.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Ticks is the number of steps applied so far.
func (s *Simulation) Ticks() int { return s.ticks }

// Frozen reports whether the simulation has been halted.
func (s *Simulation) Frozen() bool { return s.frozen }

// Freeze halts the simulation. Later Steps are no-ops.
func (s *Simulation) Freeze() { s.frozen = true }

// Settled reports whether alpha has decayed below the minimum.
func (s *Simulation) Settled() bool { return s.alpha < s.params.AlphaMin }

// Step advances the simulation by one tick. It returns false, without
// moving anything, once the simulation is frozen.
func (s *Simulation) Step() bool {
	if s.frozen {
		return false
	}
	s.alpha += -s.alpha * s.params.AlphaDecay

	s.applyLinks()
	s.applyCharge()
	s.applyAnchors()

	for _, p := range s.particles {
		if p.pinned {
			p.x, p.y = p.fx, p.fy
			p.vx, p.vy = 0, 0
			continue
		}
		p.vx *= s.params.VelocityDecay
		p.vy *= s.params.VelocityDecay
		p.x += p.vx
		p.y += p.vy
	}
	s.ticks++
	return true
}

func (s *Simulation) applyLinks() {
	for i, sp := range s.springs {
		x := sp.target.x + sp.target.vx - sp.source.x - sp.source.vx
		y := sp.target.y + sp.target.vy - sp.source.y - sp.source.vy
		if x == 0 {
			x = jiggle(i)
		}
		if y == 0 {
			y = jiggle(i + 1)
		}
		l := math.Sqrt(x*x + y*y)
		l = (l - s.params.LinkDistance) / l * s.alpha * sp.strength
		x *= l
		y *= l
		sp.target.vx -= x * sp.bias
		sp.target.vy -= y * sp.bias
		sp.source.vx += x * (1 - sp.bias)
		sp.source.vy += y * (1 - sp.bias)
	}
}

// applyCharge is the exact O(n²) many-body force. Diagrams here stay well
// under a hundred nodes.
func (s *Simulation) applyCharge() {
	const distanceMin2 = 1.0
	for i, p := range s.particles {
		for j, q := range s.particles {
			if i == j {
				continue
			}
			x := q.x - p.x
			y := q.y - p.y
			if x == 0 {
				x = pairJiggle(i, j)
			}
			if y == 0 {
				y = pairJiggle(i, j)
			}
			l := x*x + y*y
			if l < distanceMin2 {
				l = math.Sqrt(distanceMin2 * l)
			}
			w := s.params.Charge * s.alpha / l
			p.vx += x * w
			p.vy += y * w
		}
	}
}

func (s *Simulation) applyAnchors() {
	k := s.params.AnchorStrength * s.alpha
	for _, p := range s.particles {
		p.vx += (p.homeX - p.x) * k
		p.vy += (p.homeY - p.y) * k
	}
}

// jiggle separates coincident particles with a tiny deterministic offset.
func jiggle(seed int) float64 {
	if seed%2 == 0 {
		return 1e-6
	}
	return -1e-6
}

// pairJiggle is antisymmetric so two coincident particles are pushed in
// opposite directions.
func pairJiggle(i, j int) float64 {
	if i < j {
		return 1e-6
	}
	return -1e-6
}

// Pin fixes a node at (x, y) for the rest of the simulation's life. It
// applies even after Freeze. Unknown ids are ignored.
func (s *Simulation) Pin(id string, x, y float64) bool {
	p, ok := s.index[id]
	if !ok {
		return false
	}
	p.pinned = true
	p.fx, p.fy = x, y
	p.x, p.y = x, y
	p.vx, p.vy = 0, 0
	return true
}

// Position returns the current position of a node.
func (s *Simulation) Position(id string) (x, y float64, ok bool) {
	p, ok := s.index[id]
	if !ok {
		return 0, 0, false
	}
	return p.x, p.y, true
}

// Apply copies the simulated positions onto the graph's nodes.
func (s *Simulation) Apply(g *graph.Graph) {
	for _, n := range g.Nodes {
		if p, ok := s.index[n.ID]; ok {
			n.X, n.Y = p.x, p.y
		}
	}
}
