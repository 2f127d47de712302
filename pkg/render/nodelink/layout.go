package nodelink

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/citygraph/pkg/graph"
)

// Point is a node position. Layout functions place every node inside the
// square [-1, 1] x [-1, 1].
type Point struct {
	X, Y float64
}

// Layout maps node ids to positions.
type Layout map[string]Point

// LayoutKind names a layout algorithm.
type LayoutKind string

const (
	LayoutSpring   LayoutKind = "spring"
	LayoutCircular LayoutKind = "circular"
)

// Compute dispatches to the named layout. Unknown kinds fall back to spring.
func Compute(g *graph.Graph, kind LayoutKind, seed uint64) Layout {
	if kind == LayoutCircular {
		return CircularLayout(g)
	}
	return SpringLayout(g, seed)
}

const springIterations = 50

// SpringLayout positions nodes with the Fruchterman-Reingold force-directed
// algorithm: edges pull their endpoints together, all node pairs push apart,
// and a cooling temperature bounds how far a node moves per iteration.
//
// Starting positions are drawn from a PCG generator seeded with seed, so the
// same graph and seed always produce the same layout. Edge weights do not
// affect attraction; distances on the drawing are not to scale.
func SpringLayout(g *graph.Graph, seed uint64) Layout {
	nodes := g.Nodes()
	n := len(nodes)
	switch n {
	case 0:
		return Layout{}
	case 1:
		return Layout{nodes[0]: {}}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}

	k := math.Sqrt(1 / float64(n))
	temp := 0.1
	cool := temp / float64(springIterations+1)
	disp := make([]Point, n)

	for range springIterations {
		clear(disp)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx, dy, d := delta(pos[i], pos[j])
				f := k * k / d
				disp[i].X += dx / d * f
				disp[i].Y += dy / d * f
				disp[j].X -= dx / d * f
				disp[j].Y -= dy / d * f
			}
		}
		for _, e := range g.Edges() {
			i, j := g.Index(e.U), g.Index(e.V)
			dx, dy, d := delta(pos[i], pos[j])
			f := d * d / k
			disp[i].X -= dx / d * f
			disp[i].Y -= dy / d * f
			disp[j].X += dx / d * f
			disp[j].Y += dy / d * f
		}
		for i := range pos {
			l := math.Hypot(disp[i].X, disp[i].Y)
			if l < 1e-9 {
				continue
			}
			step := math.Min(l, temp)
			pos[i].X += disp[i].X / l * step
			pos[i].Y += disp[i].Y / l * step
		}
		temp -= cool
	}

	rescale(pos)
	out := make(Layout, n)
	for i, id := range nodes {
		out[id] = pos[i]
	}
	return out
}

// delta returns the vector from b to a and its length, clamped away from
// zero so coincident nodes still repel.
func delta(a, b Point) (dx, dy, d float64) {
	dx, dy = a.X-b.X, a.Y-b.Y
	d = math.Max(math.Hypot(dx, dy), 0.01)
	return dx, dy, d
}

// CircularLayout places nodes evenly on the unit circle in insertion order,
// starting at the top and proceeding clockwise.
func CircularLayout(g *graph.Graph) Layout {
	nodes := g.Nodes()
	out := make(Layout, len(nodes))
	if len(nodes) == 1 {
		out[nodes[0]] = Point{}
		return out
	}
	for i, id := range nodes {
		theta := math.Pi/2 - 2*math.Pi*float64(i)/float64(len(nodes))
		out[id] = Point{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	return out
}

// rescale centers pos on the origin and scales it so the largest coordinate
// magnitude is 1.
func rescale(pos []Point) {
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	var lim float64
	for i := range pos {
		pos[i].X -= cx
		pos[i].Y -= cy
		lim = math.Max(lim, math.Max(math.Abs(pos[i].X), math.Abs(pos[i].Y)))
	}
	if lim == 0 {
		return
	}
	for i := range pos {
		pos[i].X /= lim
		pos[i].Y /= lim
	}
}
