// Package astar provides the free-space route planner consumed by the
// routed linker: a uniform-grid A* search followed by a random-shortcut
// smoothing pass.
package astar

import (
	"container/heap"
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"

	"go.viam.com/coveragepath/geometry"
)

// ErrNoPath is returned when start or goal lies on a blocked grid node, or
// the search exhausts its expansion budget without reaching goal.
var ErrNoPath = errors.New("astar: no route found between start and goal")

// Planner routes around a set of obstacle polygons on a uniform grid, then
// shortcuts the result with randomized smoothing.
type Planner struct {
	// GridResolution is the spacing between grid nodes.
	GridResolution float64
	// Margin places the grid origin this far below and left of the
	// start/goal bounding box. The search itself is not confined to that
	// box; it stops only at goal or when its expansion budget runs out.
	Margin float64
	// Obstacles are regions the route must not cross.
	Obstacles []geometry.Polygon
	// SmoothIter bounds the random-shortcut smoothing passes.
	SmoothIter int
	// Rand drives the smoother's random shortcut selection; a nil Rand gets
	// a default source.
	Rand *rand.Rand

	Logger logging.Logger
}

type gridNode struct {
	x, y int
}

// Plan finds a route from start to goal avoiding p.Obstacles, then smooths
// it. The returned slice always begins with start and ends with goal.
func (p *Planner) Plan(start, goal r2.Point) ([]r2.Point, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.NewLogger("astar")
	}

	res := p.GridResolution
	if res <= 0 {
		res = 0.5
	}
	margin := p.Margin
	if margin <= 0 {
		margin = 2 * res
	}

	xMin := math.Min(start.X, goal.X) - margin
	yMin := math.Min(start.Y, goal.Y) - margin

	toGrid := func(pt r2.Point) gridNode {
		return gridNode{x: int(math.Round((pt.X - xMin) / res)), y: int(math.Round((pt.Y - yMin) / res))}
	}
	toWorld := func(n gridNode) r2.Point {
		return r2.Point{X: xMin + float64(n.x)*res, Y: yMin + float64(n.y)*res}
	}

	startNode := toGrid(start)
	goalNode := toGrid(goal)

	blocked := func(n gridNode) bool {
		pt := toWorld(n)
		for _, obstacle := range p.Obstacles {
			xMin, yMin, xMax, yMax := obstacle.Bounds()
			if pt.X >= xMin && pt.X <= xMax && pt.Y >= yMin && pt.Y <= yMax {
				return true
			}
		}
		return false
	}

	path, ok := search(startNode, goalNode, blocked)
	if !ok {
		logger.Warnw("astar: no path found", "start", start, "goal", goal)
		return nil, ErrNoPath
	}

	waypoints := make([]r2.Point, len(path))
	for i, n := range path {
		waypoints[i] = toWorld(n)
	}
	waypoints[0] = start
	waypoints[len(waypoints)-1] = goal

	return p.smooth(waypoints), nil
}

type searchItem struct {
	node  gridNode
	g, f  float64
	index int
}

type priorityQueue []*searchItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index, pq[j].index = i, j }
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*searchItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

var neighborOffsets = []gridNode{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func heuristicCost(a, b gridNode) float64 {
	dx, dy := float64(a.x-b.x), float64(a.y-b.y)
	return math.Hypot(dx, dy)
}

func search(start, goal gridNode, blocked func(gridNode) bool) ([]gridNode, bool) {
	if blocked(start) || blocked(goal) {
		return nil, false
	}

	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, &searchItem{node: start, g: 0, f: heuristicCost(start, goal)})

	cameFrom := map[gridNode]gridNode{}
	gScore := map[gridNode]float64{start: 0}

	const maxExpansions = 200000
	expansions := 0

	for open.Len() > 0 {
		expansions++
		if expansions > maxExpansions {
			return nil, false
		}

		current := heap.Pop(open).(*searchItem).node
		if current == goal {
			return reconstructPath(cameFrom, current), true
		}

		for _, off := range neighborOffsets {
			neighbor := gridNode{x: current.x + off.x, y: current.y + off.y}
			if blocked(neighbor) {
				continue
			}
			stepCost := math.Hypot(float64(off.x), float64(off.y))
			tentativeG := gScore[current] + stepCost
			if best, ok := gScore[neighbor]; ok && tentativeG >= best {
				continue
			}
			cameFrom[neighbor] = current
			gScore[neighbor] = tentativeG
			heap.Push(open, &searchItem{node: neighbor, g: tentativeG, f: tentativeG + heuristicCost(neighbor, goal)})
		}
	}
	return nil, false
}

func reconstructPath(cameFrom map[gridNode]gridNode, current gridNode) []gridNode {
	path := []gridNode{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// smooth randomly tries to shortcut between two non-adjacent waypoints,
// keeping the change only if the direct segment clears every obstacle.
func (p *Planner) smooth(path []r2.Point) []r2.Point {
	if len(path) <= 2 {
		return path
	}
	iterations := p.SmoothIter
	if iterations <= 0 {
		iterations = 100
	}
	r := p.Rand
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}

	for i := 0; i < iterations; i++ {
		if len(path) <= 2 {
			break
		}
		a := r.Intn(len(path) - 2)
		b := a + 1 + r.Intn(len(path)-2-a)
		if b <= a+1 {
			continue
		}
		if p.clear(path[a], path[b+1]) {
			newPath := make([]r2.Point, 0, len(path)-(b-a)+1)
			newPath = append(newPath, path[:a+1]...)
			newPath = append(newPath, path[b+1:]...)
			path = newPath
		}
	}
	return path
}

func (p *Planner) clear(a, b r2.Point) bool {
	for _, obstacle := range p.Obstacles {
		if obstacle.Intersects([2]r2.Point{a, b}) {
			return false
		}
	}
	return true
}
