package sequence

import (
	"context"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/heuristic"
)

func openAt(x float64) *constraint.Open {
	return constraint.NewOpen([]r2.Point{{X: x, Y: 0}, {X: x, Y: 10}})
}

func TestGreedyVisitsEveryConstraintOnce(t *testing.T) {
	constraints := []constraint.Constraint{openAt(3), openAt(0), openAt(1), openAt(2)}
	s := Greedy{Heuristic: heuristic.Euclidean{}}

	chain, err := s.Sequence(constraints, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(chain), test.ShouldEqual, len(constraints))

	seen := map[constraint.Constraint]bool{}
	for _, c := range chain {
		seen[c] = true
	}
	test.That(t, len(seen), test.ShouldEqual, len(constraints))
}

func TestGreedyPicksClosestStart(t *testing.T) {
	constraints := []constraint.Constraint{openAt(10), openAt(0)}
	s := Greedy{Heuristic: heuristic.Euclidean{}}

	start := r2.Point{X: 0, Y: 0}
	chain, err := s.Sequence(constraints, &start)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain[0], test.ShouldEqual, constraints[1])
}

func TestGreedySequencesNearestFirstFromIngress(t *testing.T) {
	row := func(y float64) *constraint.Open {
		return constraint.NewOpen([]r2.Point{{X: 0, Y: y}, {X: 4, Y: y}})
	}
	c1, c3, c5 := row(1), row(3), row(5)
	constraints := []constraint.Constraint{c5, c1, c3}
	s := Greedy{Heuristic: heuristic.Euclidean{}}

	start := r2.Point{X: 0, Y: 0.1}
	chain, err := s.Sequence(constraints, &start)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, chain[0], test.ShouldEqual, c1)
	test.That(t, chain[1], test.ShouldEqual, c3)
	test.That(t, chain[2], test.ShouldEqual, c5)

	test.That(t, chain[0].IngressPoints()[0], test.ShouldResemble, r2.Point{X: 0, Y: 1})
	test.That(t, *chain[0].Params().Direction, test.ShouldResemble, [2]int{0, 1})
	test.That(t, *chain[1].Params().Direction, test.ShouldResemble, [2]int{1, 0})
	test.That(t, *chain[2].Params().Direction, test.ShouldResemble, [2]int{0, 1})
}

func TestMatchingTieBreakPrefersFartherFromChainStart(t *testing.T) {
	up := func(coords ...r2.Point) *constraint.Open {
		c := constraint.NewOpen(coords)
		c.Params().Direction = &[2]int{0, 1}
		return c
	}
	down := func(coords ...r2.Point) *constraint.Open {
		c := constraint.NewOpen(coords)
		c.Params().Direction = &[2]int{1, 0}
		return c
	}

	u1 := up(r2.Point{X: 1, Y: 0}, r2.Point{X: 1, Y: 10})
	u2 := up(r2.Point{X: 10, Y: 0}, r2.Point{X: 10, Y: 10})
	// Both candidates' ingress points are exactly 3 from u1's egress (1,10);
	// nearer's ingress (4,10) is 10.44 from the chain start (1,0), farther's
	// ingress (1,13) is 13 away.
	nearer := down(r2.Point{X: 4, Y: 0}, r2.Point{X: 4, Y: 10})
	farther := down(r2.Point{X: 1, Y: 20}, r2.Point{X: 1, Y: 13})

	constraints := []constraint.Constraint{u1, u2, nearer, farther}
	s := Matching{Heuristic: heuristic.Euclidean{}}

	start := r2.Point{X: 1, Y: -1}
	chain, err := s.Sequence(constraints, &start)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, chain[0], test.ShouldEqual, u1)
	test.That(t, chain[1], test.ShouldEqual, farther)
}

func TestMatchingAlternatesDirections(t *testing.T) {
	a := openAt(0)
	a.Params().Direction = &[2]int{0, 1}
	b := openAt(1)
	b.Params().Direction = &[2]int{1, 0}
	c := openAt(2)
	c.Params().Direction = &[2]int{0, 1}
	d := openAt(3)
	d.Params().Direction = &[2]int{1, 0}

	constraints := []constraint.Constraint{a, b, c, d}
	s := Matching{Heuristic: heuristic.Euclidean{}}

	chain, err := s.Sequence(constraints, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(chain), test.ShouldEqual, 4)

	for i := 0; i+1 < len(chain); i++ {
		di := *chain[i].Params().Direction
		dj := *chain[i+1].Params().Direction
		test.That(t, di, test.ShouldNotResemble, dj)
	}
}

func TestMatchingRequiresDirection(t *testing.T) {
	constraints := []constraint.Constraint{openAt(0), openAt(1)}
	s := Matching{Heuristic: heuristic.Euclidean{}}

	_, err := s.Sequence(constraints, nil)
	test.That(t, err, test.ShouldEqual, ErrMissingDirection)
}

func TestBruteForceMatchingEnumeratesChains(t *testing.T) {
	a := openAt(0)
	a.Params().Direction = &[2]int{0, 1}
	b := openAt(1)
	b.Params().Direction = &[2]int{1, 0}
	c := openAt(2)
	c.Params().Direction = &[2]int{0, 1}

	constraints := []constraint.Constraint{a, b, c}
	chains, err := BruteForceMatching{}.Chains(context.Background(), constraints)
	test.That(t, err, test.ShouldBeNil)

	count := 0
	for chain := range chains {
		test.That(t, len(chain), test.ShouldEqual, 3)
		count++
	}
	test.That(t, count, test.ShouldBeGreaterThan, 0)
}

func TestSelectShortestPicksMinimumCost(t *testing.T) {
	a := openAt(0)
	a.Params().Direction = &[2]int{0, 1}
	b := openAt(1)
	b.Params().Direction = &[2]int{1, 0}

	constraints := []constraint.Constraint{a, b}
	chains, err := BruteForceMatching{}.Chains(context.Background(), constraints)
	test.That(t, err, test.ShouldBeNil)

	cost := func(chain []constraint.Constraint) float64 {
		return float64(len(chain))
	}
	best, err := SelectShortest(chains, cost)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(best), test.ShouldEqual, 2)
}
