// Package sequence orders a constraint list into a traversal chain,
// selecting each constraint's ingress point as it goes: a greedy
// nearest-neighbor sequencer, a direction-alternating matching sequencer,
// and an exhaustive enumerator over both direction partitions.
package sequence

import (
	"context"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/heuristic"
)

// ErrMissingDirection is returned by sequencers that require every input
// constraint to already carry a Direction.
var ErrMissingDirection = errors.New("sequence: constraint direction is unconstrained")

// ErrPartitionCount is returned when the directed constraint set doesn't
// split into exactly two direction tuples.
var ErrPartitionCount = errors.New("sequence: constraints must carry exactly two distinct direction tuples")

// ErrEmpty is returned when there are no constraints to sequence.
var ErrEmpty = errors.New("sequence: no constraints to sequence")

// Sequencer orders a constraint list into a traversal chain, fixing each
// chosen constraint's ingress point along the way.
type Sequencer interface {
	Sequence(constraints []constraint.Constraint, startPoint *r2.Point) ([]constraint.Constraint, error)
}

// Greedy picks the lowest-cost (constraint, ingress) pair at every step.
type Greedy struct {
	Heuristic heuristic.Heuristic
}

// Sequence implements Sequencer.
func (s Greedy) Sequence(constraints []constraint.Constraint, startPoint *r2.Point) ([]constraint.Constraint, error) {
	if len(constraints) == 0 {
		return nil, ErrEmpty
	}

	startIdx, ingressPoint := s.chooseStart(constraints, startPoint)
	start := constraints[startIdx]
	if err := start.SelectIngress(ingressPoint); err != nil {
		return nil, err
	}

	chain := []constraint.Constraint{start}
	egress, err := singularEgress(start)
	if err != nil {
		return nil, err
	}

	remaining := make([]constraint.Constraint, 0, len(constraints)-1)
	remaining = append(remaining, constraints[:startIdx]...)
	remaining = append(remaining, constraints[startIdx+1:]...)

	for len(remaining) > 0 {
		bestIdx := -1
		var bestPoint r2.Point
		bestCost := math.Inf(1)
		for i, c := range remaining {
			for _, pt := range c.IngressPoints() {
				cost := s.Heuristic.Cost(egress, pt)
				if cost < bestCost {
					bestCost = cost
					bestIdx = i
					bestPoint = pt
				}
			}
		}

		next := remaining[bestIdx]
		if err := next.SelectIngress(bestPoint); err != nil {
			return nil, err
		}
		chain = append(chain, next)
		egress, err = singularEgress(next)
		if err != nil {
			return nil, err
		}

		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return chain, nil
}

func (s Greedy) chooseStart(constraints []constraint.Constraint, startPoint *r2.Point) (int, r2.Point) {
	if startPoint == nil {
		return 0, constraints[0].IngressPoints()[0]
	}

	bestIdx := 0
	bestCost := math.Inf(1)
	var bestPoint r2.Point
	for i, c := range constraints {
		for _, pt := range c.IngressPoints() {
			cost := s.Heuristic.Cost(*startPoint, pt)
			if cost < bestCost {
				bestCost = cost
				bestIdx = i
				bestPoint = pt
			}
		}
	}
	return bestIdx, bestPoint
}

func singularEgress(c constraint.Constraint) (r2.Point, error) {
	egress := c.EgressPoints()
	if len(egress) != 1 {
		return r2.Point{}, errors.New("sequence: constraint egress is not singular after select_ingress")
	}
	return egress[0], nil
}

// direction is a comparable key for a constraint's Direction field.
type direction [2]int

// partitionByDirection splits constraints into exactly two direction groups,
// returning the keys in first-seen order so downstream selection is
// deterministic.
func partitionByDirection(constraints []constraint.Constraint) ([]direction, map[direction][]constraint.Constraint, error) {
	partitions := map[direction][]constraint.Constraint{}
	var keys []direction
	for _, c := range constraints {
		d := c.Params().Direction
		if d == nil {
			return nil, nil, ErrMissingDirection
		}
		key := direction(*d)
		if _, seen := partitions[key]; !seen {
			keys = append(keys, key)
		}
		partitions[key] = append(partitions[key], c)
	}
	if len(partitions) != 2 {
		return nil, nil, ErrPartitionCount
	}
	return keys, partitions, nil
}

// Matching alternates between two direction partitions, choosing the
// minimum-cost candidate from the opposite partition at each step.
type Matching struct {
	Heuristic heuristic.Heuristic
}

// Sequence implements Sequencer.
func (s Matching) Sequence(constraints []constraint.Constraint, startPoint *r2.Point) ([]constraint.Constraint, error) {
	keys, partitions, err := partitionByDirection(constraints)
	if err != nil {
		return nil, err
	}

	larger, smaller := keys[0], keys[1]
	if len(partitions[smaller]) > len(partitions[larger]) {
		larger, smaller = smaller, larger
	}

	startIdx, startKey, ingressPoint := s.chooseStart(partitions, larger, smaller, startPoint)
	start := partitions[startKey][startIdx]
	if err := start.SelectIngress(ingressPoint); err != nil {
		return nil, err
	}
	partitions[startKey] = removeConstraint(partitions[startKey], startIdx)

	chain := []constraint.Constraint{start}
	chainStartIngress := start.IngressPoints()[0]
	egress, err := singularEgress(start)
	if err != nil {
		return nil, err
	}

	for len(partitions[larger])+len(partitions[smaller]) > 0 {
		lastDir := direction(*chain[len(chain)-1].Params().Direction)
		nextKey := direction{lastDir[1], lastDir[0]}
		pool := partitions[nextKey]

		bestIdx := -1
		var bestPoint r2.Point
		bestCost := math.Inf(1)
		for i, c := range pool {
			for _, pt := range c.IngressPoints() {
				cost := s.Heuristic.Cost(egress, pt)
				switch {
				case bestIdx < 0 || cost < bestCost:
					bestCost = cost
					bestIdx = i
					bestPoint = pt
				case cost == bestCost:
					// Tie-break: prefer the candidate farther from the
					// chain's original ingress point.
					tieCurrent := s.Heuristic.Cost(bestPoint, chainStartIngress)
					tieNew := s.Heuristic.Cost(pt, chainStartIngress)
					if tieNew > tieCurrent {
						bestIdx = i
						bestPoint = pt
					}
				}
			}
		}

		next := pool[bestIdx]
		if err := next.SelectIngress(bestPoint); err != nil {
			return nil, err
		}
		chain = append(chain, next)
		egress, err = singularEgress(next)
		if err != nil {
			return nil, err
		}
		partitions[nextKey] = removeConstraint(pool, bestIdx)
	}

	return chain, nil
}

func (s Matching) chooseStart(
	partitions map[direction][]constraint.Constraint,
	larger, smaller direction,
	startPoint *r2.Point,
) (int, direction, r2.Point) {
	if startPoint == nil {
		return 0, larger, partitions[larger][0].IngressPoints()[0]
	}

	searchKeys := []direction{larger, smaller}
	if len(partitions[larger]) != len(partitions[smaller]) {
		searchKeys = []direction{larger}
	}

	bestIdx := 0
	bestKey := searchKeys[0]
	bestCost := math.Inf(1)
	var bestPoint r2.Point
	for _, key := range searchKeys {
		for i, c := range partitions[key] {
			for _, pt := range c.IngressPoints() {
				cost := s.Heuristic.Cost(*startPoint, pt)
				if cost < bestCost {
					bestCost = cost
					bestIdx = i
					bestKey = key
					bestPoint = pt
				}
			}
		}
	}
	return bestIdx, bestKey, bestPoint
}

func removeConstraint(s []constraint.Constraint, idx int) []constraint.Constraint {
	out := append([]constraint.Constraint(nil), s[:idx]...)
	return append(out, s[idx+1:]...)
}

// BruteForceMatching enumerates every interleaving of the two direction
// partitions' permutations. It does not pick a winner itself; the caller
// scores each chain (typically by final path length) and keeps the best.
type BruteForceMatching struct{}

// Chains streams every candidate chain on the returned channel. The channel
// is closed when enumeration finishes or ctx is canceled; canceling ctx is
// how a caller bounds the Θ(n!·m!) enumeration (a deadline, a length budget,
// or an early break all reduce to cancellation).
func (BruteForceMatching) Chains(ctx context.Context, constraints []constraint.Constraint) (<-chan []constraint.Constraint, error) {
	keys, partitions, err := partitionByDirection(constraints)
	if err != nil {
		return nil, err
	}

	permsA := permutations(partitions[keys[0]])
	permsB := permutations(partitions[keys[1]])

	out := make(chan []constraint.Constraint)

	utils.PanicCapturingGo(func() {
		defer close(out)
		for _, p1 := range permsA {
			for _, p2 := range permsB {
				if len(p1) >= len(p2) {
					select {
					case out <- interleave(p1, p2):
					case <-ctx.Done():
						return
					}
				}
				if len(p2) >= len(p1) {
					select {
					case out <- interleave(p2, p1):
					case <-ctx.Done():
						return
					}
				}
			}
		}
	})

	return out, nil
}

// SelectShortest drains chains, scoring each with cost, and returns the
// lowest-scoring one.
func SelectShortest(chains <-chan []constraint.Constraint, cost func([]constraint.Constraint) float64) ([]constraint.Constraint, error) {
	var best []constraint.Constraint
	bestCost := math.Inf(1)
	for chain := range chains {
		c := cost(chain)
		if c < bestCost {
			bestCost = c
			best = chain
		}
	}
	if best == nil {
		return nil, errors.New("sequence: no candidate chain found")
	}
	return best, nil
}

// interleave zips long (the larger-or-equal partition) and short together,
// appending long's remainder once short is exhausted.
func interleave(long, short []constraint.Constraint) []constraint.Constraint {
	chain := make([]constraint.Constraint, 0, len(long)+len(short))
	for i := 0; i < len(long); i++ {
		chain = append(chain, long[i])
		if i < len(short) {
			chain = append(chain, short[i])
		}
	}
	return chain
}

// permutations returns every ordering of items (Heap's algorithm).
func permutations(items []constraint.Constraint) [][]constraint.Constraint {
	var result [][]constraint.Constraint
	n := len(items)
	if n == 0 {
		return [][]constraint.Constraint{{}}
	}

	work := append([]constraint.Constraint(nil), items...)
	c := make([]int, n)
	result = append(result, append([]constraint.Constraint(nil), work...))

	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				work[0], work[i] = work[i], work[0]
			} else {
				work[c[i]], work[i] = work[i], work[c[i]]
			}
			result = append(result, append([]constraint.Constraint(nil), work...))
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
	return result
}
