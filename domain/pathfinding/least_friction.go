package pathfinding

import (
	"math"

	"scholargraph/domain/core/valueobjects"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"
)

// widthItem is a frontier entry of the widest-path search
type widthItem struct {
	node  valueobjects.AffiliationID
	width int
}

// byWidestFirst orders wider bottlenecks first, then smaller ids
func byWidestFirst(a, b interface{}) int {
	x, y := a.(widthItem), b.(widthItem)
	if c := -utils.IntComparator(x.width, y.width); c != 0 {
		return c
	}
	return x.node.Compare(y.node)
}

// LeastFriction returns a path whose weakest connection is as strong as
// possible. Among paths with that bottleneck it returns one with the fewest
// hops, preferring smaller ids.
func (f *Finder) LeastFriction(source, target valueobjects.AffiliationID) valueobjects.Path {
	if !f.searchable(source, target) {
		return valueobjects.Path{}
	}

	bottleneck, reachable := f.widestBottleneck(source, target)
	if !reachable {
		return valueobjects.Path{}
	}

	return f.breadthFirst(source, target, func(hop valueobjects.Hop) bool {
		return hop.Weight >= bottleneck
	})
}

// widestBottleneck computes the best achievable minimum weight between
// source and target with a max-priority traversal scoring min(width, weight)
func (f *Finder) widestBottleneck(source, target valueobjects.AffiliationID) (int, bool) {
	best := map[valueobjects.AffiliationID]int{source: math.MaxInt}
	done := make(map[valueobjects.AffiliationID]bool)

	frontier := priorityqueue.NewWith(byWidestFirst)
	frontier.Enqueue(widthItem{node: source, width: math.MaxInt})

	for !frontier.Empty() {
		head, _ := frontier.Dequeue()
		current := head.(widthItem)
		if done[current.node] || current.width < best[current.node] {
			continue
		}
		done[current.node] = true
		if current.node.Equals(target) {
			return current.width, true
		}

		for _, hop := range f.graph.Neighbors(current.node) {
			if done[hop.To] {
				continue
			}
			width := min(current.width, hop.Weight)
			if known, seen := best[hop.To]; !seen || width > known {
				best[hop.To] = width
				frontier.Enqueue(widthItem{node: hop.To, width: width})
			}
		}
	}

	return 0, false
}
