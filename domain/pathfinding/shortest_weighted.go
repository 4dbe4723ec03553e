package pathfinding

import (
	"scholargraph/domain/core/valueobjects"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"
)

// distanceItem is a frontier entry of Dijkstra's search
type distanceItem struct {
	node     valueobjects.AffiliationID
	distance int
}

// byNearestFirst orders smaller distances first, then smaller ids
func byNearestFirst(a, b interface{}) int {
	x, y := a.(distanceItem), b.(distanceItem)
	if c := utils.IntComparator(x.distance, y.distance); c != 0 {
		return c
	}
	return x.node.Compare(y.node)
}

// ShortestWeighted returns the path minimising the sum of connection weights.
// Each step carries the cumulative distance from source. When two routes
// reach an affiliation at the same cost, the one through the smaller
// predecessor id is kept.
func (f *Finder) ShortestWeighted(source, target valueobjects.AffiliationID) valueobjects.PathWithDistance {
	if !f.searchable(source, target) {
		return valueobjects.PathWithDistance{}
	}

	dist := map[valueobjects.AffiliationID]int{source: 0}
	pred := make(map[valueobjects.AffiliationID]valueobjects.Hop)
	done := make(map[valueobjects.AffiliationID]bool)

	frontier := priorityqueue.NewWith(byNearestFirst)
	frontier.Enqueue(distanceItem{node: source})

	for !frontier.Empty() {
		head, _ := frontier.Dequeue()
		current := head.(distanceItem)
		if done[current.node] || current.distance > dist[current.node] {
			continue
		}
		done[current.node] = true
		if current.node.Equals(target) {
			return valueobjects.NewPathWithDistance(reconstruct(pred, source, target))
		}

		for _, hop := range f.graph.Neighbors(current.node) {
			if done[hop.To] {
				continue
			}
			candidate := current.distance + hop.Weight
			known, seen := dist[hop.To]
			switch {
			case !seen || candidate < known:
				dist[hop.To] = candidate
				pred[hop.To] = hop
				frontier.Enqueue(distanceItem{node: hop.To, distance: candidate})
			case candidate == known && hop.From.Less(pred[hop.To].From):
				pred[hop.To] = hop
			}
		}
	}

	return valueobjects.PathWithDistance{}
}
