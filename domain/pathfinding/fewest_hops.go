package pathfinding

import (
	"scholargraph/domain/core/valueobjects"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// FewestHops returns a path with the minimum number of connections. Among
// equally short paths the one discovered through smaller ids wins.
func (f *Finder) FewestHops(source, target valueobjects.AffiliationID) valueobjects.Path {
	if !f.searchable(source, target) {
		return valueobjects.Path{}
	}
	return f.breadthFirst(source, target, func(valueobjects.Hop) bool { return true })
}

// breadthFirst runs BFS over the hops accepted by allow and stops as soon as
// target is discovered
func (f *Finder) breadthFirst(source, target valueobjects.AffiliationID, allow func(valueobjects.Hop) bool) valueobjects.Path {
	visited := map[valueobjects.AffiliationID]bool{source: true}
	pred := make(map[valueobjects.AffiliationID]valueobjects.Hop)

	queue := linkedlistqueue.New()
	queue.Enqueue(source)

	for !queue.Empty() {
		head, _ := queue.Dequeue()
		current := head.(valueobjects.AffiliationID)

		for _, hop := range f.graph.Neighbors(current) {
			if visited[hop.To] || !allow(hop) {
				continue
			}
			visited[hop.To] = true
			pred[hop.To] = hop
			if hop.To.Equals(target) {
				return reconstruct(pred, source, target)
			}
			queue.Enqueue(hop.To)
		}
	}

	return valueobjects.Path{}
}
