package pathfinding

import (
	"scholargraph/domain/core/valueobjects"

	"github.com/emirpasic/gods/stacks/arraystack"
)

type frame struct {
	node valueobjects.AffiliationID
	via  valueobjects.Hop
	root bool
}

// AnyPath returns some simple path from source to target using an iterative
// depth-first search. Neighbours are explored in ascending id order.
func (f *Finder) AnyPath(source, target valueobjects.AffiliationID) valueobjects.Path {
	if !f.searchable(source, target) {
		return valueobjects.Path{}
	}

	visited := make(map[valueobjects.AffiliationID]bool)
	pred := make(map[valueobjects.AffiliationID]valueobjects.Hop)

	stack := arraystack.New()
	stack.Push(frame{node: source, root: true})

	for !stack.Empty() {
		top, _ := stack.Pop()
		current := top.(frame)
		if visited[current.node] {
			continue
		}
		visited[current.node] = true
		if !current.root {
			pred[current.node] = current.via
		}
		if current.node.Equals(target) {
			return reconstruct(pred, source, target)
		}

		// pushed in reverse so the smallest id is popped first
		hops := f.graph.Neighbors(current.node)
		for i := len(hops) - 1; i >= 0; i-- {
			if !visited[hops[i].To] {
				stack.Push(frame{node: hops[i].To, via: hops[i]})
			}
		}
	}

	return valueobjects.Path{}
}
