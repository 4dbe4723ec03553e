// Package pathfinding answers route queries over the affiliation
// connectivity graph. Finders are stateless and read the graph on every call.
package pathfinding

import (
	"scholargraph/domain/core/valueobjects"
)

// Graph exposes the adjacency the algorithms walk. Neighbors must return
// hops leaving id sorted by destination, and an empty slice for unknown ids.
type Graph interface {
	Neighbors(id valueobjects.AffiliationID) []valueobjects.Hop
}

// Directory tells whether an affiliation is a known record
type Directory interface {
	AffiliationExists(id valueobjects.AffiliationID) bool
}

// DirectoryFunc adapts a function to the Directory interface
type DirectoryFunc func(id valueobjects.AffiliationID) bool

// AffiliationExists calls f(id)
func (f DirectoryFunc) AffiliationExists(id valueobjects.AffiliationID) bool {
	return f(id)
}

// Finder runs path queries against a graph
type Finder struct {
	graph     Graph
	directory Directory
}

// NewFinder creates a finder. A nil directory accepts every id.
func NewFinder(graph Graph, directory Directory) *Finder {
	return &Finder{
		graph:     graph,
		directory: directory,
	}
}

// Find runs the query of the given kind. Weighted results carry cumulative
// distances; for the other kinds the distance is the running total of weights.
func (f *Finder) Find(kind Kind, source, target valueobjects.AffiliationID) (valueobjects.PathWithDistance, error) {
	switch kind {
	case KindAny:
		return valueobjects.NewPathWithDistance(f.AnyPath(source, target)), nil
	case KindFewestHops:
		return valueobjects.NewPathWithDistance(f.FewestHops(source, target)), nil
	case KindLeastFriction:
		return valueobjects.NewPathWithDistance(f.LeastFriction(source, target)), nil
	case KindShortest:
		return f.ShortestWeighted(source, target), nil
	default:
		return nil, errUnknownKind(kind)
	}
}

// searchable reports whether a search between source and target can yield a
// non-empty path
func (f *Finder) searchable(source, target valueobjects.AffiliationID) bool {
	if source.IsZero() || target.IsZero() || source.Equals(target) {
		return false
	}
	if f.directory == nil {
		return true
	}
	return f.directory.AffiliationExists(source) && f.directory.AffiliationExists(target)
}
