package pathfinding

import (
	"slices"

	"scholargraph/domain/core/valueobjects"
)

// reconstruct walks predecessor hops back from target to source
func reconstruct(pred map[valueobjects.AffiliationID]valueobjects.Hop, source, target valueobjects.AffiliationID) valueobjects.Path {
	path := valueobjects.Path{}
	for current := target; !current.Equals(source); {
		hop, ok := pred[current]
		if !ok {
			return valueobjects.Path{}
		}
		path = append(path, hop)
		current = hop.From
	}
	slices.Reverse(path)
	return path
}
