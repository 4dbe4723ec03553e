package pathfinding

import (
	"fmt"

	pkgerrors "scholargraph/pkg/errors"
)

// Kind selects a path objective
type Kind string

const (
	KindAny           Kind = "any"
	KindFewestHops    Kind = "fewest-hops"
	KindLeastFriction Kind = "least-friction"
	KindShortest      Kind = "shortest"
)

// Kinds lists every supported objective
func Kinds() []Kind {
	return []Kind{KindAny, KindFewestHops, KindLeastFriction, KindShortest}
}

// ParseKind validates a path kind name
func ParseKind(raw string) (Kind, error) {
	for _, kind := range Kinds() {
		if string(kind) == raw {
			return kind, nil
		}
	}
	return "", errUnknownKind(Kind(raw))
}

func errUnknownKind(kind Kind) error {
	return pkgerrors.NewValidationError(fmt.Sprintf("unknown path kind %q", kind)).
		WithDetail("supported", Kinds())
}
