package validators

import (
	"fmt"

	"scholargraph/domain/core/valueobjects"
	"scholargraph/pkg/errors"
)

// ParentLookup returns the parent of a publication, if it has one
type ParentLookup func(id valueobjects.PublicationID) (valueobjects.PublicationID, bool)

// ReferenceValidator validates reference-tree rules between publications
type ReferenceValidator struct {
	parentOf ParentLookup
	maxDepth int
}

// NewReferenceValidator creates a validator walking parents through lookup.
// maxDepth bounds the walk; a chain longer than that is reported as corrupt.
func NewReferenceValidator(lookup ParentLookup, maxDepth int) *ReferenceValidator {
	return &ReferenceValidator{
		parentOf: lookup,
		maxDepth: maxDepth,
	}
}

// ValidateReference checks that child may reference parent. The child must
// not already have a parent and must not be an ancestor of parent.
func (v *ReferenceValidator) ValidateReference(child, parent valueobjects.PublicationID) error {
	if child == parent {
		return errors.NewConflictError("publication cannot reference itself").
			WithCode("REFERENCE_CYCLE").
			WithDetail("publication_id", child.String())
	}

	if existing, ok := v.parentOf(child); ok {
		return errors.NewConflictError(
			fmt.Sprintf("publication %s already references %s", child, existing),
		).WithCode("PARENT_ALREADY_SET")
	}

	current := parent
	for steps := 0; ; steps++ {
		if steps > v.maxDepth {
			return errors.NewInternalError("reference chain exceeds the number of publications").
				WithDetail("publication_id", parent.String())
		}
		next, ok := v.parentOf(current)
		if !ok {
			return nil
		}
		if next == child {
			return errors.NewConflictError(
				fmt.Sprintf("referencing %s from %s would create a cycle", parent, child),
			).WithCode("REFERENCE_CYCLE")
		}
		current = next
	}
}
