package services

import (
	"context"
	"fmt"

	"scholargraph/domain/core/valueobjects"
	pkgerrors "scholargraph/pkg/errors"

	"github.com/emirpasic/gods/stacks/arraystack"
	"go.uber.org/zap"
)

// AddReference makes child reference parent
func (s *CatalogService) AddReference(ctx context.Context, child, parent valueobjects.PublicationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	childPub, err := s.publications.GetByID(ctx, child)
	if err != nil {
		return err
	}
	parentPub, err := s.publications.GetByID(ctx, parent)
	if err != nil {
		return err
	}

	validator, err := s.referenceValidator(ctx)
	if err != nil {
		return err
	}
	if err := validator.ValidateReference(child, parent); err != nil {
		return err
	}

	if err := childPub.SetParent(parent); err != nil {
		return err
	}
	parentPub.AddChild(child)

	if err := s.publications.Save(ctx, childPub); err != nil {
		return err
	}
	if err := s.publications.Save(ctx, parentPub); err != nil {
		return err
	}
	if err := s.commit(ctx, []eventSource{childPub}); err != nil {
		return err
	}

	s.logger.Debug("Reference added",
		zap.String("childID", child.String()),
		zap.String("parentID", parent.String()),
	)
	return nil
}

// DirectReferences returns the publications referencing id, in ascending order
func (s *CatalogService) DirectReferences(ctx context.Context, id valueobjects.PublicationID) ([]valueobjects.PublicationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	publication, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return publication.Children(), nil
}

// ParentOf returns the publication id references
func (s *CatalogService) ParentOf(ctx context.Context, id valueobjects.PublicationID) (valueobjects.PublicationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	publication, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	parent, ok := publication.Parent()
	if !ok {
		return 0, pkgerrors.NewNotFoundError(fmt.Sprintf("parent of publication %s", id))
	}
	return parent, nil
}

// ReferencedByChain returns the parent, grandparent and so on up to the root
func (s *CatalogService) ReferencedByChain(ctx context.Context, id valueobjects.PublicationID) ([]valueobjects.PublicationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ancestors(ctx, id)
}

// AllReferences returns every publication that directly or transitively
// references id, in pre-order with children visited in ascending order
func (s *CatalogService) AllReferences(ctx context.Context, id valueobjects.PublicationID) ([]valueobjects.PublicationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	root, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	descendants := []valueobjects.PublicationID{}
	stack := arraystack.New()
	pushChildren := func(children []valueobjects.PublicationID) {
		for i := len(children) - 1; i >= 0; i-- {
			stack.Push(children[i])
		}
	}
	pushChildren(root.Children())

	for !stack.Empty() {
		top, _ := stack.Pop()
		current := top.(valueobjects.PublicationID)
		descendants = append(descendants, current)

		publication, err := s.publications.GetByID(ctx, current)
		if err != nil {
			return nil, err
		}
		pushChildren(publication.Children())
	}
	return descendants, nil
}

// ClosestCommonParent returns the nearest publication that both a and b
// reference directly or transitively
func (s *CatalogService) ClosestCommonParent(ctx context.Context, a, b valueobjects.PublicationID) (valueobjects.PublicationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chainA, err := s.ancestors(ctx, a)
	if err != nil {
		return 0, err
	}
	chainB, err := s.ancestors(ctx, b)
	if err != nil {
		return 0, err
	}

	inB := make(map[valueobjects.PublicationID]struct{}, len(chainB))
	for _, id := range chainB {
		inB[id] = struct{}{}
	}
	for _, id := range chainA {
		if _, ok := inB[id]; ok {
			return id, nil
		}
	}
	return 0, pkgerrors.NewNotFoundError(fmt.Sprintf("common parent of publications %s and %s", a, b))
}

// ancestors walks parents from id up to the root; the caller holds the lock
func (s *CatalogService) ancestors(ctx context.Context, id valueobjects.PublicationID) ([]valueobjects.PublicationID, error) {
	publication, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chain := []valueobjects.PublicationID{}
	for {
		parentID, ok := publication.Parent()
		if !ok {
			return chain, nil
		}
		chain = append(chain, parentID)
		publication, err = s.publications.GetByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
	}
}
