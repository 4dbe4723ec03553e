package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"scholargraph/domain/core/entities"
	"scholargraph/domain/core/valueobjects"
	"scholargraph/domain/events"
	pkgerrors "scholargraph/pkg/errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AffiliationOrder selects how affiliation listings are sorted
type AffiliationOrder string

const (
	OrderByID           AffiliationOrder = "id"
	OrderAlphabetically AffiliationOrder = "name"
	OrderByDistance     AffiliationOrder = "distance"
)

// AddAffiliation records a new affiliation
func (s *CatalogService) AddAffiliation(
	ctx context.Context,
	id valueobjects.AffiliationID,
	name valueobjects.Name,
	coord valueobjects.Coord,
) (*entities.Affiliation, error) {
	ctx, span := s.tracer.StartSpan(ctx, "AddAffiliation", attribute.String("affiliation.id", id.String()))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.affiliations.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgerrors.NewConflictError(fmt.Sprintf("affiliation %s already exists", id))
	}

	affiliation, err := entities.NewAffiliation(id, name, coord)
	if err != nil {
		return nil, err
	}
	if err := s.affiliations.Save(ctx, affiliation); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, []eventSource{affiliation}); err != nil {
		return nil, err
	}

	s.logger.Info("Affiliation added",
		zap.String("affiliationID", id.String()),
		zap.Int("x", coord.X()),
		zap.Int("y", coord.Y()),
	)
	return affiliation, nil
}

// GetAffiliation retrieves an affiliation by ID
func (s *CatalogService) GetAffiliation(ctx context.Context, id valueobjects.AffiliationID) (*entities.Affiliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.affiliations.GetByID(ctx, id)
}

// AffiliationCount returns the number of affiliations
func (s *CatalogService) AffiliationCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.affiliations.Count(ctx)
}

// ListAffiliations returns every affiliation in the requested order. Ties in
// name break by ID; ties in distance from the origin break by y, then ID.
func (s *CatalogService) ListAffiliations(ctx context.Context, order AffiliationOrder) ([]*entities.Affiliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.affiliations.List(ctx)
	if err != nil {
		return nil, err
	}

	switch order {
	case OrderByID, "":
	case OrderAlphabetically:
		slices.SortStableFunc(list, func(a, b *entities.Affiliation) int {
			if c := cmp.Compare(a.Name().String(), b.Name().String()); c != 0 {
				return c
			}
			return a.ID().Compare(b.ID())
		})
	case OrderByDistance:
		sortByDistance(list, valueobjects.NewCoord(0, 0))
	default:
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("unknown affiliation order %q", order))
	}
	return list, nil
}

// FindAffiliationByCoord returns the affiliation located at coord
func (s *CatalogService) FindAffiliationByCoord(ctx context.Context, coord valueobjects.Coord) (*entities.Affiliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.affiliations.FindByCoord(ctx, coord)
}

// NearestAffiliations returns up to the configured number of affiliations
// closest to coord
func (s *CatalogService) NearestAffiliations(ctx context.Context, coord valueobjects.Coord) ([]*entities.Affiliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.affiliations.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByDistance(list, coord)

	if len(list) > s.cfg.NearestAffiliationsLimit {
		list = list[:s.cfg.NearestAffiliationsLimit]
	}
	return list, nil
}

// ChangeAffiliationCoord moves an affiliation
func (s *CatalogService) ChangeAffiliationCoord(ctx context.Context, id valueobjects.AffiliationID, coord valueobjects.Coord) (*entities.Affiliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	affiliation, err := s.affiliations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	affiliation.MoveTo(coord)
	if err := s.affiliations.Save(ctx, affiliation); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, []eventSource{affiliation}); err != nil {
		return nil, err
	}
	return affiliation, nil
}

// RemoveAffiliation deletes an affiliation, detaches it from its
// publications and drops its connections
func (s *CatalogService) RemoveAffiliation(ctx context.Context, id valueobjects.AffiliationID) error {
	ctx, span := s.tracer.StartSpan(ctx, "RemoveAffiliation", attribute.String("affiliation.id", id.String()))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	affiliation, err := s.affiliations.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pubIDs := affiliation.Publications()
	for _, pubID := range pubIDs {
		publication, err := s.publications.GetByID(ctx, pubID)
		if err != nil {
			return pkgerrors.Wrapf(err, "affiliation %s references missing publication", id)
		}
		publication.UnlinkAffiliation(id)
		if err := s.publications.Save(ctx, publication); err != nil {
			return err
		}
	}

	if err := s.affiliations.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.commit(ctx, nil, events.NewAffiliationRemoved(id, pubIDs, time.Now())); err != nil {
		return err
	}

	s.logger.Info("Affiliation removed",
		zap.String("affiliationID", id.String()),
		zap.Int("publications", len(pubIDs)),
	)
	return nil
}

// sortByDistance orders affiliations by distance to ref, then y, then ID
func sortByDistance(list []*entities.Affiliation, ref valueobjects.Coord) {
	slices.SortStableFunc(list, func(a, b *entities.Affiliation) int {
		if c := ref.CompareDistance(a.Coord(), b.Coord()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Coord().Y(), b.Coord().Y()); c != 0 {
			return c
		}
		return a.ID().Compare(b.ID())
	})
}
