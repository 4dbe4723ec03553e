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

// DatedPublication pairs a publication with its year
type DatedPublication struct {
	Year          valueobjects.Year          `json:"year"`
	PublicationID valueobjects.PublicationID `json:"publication_id"`
}

// AddPublication records a publication co-authored by existing affiliations
func (s *CatalogService) AddPublication(
	ctx context.Context,
	id valueobjects.PublicationID,
	title valueobjects.Name,
	year valueobjects.Year,
	affiliationIDs []valueobjects.AffiliationID,
) (*entities.Publication, error) {
	ctx, span := s.tracer.StartSpan(ctx, "AddPublication",
		attribute.String("publication.id", id.String()),
		attribute.Int("publication.affiliations", len(affiliationIDs)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.publications.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgerrors.NewConflictError(fmt.Sprintf("publication %s already exists", id))
	}

	publication, err := entities.NewPublication(id, title, year, affiliationIDs, s.cfg)
	if err != nil {
		return nil, err
	}

	authors := make([]*entities.Affiliation, 0, len(affiliationIDs))
	for _, affID := range affiliationIDs {
		affiliation, err := s.affiliations.GetByID(ctx, affID)
		if err != nil {
			return nil, err
		}
		authors = append(authors, affiliation)
	}

	if err := s.publications.Save(ctx, publication); err != nil {
		return nil, err
	}
	for _, affiliation := range authors {
		affiliation.AttachPublication(id)
		if err := s.affiliations.Save(ctx, affiliation); err != nil {
			return nil, err
		}
	}
	if err := s.commit(ctx, []eventSource{publication}); err != nil {
		return nil, err
	}

	s.logger.Info("Publication added",
		zap.String("publicationID", id.String()),
		zap.Int("year", year.Int()),
		zap.Int("affiliations", len(affiliationIDs)),
	)
	return publication, nil
}

// GetPublication retrieves a publication by ID
func (s *CatalogService) GetPublication(ctx context.Context, id valueobjects.PublicationID) (*entities.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.publications.GetByID(ctx, id)
}

// PublicationCount returns the number of publications
func (s *CatalogService) PublicationCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.publications.Count(ctx)
}

// ListPublications returns every publication ordered by ID
func (s *CatalogService) ListPublications(ctx context.Context) ([]*entities.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.publications.List(ctx)
}

// PublicationAffiliations returns the affiliations listed on a publication
func (s *CatalogService) PublicationAffiliations(ctx context.Context, id valueobjects.PublicationID) ([]valueobjects.AffiliationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	publication, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return publication.Affiliations(), nil
}

// AddAffiliationToPublication lists an existing affiliation on an existing
// publication. The affiliation becomes connected to every affiliation the
// publication already listed.
func (s *CatalogService) AddAffiliationToPublication(ctx context.Context, affID valueobjects.AffiliationID, pubID valueobjects.PublicationID) error {
	ctx, span := s.tracer.StartSpan(ctx, "AddAffiliationToPublication",
		attribute.String("affiliation.id", affID.String()),
		attribute.String("publication.id", pubID.String()),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	affiliation, err := s.affiliations.GetByID(ctx, affID)
	if err != nil {
		return err
	}
	publication, err := s.publications.GetByID(ctx, pubID)
	if err != nil {
		return err
	}
	if len(publication.Affiliations()) >= s.cfg.MaxAffiliationsPerPublication {
		return pkgerrors.NewValidationError("too many affiliations on publication").
			WithDetail("max", s.cfg.MaxAffiliationsPerPublication)
	}

	if err := publication.LinkAffiliation(affID); err != nil {
		return err
	}
	affiliation.AttachPublication(pubID)

	if err := s.publications.Save(ctx, publication); err != nil {
		return err
	}
	if err := s.affiliations.Save(ctx, affiliation); err != nil {
		return err
	}
	return s.commit(ctx, []eventSource{publication})
}

// PublicationsOf returns the publications an affiliation appears on
func (s *CatalogService) PublicationsOf(ctx context.Context, affID valueobjects.AffiliationID) ([]valueobjects.PublicationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	affiliation, err := s.affiliations.GetByID(ctx, affID)
	if err != nil {
		return nil, err
	}
	return affiliation.Publications(), nil
}

// PublicationsAfter returns the affiliation's publications from year onwards,
// ordered by year, then ID
func (s *CatalogService) PublicationsAfter(ctx context.Context, affID valueobjects.AffiliationID, year valueobjects.Year) ([]DatedPublication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	affiliation, err := s.affiliations.GetByID(ctx, affID)
	if err != nil {
		return nil, err
	}

	dated := []DatedPublication{}
	for _, pubID := range affiliation.Publications() {
		publication, err := s.publications.GetByID(ctx, pubID)
		if err != nil {
			return nil, err
		}
		if publication.Year() >= year {
			dated = append(dated, DatedPublication{Year: publication.Year(), PublicationID: pubID})
		}
	}
	slices.SortFunc(dated, func(a, b DatedPublication) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.PublicationID, b.PublicationID)
	})
	return dated, nil
}

// RemovePublication deletes a publication. Children lose their parent, the
// parent loses the child and affiliations lose the publication. Existing
// connections keep their weight.
func (s *CatalogService) RemovePublication(ctx context.Context, id valueobjects.PublicationID) error {
	ctx, span := s.tracer.StartSpan(ctx, "RemovePublication", attribute.String("publication.id", id.String()))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	publication, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, childID := range publication.Children() {
		child, err := s.publications.GetByID(ctx, childID)
		if err != nil {
			return err
		}
		child.ClearParent()
		if err := s.publications.Save(ctx, child); err != nil {
			return err
		}
	}
	if parentID, ok := publication.Parent(); ok {
		parent, err := s.publications.GetByID(ctx, parentID)
		if err != nil {
			return err
		}
		parent.RemoveChild(id)
		if err := s.publications.Save(ctx, parent); err != nil {
			return err
		}
	}
	for _, affID := range publication.Affiliations() {
		affiliation, err := s.affiliations.GetByID(ctx, affID)
		if err != nil {
			return err
		}
		affiliation.DetachPublication(id)
		if err := s.affiliations.Save(ctx, affiliation); err != nil {
			return err
		}
	}

	if err := s.publications.Delete(ctx, id); err != nil {
		return err
	}
	return s.commit(ctx, nil, events.NewPublicationRemoved(id, time.Now()))
}

// ClearAll drops every record and connection
func (s *CatalogService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.publications.Clear(ctx); err != nil {
		return err
	}
	if err := s.affiliations.Clear(ctx); err != nil {
		return err
	}
	if err := s.commit(ctx, nil, events.NewCatalogCleared(time.Now())); err != nil {
		return err
	}

	s.logger.Info("Catalog cleared")
	return nil
}
