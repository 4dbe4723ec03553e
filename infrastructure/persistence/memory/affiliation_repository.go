package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"scholargraph/application/ports"
	"scholargraph/domain/core/entities"
	"scholargraph/domain/core/valueobjects"
	pkgerrors "scholargraph/pkg/errors"
)

var _ ports.AffiliationRepository = (*AffiliationRepository)(nil)

// AffiliationRepository is an in-memory implementation of ports.AffiliationRepository
type AffiliationRepository struct {
	mu           sync.RWMutex
	affiliations map[valueobjects.AffiliationID]*entities.Affiliation
	maxRecords   int
}

// NewAffiliationRepository creates an empty repository holding at most
// maxRecords affiliations. A non-positive limit disables the check.
func NewAffiliationRepository(maxRecords int) *AffiliationRepository {
	return &AffiliationRepository{
		affiliations: make(map[valueobjects.AffiliationID]*entities.Affiliation),
		maxRecords:   maxRecords,
	}
}

// Save stores or replaces an affiliation
func (r *AffiliationRepository) Save(ctx context.Context, affiliation *entities.Affiliation) error {
	if affiliation == nil {
		return pkgerrors.NewValidationError("affiliation cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.affiliations[affiliation.ID()]; !exists && r.maxRecords > 0 && len(r.affiliations) >= r.maxRecords {
		return pkgerrors.NewConflictError("maximum affiliations reached").
			WithDetail("max", r.maxRecords)
	}

	r.affiliations[affiliation.ID()] = affiliation
	return nil
}

// GetByID retrieves an affiliation by ID
func (r *AffiliationRepository) GetByID(ctx context.Context, id valueobjects.AffiliationID) (*entities.Affiliation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	affiliation, exists := r.affiliations[id]
	if !exists {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("affiliation %s", id))
	}
	return affiliation, nil
}

// Exists reports whether an affiliation is stored
func (r *AffiliationRepository) Exists(ctx context.Context, id valueobjects.AffiliationID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.affiliations[id]
	return exists, nil
}

// FindByCoord returns the affiliation with the smallest ID at coord
func (r *AffiliationRepository) FindByCoord(ctx context.Context, coord valueobjects.Coord) (*entities.Affiliation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *entities.Affiliation
	for _, affiliation := range r.affiliations {
		if !affiliation.Coord().Equals(coord) {
			continue
		}
		if found == nil || affiliation.ID().Less(found.ID()) {
			found = affiliation
		}
	}
	if found == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("affiliation at (%d, %d)", coord.X(), coord.Y()))
	}
	return found, nil
}

// List returns every affiliation ordered by ID
func (r *AffiliationRepository) List(ctx context.Context) ([]*entities.Affiliation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*entities.Affiliation, 0, len(r.affiliations))
	for _, affiliation := range r.affiliations {
		list = append(list, affiliation)
	}
	slices.SortFunc(list, func(a, b *entities.Affiliation) int {
		return a.ID().Compare(b.ID())
	})
	return list, nil
}

// Count returns the number of stored affiliations
func (r *AffiliationRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.affiliations), nil
}

// Delete removes an affiliation
func (r *AffiliationRepository) Delete(ctx context.Context, id valueobjects.AffiliationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.affiliations[id]; !exists {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("affiliation %s", id))
	}
	delete(r.affiliations, id)
	return nil
}

// Clear removes every affiliation
func (r *AffiliationRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.affiliations = make(map[valueobjects.AffiliationID]*entities.Affiliation)
	return nil
}
