package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"scholargraph/application/ports"
	"scholargraph/domain/core/entities"
	"scholargraph/domain/core/valueobjects"
	pkgerrors "scholargraph/pkg/errors"
)

var _ ports.PublicationRepository = (*PublicationRepository)(nil)

// PublicationRepository is an in-memory implementation of ports.PublicationRepository
type PublicationRepository struct {
	mu           sync.RWMutex
	publications map[valueobjects.PublicationID]*entities.Publication
	maxRecords   int
}

// NewPublicationRepository creates an empty repository holding at most
// maxRecords publications. A non-positive limit disables the check.
func NewPublicationRepository(maxRecords int) *PublicationRepository {
	return &PublicationRepository{
		publications: make(map[valueobjects.PublicationID]*entities.Publication),
		maxRecords:   maxRecords,
	}
}

// Save stores or replaces a publication
func (r *PublicationRepository) Save(ctx context.Context, publication *entities.Publication) error {
	if publication == nil {
		return pkgerrors.NewValidationError("publication cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.publications[publication.ID()]; !exists && r.maxRecords > 0 && len(r.publications) >= r.maxRecords {
		return pkgerrors.NewConflictError("maximum publications reached").
			WithDetail("max", r.maxRecords)
	}

	r.publications[publication.ID()] = publication
	return nil
}

// GetByID retrieves a publication by ID
func (r *PublicationRepository) GetByID(ctx context.Context, id valueobjects.PublicationID) (*entities.Publication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	publication, exists := r.publications[id]
	if !exists {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("publication %s", id))
	}
	return publication, nil
}

// Exists reports whether a publication is stored
func (r *PublicationRepository) Exists(ctx context.Context, id valueobjects.PublicationID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.publications[id]
	return exists, nil
}

// List returns every publication ordered by ID
func (r *PublicationRepository) List(ctx context.Context) ([]*entities.Publication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*entities.Publication, 0, len(r.publications))
	for _, publication := range r.publications {
		list = append(list, publication)
	}
	slices.SortFunc(list, func(a, b *entities.Publication) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return list, nil
}

// Count returns the number of stored publications
func (r *PublicationRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.publications), nil
}

// Delete removes a publication
func (r *PublicationRepository) Delete(ctx context.Context, id valueobjects.PublicationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.publications[id]; !exists {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("publication %s", id))
	}
	delete(r.publications, id)
	return nil
}

// Clear removes every publication
func (r *PublicationRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.publications = make(map[valueobjects.PublicationID]*entities.Publication)
	return nil
}
