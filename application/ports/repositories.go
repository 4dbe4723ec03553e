package ports

import (
	"context"

	"scholargraph/domain/core/entities"
	"scholargraph/domain/core/valueobjects"
)

// AffiliationRepository defines the interface for affiliation persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type AffiliationRepository interface {
	// Save persists an affiliation (create or update)
	Save(ctx context.Context, affiliation *entities.Affiliation) error

	// GetByID retrieves an affiliation by its ID
	GetByID(ctx context.Context, id valueobjects.AffiliationID) (*entities.Affiliation, error)

	// Exists reports whether an affiliation is stored
	Exists(ctx context.Context, id valueobjects.AffiliationID) (bool, error)

	// FindByCoord retrieves the affiliation at a coordinate
	FindByCoord(ctx context.Context, coord valueobjects.Coord) (*entities.Affiliation, error)

	// List retrieves every affiliation ordered by ID
	List(ctx context.Context) ([]*entities.Affiliation, error)

	// Count returns the number of stored affiliations
	Count(ctx context.Context) (int, error)

	// Delete removes an affiliation
	Delete(ctx context.Context, id valueobjects.AffiliationID) error

	// Clear removes every affiliation
	Clear(ctx context.Context) error
}

// PublicationRepository defines the interface for publication persistence
type PublicationRepository interface {
	// Save persists a publication (create or update)
	Save(ctx context.Context, publication *entities.Publication) error

	// GetByID retrieves a publication by its ID
	GetByID(ctx context.Context, id valueobjects.PublicationID) (*entities.Publication, error)

	// Exists reports whether a publication is stored
	Exists(ctx context.Context, id valueobjects.PublicationID) (bool, error)

	// List retrieves every publication ordered by ID
	List(ctx context.Context) ([]*entities.Publication, error)

	// Count returns the number of stored publications
	Count(ctx context.Context) (int, error)

	// Delete removes a publication
	Delete(ctx context.Context, id valueobjects.PublicationID) error

	// Clear removes every publication
	Clear(ctx context.Context) error
}
