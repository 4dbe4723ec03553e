package entities

import (
	"slices"
	"time"

	"scholargraph/domain/core/valueobjects"
	"scholargraph/domain/events"
	pkgerrors "scholargraph/pkg/errors"
)

// Affiliation is an institution that co-authors publications.
// It references publications by identifier only.
type Affiliation struct {
	id           valueobjects.AffiliationID
	name         valueobjects.Name
	coord        valueobjects.Coord
	publications map[valueobjects.PublicationID]struct{}
	createdAt    time.Time
	updatedAt    time.Time
	version      int

	events []events.DomainEvent
}

// NewAffiliation creates a new affiliation and records an AffiliationAdded event
func NewAffiliation(id valueobjects.AffiliationID, name valueobjects.Name, coord valueobjects.Coord) (*Affiliation, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("affiliation ID cannot be empty")
	}

	now := time.Now()
	affiliation := &Affiliation{
		id:           id,
		name:         name,
		coord:        coord,
		publications: make(map[valueobjects.PublicationID]struct{}),
		createdAt:    now,
		updatedAt:    now,
		version:      1,
		events:       []events.DomainEvent{},
	}

	affiliation.addEvent(events.NewAffiliationAdded(id, name, coord, now))

	return affiliation, nil
}

// ID returns the affiliation's identifier
func (a *Affiliation) ID() valueobjects.AffiliationID {
	return a.id
}

// Name returns the affiliation's name
func (a *Affiliation) Name() valueobjects.Name {
	return a.name
}

// Coord returns the affiliation's position
func (a *Affiliation) Coord() valueobjects.Coord {
	return a.coord
}

// CreatedAt returns the creation timestamp
func (a *Affiliation) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns the last update timestamp
func (a *Affiliation) UpdatedAt() time.Time {
	return a.updatedAt
}

// Version returns the affiliation's version
func (a *Affiliation) Version() int {
	return a.version
}

// MoveTo changes the affiliation's coordinate. Moving to the current
// coordinate is a no-op.
func (a *Affiliation) MoveTo(coord valueobjects.Coord) {
	if a.coord.Equals(coord) {
		return
	}

	old := a.coord
	a.coord = coord
	a.touch()

	a.addEvent(events.NewAffiliationMoved(a.id, old, coord, a.updatedAt))
}

// AttachPublication records that the affiliation appears on a publication
func (a *Affiliation) AttachPublication(pubID valueobjects.PublicationID) bool {
	if _, exists := a.publications[pubID]; exists {
		return false
	}
	a.publications[pubID] = struct{}{}
	a.touch()
	return true
}

// DetachPublication forgets a publication
func (a *Affiliation) DetachPublication(pubID valueobjects.PublicationID) bool {
	if _, exists := a.publications[pubID]; !exists {
		return false
	}
	delete(a.publications, pubID)
	a.touch()
	return true
}

// HasPublication checks whether the affiliation appears on a publication
func (a *Affiliation) HasPublication(pubID valueobjects.PublicationID) bool {
	_, exists := a.publications[pubID]
	return exists
}

// Publications returns the publication ids in ascending order
func (a *Affiliation) Publications() []valueobjects.PublicationID {
	ids := make([]valueobjects.PublicationID, 0, len(a.publications))
	for id := range a.publications {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// GetUncommittedEvents returns events recorded since the last commit
func (a *Affiliation) GetUncommittedEvents() []events.DomainEvent {
	return a.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (a *Affiliation) MarkEventsAsCommitted() {
	a.events = []events.DomainEvent{}
}

func (a *Affiliation) touch() {
	a.updatedAt = time.Now()
	a.version++
}

func (a *Affiliation) addEvent(event events.DomainEvent) {
	a.events = append(a.events, event)
}
