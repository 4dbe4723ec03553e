package events

import (
	"time"

	"scholargraph/domain/core/valueobjects"

	"github.com/google/uuid"
)

// Event type names
const (
	TypeAffiliationAdded        = "affiliation.added"
	TypeAffiliationMoved        = "affiliation.moved"
	TypeAffiliationRemoved      = "affiliation.removed"
	TypePublicationCreated      = "publication.created"
	TypeAffiliationLinked       = "publication.affiliation_linked"
	TypePublicationReferenced   = "publication.referenced"
	TypePublicationRemoved      = "publication.removed"
	TypeCatalogCleared          = "catalog.cleared"
	TypeConnectionCreated       = "connectivity.connection_created"
	TypeConnectionStrengthened  = "connectivity.connection_strengthened"
	TypeAffiliationDisconnected = "connectivity.affiliation_disconnected"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func newBaseEvent(aggregateID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Affiliation Events

// AffiliationAdded is raised when a new affiliation is recorded
type AffiliationAdded struct {
	BaseEvent
	AffiliationID valueobjects.AffiliationID `json:"affiliation_id"`
	Name          valueobjects.Name          `json:"name"`
	Coord         valueobjects.Coord         `json:"coord"`
}

// NewAffiliationAdded creates an AffiliationAdded event
func NewAffiliationAdded(id valueobjects.AffiliationID, name valueobjects.Name, coord valueobjects.Coord, timestamp time.Time) AffiliationAdded {
	return AffiliationAdded{
		BaseEvent:     newBaseEvent(id.String(), TypeAffiliationAdded, timestamp),
		AffiliationID: id,
		Name:          name,
		Coord:         coord,
	}
}

// AffiliationMoved is raised when an affiliation changes coordinates
type AffiliationMoved struct {
	BaseEvent
	AffiliationID valueobjects.AffiliationID `json:"affiliation_id"`
	OldCoord      valueobjects.Coord         `json:"old_coord"`
	NewCoord      valueobjects.Coord         `json:"new_coord"`
}

// NewAffiliationMoved creates an AffiliationMoved event
func NewAffiliationMoved(id valueobjects.AffiliationID, oldCoord, newCoord valueobjects.Coord, timestamp time.Time) AffiliationMoved {
	return AffiliationMoved{
		BaseEvent:     newBaseEvent(id.String(), TypeAffiliationMoved, timestamp),
		AffiliationID: id,
		OldCoord:      oldCoord,
		NewCoord:      newCoord,
	}
}

// AffiliationRemoved is raised when an affiliation is deleted. Subscribers
// holding references to the affiliation must drop them.
type AffiliationRemoved struct {
	BaseEvent
	AffiliationID valueobjects.AffiliationID   `json:"affiliation_id"`
	Publications  []valueobjects.PublicationID `json:"publications"`
}

// NewAffiliationRemoved creates an AffiliationRemoved event
func NewAffiliationRemoved(id valueobjects.AffiliationID, publications []valueobjects.PublicationID, timestamp time.Time) AffiliationRemoved {
	return AffiliationRemoved{
		BaseEvent:     newBaseEvent(id.String(), TypeAffiliationRemoved, timestamp),
		AffiliationID: id,
		Publications:  publications,
	}
}

// Publication Events

// PublicationCreated is raised when a publication is recorded together with
// the affiliations that co-authored it
type PublicationCreated struct {
	BaseEvent
	PublicationID valueobjects.PublicationID   `json:"publication_id"`
	Title         valueobjects.Name            `json:"title"`
	Year          valueobjects.Year            `json:"year"`
	Affiliations  []valueobjects.AffiliationID `json:"affiliations"`
}

// NewPublicationCreated creates a PublicationCreated event
func NewPublicationCreated(
	id valueobjects.PublicationID,
	title valueobjects.Name,
	year valueobjects.Year,
	affiliations []valueobjects.AffiliationID,
	timestamp time.Time,
) PublicationCreated {
	return PublicationCreated{
		BaseEvent:     newBaseEvent(id.String(), TypePublicationCreated, timestamp),
		PublicationID: id,
		Title:         title,
		Year:          year,
		Affiliations:  append([]valueobjects.AffiliationID(nil), affiliations...),
	}
}

// AffiliationLinkedToPublication is raised when an existing publication gains
// an affiliation. Existing lists the affiliations it had before the link.
type AffiliationLinkedToPublication struct {
	BaseEvent
	PublicationID valueobjects.PublicationID   `json:"publication_id"`
	AffiliationID valueobjects.AffiliationID   `json:"affiliation_id"`
	Existing      []valueobjects.AffiliationID `json:"existing"`
}

// NewAffiliationLinkedToPublication creates an AffiliationLinkedToPublication event
func NewAffiliationLinkedToPublication(
	pubID valueobjects.PublicationID,
	affID valueobjects.AffiliationID,
	existing []valueobjects.AffiliationID,
	timestamp time.Time,
) AffiliationLinkedToPublication {
	return AffiliationLinkedToPublication{
		BaseEvent:     newBaseEvent(pubID.String(), TypeAffiliationLinked, timestamp),
		PublicationID: pubID,
		AffiliationID: affID,
		Existing:      append([]valueobjects.AffiliationID(nil), existing...),
	}
}

// PublicationReferenced is raised when a publication is attached to a parent
type PublicationReferenced struct {
	BaseEvent
	ChildID  valueobjects.PublicationID `json:"child_id"`
	ParentID valueobjects.PublicationID `json:"parent_id"`
}

// NewPublicationReferenced creates a PublicationReferenced event
func NewPublicationReferenced(child, parent valueobjects.PublicationID, timestamp time.Time) PublicationReferenced {
	return PublicationReferenced{
		BaseEvent: newBaseEvent(child.String(), TypePublicationReferenced, timestamp),
		ChildID:   child,
		ParentID:  parent,
	}
}

// PublicationRemoved is raised when a publication is deleted
type PublicationRemoved struct {
	BaseEvent
	PublicationID valueobjects.PublicationID `json:"publication_id"`
}

// NewPublicationRemoved creates a PublicationRemoved event
func NewPublicationRemoved(id valueobjects.PublicationID, timestamp time.Time) PublicationRemoved {
	return PublicationRemoved{
		BaseEvent:     newBaseEvent(id.String(), TypePublicationRemoved, timestamp),
		PublicationID: id,
	}
}

// CatalogCleared is raised when every record has been dropped
type CatalogCleared struct {
	BaseEvent
}

// NewCatalogCleared creates a CatalogCleared event
func NewCatalogCleared(timestamp time.Time) CatalogCleared {
	return CatalogCleared{BaseEvent: newBaseEvent("catalog", TypeCatalogCleared, timestamp)}
}

// Connectivity Events

// ConnectionCreated is raised on the first co-occurrence of two affiliations
type ConnectionCreated struct {
	BaseEvent
	AffiliationA  valueobjects.AffiliationID `json:"affiliation_a"`
	AffiliationB  valueobjects.AffiliationID `json:"affiliation_b"`
	PublicationID valueobjects.PublicationID `json:"publication_id"`
}

// NewConnectionCreated creates a ConnectionCreated event
func NewConnectionCreated(key valueobjects.ConnectionKey, pubID valueobjects.PublicationID, timestamp time.Time) ConnectionCreated {
	return ConnectionCreated{
		BaseEvent:     newBaseEvent(key.String(), TypeConnectionCreated, timestamp),
		AffiliationA:  key.A,
		AffiliationB:  key.B,
		PublicationID: pubID,
	}
}

// ConnectionStrengthened is raised when an existing connection gains weight
type ConnectionStrengthened struct {
	BaseEvent
	AffiliationA  valueobjects.AffiliationID `json:"affiliation_a"`
	AffiliationB  valueobjects.AffiliationID `json:"affiliation_b"`
	PublicationID valueobjects.PublicationID `json:"publication_id"`
	Weight        int                        `json:"weight"`
}

// NewConnectionStrengthened creates a ConnectionStrengthened event
func NewConnectionStrengthened(key valueobjects.ConnectionKey, pubID valueobjects.PublicationID, weight int, timestamp time.Time) ConnectionStrengthened {
	return ConnectionStrengthened{
		BaseEvent:     newBaseEvent(key.String(), TypeConnectionStrengthened, timestamp),
		AffiliationA:  key.A,
		AffiliationB:  key.B,
		PublicationID: pubID,
		Weight:        weight,
	}
}

// AffiliationDisconnected is raised when an affiliation's connections are dropped
type AffiliationDisconnected struct {
	BaseEvent
	AffiliationID valueobjects.AffiliationID `json:"affiliation_id"`
	Removed       int                        `json:"removed"`
}

// NewAffiliationDisconnected creates an AffiliationDisconnected event
func NewAffiliationDisconnected(id valueobjects.AffiliationID, removed int, timestamp time.Time) AffiliationDisconnected {
	return AffiliationDisconnected{
		BaseEvent:     newBaseEvent(id.String(), TypeAffiliationDisconnected, timestamp),
		AffiliationID: id,
		Removed:       removed,
	}
}
