package entities

import (
	"fmt"
	"slices"
	"time"

	"scholargraph/domain/config"
	"scholargraph/domain/core/valueobjects"
	"scholargraph/domain/events"
	pkgerrors "scholargraph/pkg/errors"
)

// Publication is a paper co-authored by a set of affiliations. It can
// reference at most one parent publication and be referenced by many.
type Publication struct {
	id           valueobjects.PublicationID
	title        valueobjects.Name
	year         valueobjects.Year
	affiliations []valueobjects.AffiliationID
	parent       *valueobjects.PublicationID
	children     map[valueobjects.PublicationID]struct{}
	createdAt    time.Time
	updatedAt    time.Time
	version      int

	events []events.DomainEvent
}

// NewPublication creates a publication and records a PublicationCreated event.
// The affiliation list keeps its order and must not contain duplicates.
func NewPublication(
	id valueobjects.PublicationID,
	title valueobjects.Name,
	year valueobjects.Year,
	affiliations []valueobjects.AffiliationID,
	cfg *config.DomainConfig,
) (*Publication, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if len(affiliations) > cfg.MaxAffiliationsPerPublication {
		return nil, pkgerrors.NewValidationError("too many affiliations on publication").
			WithDetail("max", cfg.MaxAffiliationsPerPublication)
	}

	seen := make(map[valueobjects.AffiliationID]struct{}, len(affiliations))
	for _, affID := range affiliations {
		if affID.IsZero() {
			return nil, pkgerrors.NewValidationError("affiliation ID cannot be empty")
		}
		if _, dup := seen[affID]; dup {
			return nil, pkgerrors.NewValidationError(
				fmt.Sprintf("affiliation %s listed more than once", affID))
		}
		seen[affID] = struct{}{}
	}

	now := time.Now()
	publication := &Publication{
		id:           id,
		title:        title,
		year:         year,
		affiliations: append([]valueobjects.AffiliationID(nil), affiliations...),
		children:     make(map[valueobjects.PublicationID]struct{}),
		createdAt:    now,
		updatedAt:    now,
		version:      1,
		events:       []events.DomainEvent{},
	}

	publication.addEvent(events.NewPublicationCreated(id, title, year, affiliations, now))

	return publication, nil
}

// ID returns the publication's identifier
func (p *Publication) ID() valueobjects.PublicationID {
	return p.id
}

// Title returns the publication's title
func (p *Publication) Title() valueobjects.Name {
	return p.title
}

// Year returns the publication year
func (p *Publication) Year() valueobjects.Year {
	return p.year
}

// Version returns the publication's version
func (p *Publication) Version() int {
	return p.version
}

// CreatedAt returns the creation timestamp
func (p *Publication) CreatedAt() time.Time {
	return p.createdAt
}

// Affiliations returns a copy of the affiliation list in insertion order
func (p *Publication) Affiliations() []valueobjects.AffiliationID {
	return append([]valueobjects.AffiliationID(nil), p.affiliations...)
}

// HasAffiliation checks whether an affiliation is listed
func (p *Publication) HasAffiliation(affID valueobjects.AffiliationID) bool {
	return slices.Contains(p.affiliations, affID)
}

// LinkAffiliation appends an affiliation and records the list it joined
func (p *Publication) LinkAffiliation(affID valueobjects.AffiliationID) error {
	if affID.IsZero() {
		return pkgerrors.NewValidationError("affiliation ID cannot be empty")
	}
	if p.HasAffiliation(affID) {
		return pkgerrors.NewConflictError(
			fmt.Sprintf("affiliation %s already linked to publication %s", affID, p.id))
	}

	existing := p.Affiliations()
	p.affiliations = append(p.affiliations, affID)
	p.touch()

	p.addEvent(events.NewAffiliationLinkedToPublication(p.id, affID, existing, p.updatedAt))
	return nil
}

// UnlinkAffiliation removes an affiliation from the list
func (p *Publication) UnlinkAffiliation(affID valueobjects.AffiliationID) bool {
	idx := slices.Index(p.affiliations, affID)
	if idx < 0 {
		return false
	}
	p.affiliations = slices.Delete(p.affiliations, idx, idx+1)
	p.touch()
	return true
}

// Parent returns the referenced parent publication, if any
func (p *Publication) Parent() (valueobjects.PublicationID, bool) {
	if p.parent == nil {
		return 0, false
	}
	return *p.parent, true
}

// SetParent attaches the publication to a parent. Cycle checks need the
// whole tree and are done by the caller.
func (p *Publication) SetParent(parentID valueobjects.PublicationID) error {
	if parentID == p.id {
		return pkgerrors.NewConflictError("publication cannot reference itself")
	}
	if p.parent != nil {
		return pkgerrors.NewConflictError(
			fmt.Sprintf("publication %s already references %s", p.id, *p.parent))
	}

	p.parent = &parentID
	p.touch()

	p.addEvent(events.NewPublicationReferenced(p.id, parentID, p.updatedAt))
	return nil
}

// ClearParent detaches the publication from its parent
func (p *Publication) ClearParent() {
	if p.parent == nil {
		return
	}
	p.parent = nil
	p.touch()
}

// AddChild records a publication that references this one
func (p *Publication) AddChild(childID valueobjects.PublicationID) {
	p.children[childID] = struct{}{}
	p.touch()
}

// RemoveChild forgets a referencing publication
func (p *Publication) RemoveChild(childID valueobjects.PublicationID) {
	if _, exists := p.children[childID]; !exists {
		return
	}
	delete(p.children, childID)
	p.touch()
}

// Children returns the referencing publications in ascending order
func (p *Publication) Children() []valueobjects.PublicationID {
	ids := make([]valueobjects.PublicationID, 0, len(p.children))
	for id := range p.children {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// GetUncommittedEvents returns events recorded since the last commit
func (p *Publication) GetUncommittedEvents() []events.DomainEvent {
	return p.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (p *Publication) MarkEventsAsCommitted() {
	p.events = []events.DomainEvent{}
}

func (p *Publication) touch() {
	p.updatedAt = time.Now()
	p.version++
}

func (p *Publication) addEvent(event events.DomainEvent) {
	p.events = append(p.events, event)
}
