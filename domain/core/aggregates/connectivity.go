package aggregates

import (
	"fmt"
	"slices"
	"time"

	"scholargraph/domain/core/valueobjects"
	"scholargraph/domain/events"
	pkgerrors "scholargraph/pkg/errors"
)

// link is the single edge record for an unordered pair. Both endpoints'
// adjacency maps point at the same link.
type link struct {
	key    valueobjects.ConnectionKey
	weight int
}

func (l *link) connection() valueobjects.Connection {
	conn, _ := valueobjects.NewConnection(l.key.A, l.key.B, l.weight)
	return conn
}

// ConnectivityIndex is the co-authorship graph between affiliations. An edge
// exists for every pair that appeared together on at least one publication
// and its weight counts those publications.
//
// The index is not safe for concurrent use; callers serialise access.
type ConnectivityIndex struct {
	adjacency map[valueobjects.AffiliationID]map[valueobjects.AffiliationID]*link
	edgeCount int

	events []events.DomainEvent
}

// NewConnectivityIndex creates an empty index
func NewConnectivityIndex() *ConnectivityIndex {
	return &ConnectivityIndex{
		adjacency: make(map[valueobjects.AffiliationID]map[valueobjects.AffiliationID]*link),
		events:    []events.DomainEvent{},
	}
}

// RecordAffiliations records one co-occurrence of every pair in ids
func (c *ConnectivityIndex) RecordAffiliations(pubID valueobjects.PublicationID, ids []valueobjects.AffiliationID) error {
	if err := checkDistinct(ids); err != nil {
		return err
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			c.strengthen(pubID, ids[i], ids[j], 1)
		}
	}
	return nil
}

// LinkAffiliation records newID joining a publication that already lists
// existing. newID is paired with each existing affiliation once.
func (c *ConnectivityIndex) LinkAffiliation(
	pubID valueobjects.PublicationID,
	newID valueobjects.AffiliationID,
	existing []valueobjects.AffiliationID,
) error {
	if newID.IsZero() {
		return pkgerrors.NewInvariantError("affiliation ID cannot be empty")
	}
	if err := checkDistinct(existing); err != nil {
		return err
	}
	if slices.Contains(existing, newID) {
		return pkgerrors.NewInvariantError(
			fmt.Sprintf("affiliation %s is already listed on publication %s", newID, pubID))
	}

	for _, other := range existing {
		c.strengthen(pubID, newID, other, 1)
	}
	return nil
}

// Strengthen adds by to the weight of the (a, b) connection, creating it when absent
func (c *ConnectivityIndex) Strengthen(pubID valueobjects.PublicationID, a, b valueobjects.AffiliationID, by int) error {
	if a.IsZero() || b.IsZero() {
		return pkgerrors.NewInvariantError("affiliation ID cannot be empty")
	}
	if a.Equals(b) {
		return pkgerrors.NewInvariantError(
			fmt.Sprintf("affiliation %s cannot be connected to itself", a))
	}
	if by < 1 {
		return pkgerrors.NewInvariantError(
			fmt.Sprintf("connection weight can only grow, got increment %d", by))
	}

	c.strengthen(pubID, a, b, by)
	return nil
}

// RemoveAffiliation drops every connection incident to id and returns how
// many were removed. Unknown ids are a no-op.
func (c *ConnectivityIndex) RemoveAffiliation(id valueobjects.AffiliationID) int {
	incident, exists := c.adjacency[id]
	if !exists {
		return 0
	}

	for other := range incident {
		neighbours := c.adjacency[other]
		delete(neighbours, id)
		if len(neighbours) == 0 {
			delete(c.adjacency, other)
		}
	}
	removed := len(incident)
	delete(c.adjacency, id)
	c.edgeCount -= removed

	c.addEvent(events.NewAffiliationDisconnected(id, removed, time.Now()))
	return removed
}

// ConnectionsOf returns the connections incident to id sorted by the other
// endpoint. Unknown or isolated ids yield an empty slice.
func (c *ConnectivityIndex) ConnectionsOf(id valueobjects.AffiliationID) []valueobjects.Connection {
	hops := c.Neighbors(id)
	conns := make([]valueobjects.Connection, 0, len(hops))
	for _, hop := range hops {
		conns = append(conns, hop.Connection())
	}
	return conns
}

// Neighbors returns the hops leaving id, sorted by destination
func (c *ConnectivityIndex) Neighbors(id valueobjects.AffiliationID) []valueobjects.Hop {
	incident := c.adjacency[id]
	hops := make([]valueobjects.Hop, 0, len(incident))
	for other, l := range incident {
		hops = append(hops, valueobjects.Hop{From: id, To: other, Weight: l.weight})
	}
	slices.SortFunc(hops, func(x, y valueobjects.Hop) int {
		return x.To.Compare(y.To)
	})
	return hops
}

// AllConnections returns every connection once, sorted by (a, b)
func (c *ConnectivityIndex) AllConnections() []valueobjects.Connection {
	conns := make([]valueobjects.Connection, 0, c.edgeCount)
	for id, incident := range c.adjacency {
		for other, l := range incident {
			if id.Less(other) {
				conns = append(conns, l.connection())
			}
		}
	}
	slices.SortFunc(conns, func(x, y valueobjects.Connection) int {
		return x.Key().Compare(y.Key())
	})
	return conns
}

// ConnectionBetween looks up the connection for a pair in either orientation
func (c *ConnectivityIndex) ConnectionBetween(a, b valueobjects.AffiliationID) (valueobjects.Connection, bool) {
	l, exists := c.adjacency[a][b]
	if !exists {
		return valueobjects.Connection{}, false
	}
	return l.connection(), true
}

// Degree returns the number of connections incident to id
func (c *ConnectivityIndex) Degree(id valueobjects.AffiliationID) int {
	return len(c.adjacency[id])
}

// ConnectedAffiliationCount returns how many affiliations have at least one connection
func (c *ConnectivityIndex) ConnectedAffiliationCount() int {
	return len(c.adjacency)
}

// ConnectionCount returns the number of logical connections
func (c *ConnectivityIndex) ConnectionCount() int {
	return c.edgeCount
}

// Clear drops every connection
func (c *ConnectivityIndex) Clear() {
	c.adjacency = make(map[valueobjects.AffiliationID]map[valueobjects.AffiliationID]*link)
	c.edgeCount = 0
}

// Validate checks symmetry, shared edge records and the edge count
func (c *ConnectivityIndex) Validate() error {
	seen := 0
	for id, incident := range c.adjacency {
		if len(incident) == 0 {
			return pkgerrors.NewInvariantError(fmt.Sprintf("affiliation %s has an empty adjacency entry", id))
		}
		for other, l := range incident {
			if id.Equals(other) {
				return pkgerrors.NewInvariantError(fmt.Sprintf("self-loop on %s", id))
			}
			if l == nil || l.weight < 1 {
				return pkgerrors.NewInvariantError(fmt.Sprintf("connection %s<->%s has no positive weight", id, other))
			}
			if l.key != valueobjects.NewConnectionKey(id, other) {
				return pkgerrors.NewInvariantError(fmt.Sprintf("connection %s<->%s is keyed as %s", id, other, l.key))
			}
			if back := c.adjacency[other][id]; back != l {
				return pkgerrors.NewInvariantError(fmt.Sprintf("connection %s<->%s is not symmetric", id, other))
			}
			if id.Less(other) {
				seen++
			}
		}
	}
	if seen != c.edgeCount {
		return pkgerrors.NewInvariantError(
			fmt.Sprintf("edge count mismatch: tracked %d, found %d", c.edgeCount, seen))
	}
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (c *ConnectivityIndex) GetUncommittedEvents() []events.DomainEvent {
	uncommitted := make([]events.DomainEvent, len(c.events))
	copy(uncommitted, c.events)
	return uncommitted
}

// MarkEventsAsCommitted clears all uncommitted events
func (c *ConnectivityIndex) MarkEventsAsCommitted() {
	c.events = []events.DomainEvent{}
}

// Private helper methods

func (c *ConnectivityIndex) strengthen(pubID valueobjects.PublicationID, a, b valueobjects.AffiliationID, by int) {
	now := time.Now()
	if l, exists := c.adjacency[a][b]; exists {
		l.weight += by
		c.addEvent(events.NewConnectionStrengthened(l.key, pubID, l.weight, now))
		return
	}

	l := &link{key: valueobjects.NewConnectionKey(a, b), weight: by}
	c.attach(a, b, l)
	c.attach(b, a, l)
	c.edgeCount++
	c.addEvent(events.NewConnectionCreated(l.key, pubID, now))
}

func (c *ConnectivityIndex) attach(from, to valueobjects.AffiliationID, l *link) {
	incident, exists := c.adjacency[from]
	if !exists {
		incident = make(map[valueobjects.AffiliationID]*link)
		c.adjacency[from] = incident
	}
	incident[to] = l
}

func (c *ConnectivityIndex) addEvent(event events.DomainEvent) {
	c.events = append(c.events, event)
}

// checkDistinct rejects empty and repeated ids in one co-occurrence
func checkDistinct(ids []valueobjects.AffiliationID) error {
	seen := make(map[valueobjects.AffiliationID]struct{}, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			return pkgerrors.NewInvariantError("affiliation ID cannot be empty")
		}
		if _, dup := seen[id]; dup {
			return pkgerrors.NewInvariantError(
				fmt.Sprintf("affiliation %s appears more than once in one co-occurrence", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}
