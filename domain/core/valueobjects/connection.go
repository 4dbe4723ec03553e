package valueobjects

import (
	"encoding/json"
	"fmt"

	pkgerrors "scholargraph/pkg/errors"
)

// ConnectionKey identifies an unordered affiliation pair. A is always the
// lexically smaller endpoint, so both orientations of a pair map to one key.
type ConnectionKey struct {
	A AffiliationID
	B AffiliationID
}

// NewConnectionKey builds the canonical key for the pair (x, y)
func NewConnectionKey(x, y AffiliationID) ConnectionKey {
	if y.Less(x) {
		x, y = y, x
	}
	return ConnectionKey{A: x, B: y}
}

// String returns "a<->b"
func (k ConnectionKey) String() string {
	return k.A.String() + "<->" + k.B.String()
}

// Compare orders keys by A, then B
func (k ConnectionKey) Compare(other ConnectionKey) int {
	if c := k.A.Compare(other.A); c != 0 {
		return c
	}
	return k.B.Compare(other.B)
}

// Connection is an undirected, weighted link between two distinct affiliations.
// The weight counts the publications both affiliations appear on.
type Connection struct {
	key    ConnectionKey
	weight int
}

// NewConnection creates a connection in canonical orientation
func NewConnection(x, y AffiliationID, weight int) (Connection, error) {
	if x.IsZero() || y.IsZero() {
		return Connection{}, pkgerrors.NewInvariantError("connection endpoints cannot be empty")
	}
	if x.Equals(y) {
		return Connection{}, pkgerrors.NewInvariantError(
			fmt.Sprintf("affiliation %s cannot be connected to itself", x))
	}
	if weight < 1 {
		return Connection{}, pkgerrors.NewInvariantError(
			fmt.Sprintf("connection weight must be at least 1, got %d", weight))
	}
	return Connection{key: NewConnectionKey(x, y), weight: weight}, nil
}

// A returns the lexically smaller endpoint
func (c Connection) A() AffiliationID {
	return c.key.A
}

// B returns the lexically larger endpoint
func (c Connection) B() AffiliationID {
	return c.key.B
}

// Key returns the canonical pair key
func (c Connection) Key() ConnectionKey {
	return c.key
}

// Weight returns the co-occurrence count
func (c Connection) Weight() int {
	return c.weight
}

// Involves reports whether id is one of the endpoints
func (c Connection) Involves(id AffiliationID) bool {
	return c.key.A.Equals(id) || c.key.B.Equals(id)
}

// Other returns the endpoint opposite to id
func (c Connection) Other(id AffiliationID) (AffiliationID, bool) {
	switch {
	case c.key.A.Equals(id):
		return c.key.B, true
	case c.key.B.Equals(id):
		return c.key.A, true
	default:
		return AffiliationID{}, false
	}
}

// From orients the connection as a hop leaving id
func (c Connection) From(id AffiliationID) (Hop, bool) {
	other, ok := c.Other(id)
	if !ok {
		return Hop{}, false
	}
	return Hop{From: id, To: other, Weight: c.weight}, true
}

// Equals compares endpoints and weight
func (c Connection) Equals(other Connection) bool {
	return c.key == other.key && c.weight == other.weight
}

// String returns "a<->b (w)"
func (c Connection) String() string {
	return fmt.Sprintf("%s (%d)", c.key, c.weight)
}

type connectionJSON struct {
	AffiliationA AffiliationID `json:"affiliation_a"`
	AffiliationB AffiliationID `json:"affiliation_b"`
	Weight       int           `json:"weight"`
}

// MarshalJSON implements json.Marshaler
func (c Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(connectionJSON{
		AffiliationA: c.key.A,
		AffiliationB: c.key.B,
		Weight:       c.weight,
	})
}

// Hop is a connection traversed from one endpoint to the other
type Hop struct {
	From   AffiliationID `json:"from"`
	To     AffiliationID `json:"to"`
	Weight int           `json:"weight"`
}

// Connection returns the hop's undirected connection
func (h Hop) Connection() Connection {
	return Connection{key: NewConnectionKey(h.From, h.To), weight: h.Weight}
}

// Path is an ordered sequence of hops forming a simple walk. The empty path
// means no path was found, or source and target are the same affiliation.
type Path []Hop

// IsEmpty reports whether the path has no hops
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Source returns the first affiliation of the walk
func (p Path) Source() (AffiliationID, bool) {
	if len(p) == 0 {
		return AffiliationID{}, false
	}
	return p[0].From, true
}

// Target returns the last affiliation of the walk
func (p Path) Target() (AffiliationID, bool) {
	if len(p) == 0 {
		return AffiliationID{}, false
	}
	return p[len(p)-1].To, true
}

// Affiliations lists every affiliation visited, source first
func (p Path) Affiliations() []AffiliationID {
	if len(p) == 0 {
		return nil
	}
	ids := make([]AffiliationID, 0, len(p)+1)
	ids = append(ids, p[0].From)
	for _, hop := range p {
		ids = append(ids, hop.To)
	}
	return ids
}

// Bottleneck returns the smallest weight on the path, 0 for an empty path
func (p Path) Bottleneck() int {
	if len(p) == 0 {
		return 0
	}
	least := p[0].Weight
	for _, hop := range p[1:] {
		if hop.Weight < least {
			least = hop.Weight
		}
	}
	return least
}

// TotalWeight sums the weights on the path
func (p Path) TotalWeight() int {
	total := 0
	for _, hop := range p {
		total += hop.Weight
	}
	return total
}

// IsSimpleWalk checks the hops chain together and never revisit an affiliation
func (p Path) IsSimpleWalk() bool {
	if len(p) == 0 {
		return true
	}
	seen := map[AffiliationID]bool{p[0].From: true}
	for i, hop := range p {
		if i > 0 && !p[i-1].To.Equals(hop.From) {
			return false
		}
		if seen[hop.To] {
			return false
		}
		seen[hop.To] = true
	}
	return true
}

// Step is a hop annotated with the cumulative distance from the source
type Step struct {
	Hop
	Distance int `json:"distance"`
}

// PathWithDistance is a path whose steps carry cumulative distance
type PathWithDistance []Step

// NewPathWithDistance annotates each hop with the running total of weights
func NewPathWithDistance(path Path) PathWithDistance {
	if len(path) == 0 {
		return PathWithDistance{}
	}
	steps := make(PathWithDistance, 0, len(path))
	total := 0
	for _, hop := range path {
		total += hop.Weight
		steps = append(steps, Step{Hop: hop, Distance: total})
	}
	return steps
}

// Path strips the distances
func (p PathWithDistance) Path() Path {
	path := make(Path, 0, len(p))
	for _, step := range p {
		path = append(path, step.Hop)
	}
	return path
}

// Distance returns the total distance, 0 for an empty path
func (p PathWithDistance) Distance() int {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].Distance
}
