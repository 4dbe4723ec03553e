package valueobjects

import (
	"encoding/json"
	"math"
	"math/big"

	"scholargraph/domain/config"
	pkgerrors "scholargraph/pkg/errors"
)

// Coord is a value object representing an integer position on the 2-D plane
type Coord struct {
	x int
	y int
}

// NewCoord creates a coordinate
func NewCoord(x, y int) Coord {
	return Coord{x: x, y: y}
}

// NewCoordWithConfig creates a coordinate for storage. Both components must
// lie within [-MaxCoordinate, MaxCoordinate].
func NewCoordWithConfig(x, y int, cfg *config.DomainConfig) (Coord, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	limit := cfg.MaxCoordinate
	if x < -limit || x > limit || y < -limit || y > limit {
		return Coord{}, pkgerrors.NewValidationError("coordinate out of range").
			WithDetail("max_abs", limit)
	}
	return Coord{x: x, y: y}, nil
}

// X returns the X coordinate
func (c Coord) X() int {
	return c.x
}

// Y returns the Y coordinate
func (c Coord) Y() int {
	return c.y
}

// DistanceTo calculates the Euclidean distance to another coordinate
func (c Coord) DistanceTo(other Coord) float64 {
	dx := float64(c.x) - float64(other.x)
	dy := float64(c.y) - float64(other.y)
	return math.Sqrt(dx*dx + dy*dy)
}

// SquaredDistanceTo returns the exact squared Euclidean distance. It does
// not overflow for any pair of int coordinates.
func (c Coord) SquaredDistanceTo(other Coord) *big.Int {
	dx := new(big.Int).Sub(big.NewInt(int64(c.x)), big.NewInt(int64(other.x)))
	dy := new(big.Int).Sub(big.NewInt(int64(c.y)), big.NewInt(int64(other.y)))
	dx.Mul(dx, dx)
	dy.Mul(dy, dy)
	return dx.Add(dx, dy)
}

// CompareDistance returns -1, 0 or +1 as a is closer to, as close as, or
// farther from c than b
func (c Coord) CompareDistance(a, b Coord) int {
	return a.SquaredDistanceTo(c).Cmp(b.SquaredDistanceTo(c))
}

// DistanceFromOrigin calculates the Euclidean distance to (0, 0)
func (c Coord) DistanceFromOrigin() float64 {
	return c.DistanceTo(Coord{})
}

// Equals checks if two coordinates are equal
func (c Coord) Equals(other Coord) bool {
	return c.x == other.x && c.y == other.y
}

// Less orders coordinates by y first, then x
func (c Coord) Less(other Coord) bool {
	if c.y != other.y {
		return c.y < other.y
	}
	return c.x < other.x
}

type coordJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MarshalJSON implements json.Marshaler
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal(coordJSON{X: c.x, Y: c.y})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Coord) UnmarshalJSON(data []byte) error {
	var raw coordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.x, c.y = raw.X, raw.Y
	return nil
}
