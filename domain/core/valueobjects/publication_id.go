package valueobjects

import (
	"strconv"

	pkgerrors "scholargraph/pkg/errors"
)

// PublicationID is a unique publication identifier
type PublicationID uint64

// ParsePublicationID parses a decimal publication identifier
func ParsePublicationID(raw string) (PublicationID, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.NewValidationError("publication ID must be a non-negative integer").WithCause(err)
	}
	return PublicationID(value), nil
}

// String returns the decimal representation
func (id PublicationID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Year is a publication year
type Year uint16

// NewYear validates a year against the supported range
func NewYear(year int, minYear, maxYear int) (Year, error) {
	if year < minYear || year > maxYear {
		return 0, pkgerrors.NewValidationError("year out of range").
			WithDetail("min", minYear).
			WithDetail("max", maxYear)
	}
	return Year(year), nil
}

// Int returns the year as an int
func (y Year) Int() int {
	return int(y)
}
