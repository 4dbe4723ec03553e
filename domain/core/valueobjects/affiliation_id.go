package valueobjects

import (
	"encoding/json"
	"slices"
	"strings"
	"unicode"

	"scholargraph/domain/config"
	pkgerrors "scholargraph/pkg/errors"
)

// AffiliationID is a value object representing a unique affiliation identifier.
// Identifiers are opaque strings chosen by the caller and ordered lexically.
type AffiliationID struct {
	value string
}

// NewAffiliationID creates an AffiliationID using the default configuration
func NewAffiliationID(id string) (AffiliationID, error) {
	return NewAffiliationIDWithConfig(id, config.DefaultDomainConfig())
}

// NewAffiliationIDWithConfig creates an AffiliationID with validation and configuration
func NewAffiliationIDWithConfig(id string, cfg *config.DomainConfig) (AffiliationID, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return AffiliationID{}, pkgerrors.NewValidationError("affiliation ID cannot be empty")
	}
	if len(id) > cfg.MaxAffiliationIDLength {
		return AffiliationID{}, pkgerrors.NewValidationError("affiliation ID is too long").
			WithDetail("max_length", cfg.MaxAffiliationIDLength)
	}
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return AffiliationID{}, pkgerrors.NewValidationError("affiliation ID cannot contain whitespace")
	}
	return AffiliationID{value: id}, nil
}

// String returns the string representation of the AffiliationID
func (id AffiliationID) String() string {
	return id.value
}

// Equals checks if two AffiliationIDs are equal
func (id AffiliationID) Equals(other AffiliationID) bool {
	return id.value == other.value
}

// Less reports whether id sorts before other
func (id AffiliationID) Less(other AffiliationID) bool {
	return id.value < other.value
}

// Compare returns -1, 0 or +1 depending on the lexical order of the two IDs
func (id AffiliationID) Compare(other AffiliationID) int {
	return strings.Compare(id.value, other.value)
}

// IsZero checks if the AffiliationID is the zero value
func (id AffiliationID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id AffiliationID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *AffiliationID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return pkgerrors.NewValidationError("AffiliationID must be a string")
	}
	parsed, err := NewAffiliationID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// SortAffiliationIDs sorts ids in place in ascending order
func SortAffiliationIDs(ids []AffiliationID) {
	slices.SortFunc(ids, func(a, b AffiliationID) int {
		return a.Compare(b)
	})
}
