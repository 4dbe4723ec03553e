package valueobjects

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"scholargraph/domain/config"
	pkgerrors "scholargraph/pkg/errors"
)

// Name is a value object for affiliation names and publication titles
type Name struct {
	value string
}

// NewName creates a name with validation using default configuration
func NewName(raw string) (Name, error) {
	return NewNameWithConfig(raw, config.DefaultDomainConfig())
}

// NewNameWithConfig creates a name with validation and configuration
func NewNameWithConfig(raw string, cfg *config.DomainConfig) (Name, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	raw = strings.TrimSpace(raw)

	if raw == "" && !cfg.AllowEmptyNames {
		return Name{}, pkgerrors.NewValidationError("name cannot be empty")
	}

	length := utf8.RuneCountInString(raw)
	if length < cfg.MinNameLength {
		return Name{}, pkgerrors.NewValidationError(
			fmt.Sprintf("name too short: minimum %d characters required", cfg.MinNameLength))
	}

	if length > cfg.MaxNameLength {
		return Name{}, pkgerrors.NewValidationError(
			fmt.Sprintf("name exceeds maximum length of %d characters", cfg.MaxNameLength))
	}

	return Name{value: raw}, nil
}

// String returns the name text
func (n Name) String() string {
	return n.value
}

// IsEmpty checks if the name is empty
func (n Name) IsEmpty() bool {
	return n.value == ""
}

// Equals checks if two names are equal
func (n Name) Equals(other Name) bool {
	return n.value == other.value
}

// Less orders names byte-wise, which is what alphabetical listings use
func (n Name) Less(other Name) bool {
	return n.value < other.value
}

// Summary returns a truncated form of the name
func (n Name) Summary(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	if utf8.RuneCountInString(n.value) <= maxLength {
		return n.value
	}

	if maxLength <= 3 {
		return string([]rune(n.value)[:maxLength])
	}
	runes := []rune(n.value)
	return string(runes[:maxLength-3]) + "..."
}

// MarshalJSON implements json.Marshaler
func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}
