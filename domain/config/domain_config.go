package config

import "fmt"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Record limits
	MaxAffiliations               int
	MaxPublications               int
	MaxAffiliationsPerPublication int

	// Name constraints
	MinNameLength int
	MaxNameLength int

	// Identifier constraints
	MaxAffiliationIDLength int

	// Year constraints
	MinYear int
	MaxYear int

	// MaxCoordinate bounds the absolute value of stored coordinates
	MaxCoordinate int

	// Query limits
	NearestAffiliationsLimit int

	// Validation settings
	AllowEmptyNames bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxAffiliations:               100000,
		MaxPublications:               500000,
		MaxAffiliationsPerPublication: 256,

		MinNameLength: 1,
		MaxNameLength: 200,

		MaxAffiliationIDLength: 64,

		MinYear: 0,
		MaxYear: 9999,

		MaxCoordinate: 1_000_000_000,

		NearestAffiliationsLimit: 3,

		AllowEmptyNames: false,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Tighter limits for production
	config.MaxAffiliations = 50000
	config.MaxPublications = 250000
	config.MaxAffiliationsPerPublication = 128

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More permissive for development
	config.MaxAffiliations = 1000000
	config.MaxPublications = 5000000
	config.AllowEmptyNames = true
	config.MinNameLength = 0

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.MaxAffiliations <= 0 || c.MaxPublications <= 0 {
		return fmt.Errorf("record limits must be positive")
	}
	if c.MaxAffiliationsPerPublication <= 0 {
		return fmt.Errorf("max affiliations per publication must be positive")
	}
	if c.MinNameLength < 0 || c.MaxNameLength < c.MinNameLength {
		return fmt.Errorf("invalid name length bounds: %d..%d", c.MinNameLength, c.MaxNameLength)
	}
	if c.MaxAffiliationIDLength <= 0 {
		return fmt.Errorf("max affiliation id length must be positive")
	}
	if c.MaxYear < c.MinYear {
		return fmt.Errorf("invalid year bounds: %d..%d", c.MinYear, c.MaxYear)
	}
	if c.MaxCoordinate <= 0 {
		return fmt.Errorf("max coordinate must be positive")
	}
	if c.NearestAffiliationsLimit <= 0 {
		return fmt.Errorf("nearest affiliations limit must be positive")
	}
	return nil
}
