package repositories

import (
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
)

// CityRepository provides read-only access to the static city registry.
// Implementations load the dataset once and are safe for concurrent use.
type CityRepository interface {
	// GetBySlug returns the city for a slug, or a NOT_FOUND error
	GetBySlug(slug string) (entities.City, error)
	// Top returns the limit most populated cities, descending by population
	Top(limit int) []entities.City
	// Search matches query against city names, case- and accent-insensitive,
	// in population-descending order
	Search(query string, limit int) []entities.City
	// ByDepartment returns every city in a department, population order
	ByDepartment(code string) []entities.City
	// ByRegion returns every city in a region, population order
	ByRegion(region string) []entities.City
	// Slugs returns all city slugs in population order
	Slugs() []string
	// Count returns the number of cities in the registry
	Count() int
	// All returns the full registry in population order
	All() []entities.City
}

// ServiceRepository provides access to the fixed service catalog
type ServiceRepository interface {
	// GetBySlug returns the service for a slug, or a NOT_FOUND error
	GetBySlug(slug string) (entities.Service, error)
	// All returns every service
	All() []entities.Service
	// Slugs returns all service slugs
	Slugs() []string
}
