package dataset

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/repositories"
	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/slug"
)

// rawCity accepts the field-name variants found across dataset versions.
// Postal code has appeared as zip, zipCode and postal_code; coordinates
// either flat or nested under "coordinates".
type rawCity struct {
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Zip            string  `json:"zip"`
	ZipCode        string  `json:"zipCode"`
	PostalCode     string  `json:"postal_code"`
	DepartmentName string  `json:"department_name"`
	DepartmentCode string  `json:"department_code"`
	Region         string  `json:"region"`
	Population     int     `json:"population"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Coordinates    *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"coordinates"`
}

func (r rawCity) toCity() entities.City {
	c := entities.City{
		Name:           r.Name,
		Slug:           r.Slug,
		Zip:            r.Zip,
		DepartmentName: r.DepartmentName,
		DepartmentCode: r.DepartmentCode,
		Region:         r.Region,
		Population:     r.Population,
		Coordinates:    entities.Coordinates{Lat: r.Lat, Lng: r.Lng},
	}
	if c.Zip == "" {
		c.Zip = r.ZipCode
	}
	if c.Zip == "" {
		c.Zip = r.PostalCode
	}
	if r.Coordinates != nil {
		c.Coordinates = entities.Coordinates{Lat: r.Coordinates.Lat, Lng: r.Coordinates.Lng}
	}
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return c
}

// majorCity canonicalizes the slug of a flagship city: the matching
// record (by existing slug, or by name plus postal-code prefix) gets the
// simple one-word slug regardless of what the source dataset carried.
type majorCity struct {
	Name       string
	ZipPrefix  string
	SimpleSlug string
}

var majorCities = []majorCity{
	{Name: "Paris", ZipPrefix: "750", SimpleSlug: "paris"},
	{Name: "Lyon", ZipPrefix: "690", SimpleSlug: "lyon"},
	{Name: "Marseille", ZipPrefix: "130", SimpleSlug: "marseille"},
	{Name: "Nice", ZipPrefix: "060", SimpleSlug: "nice"},
	{Name: "Bordeaux", ZipPrefix: "330", SimpleSlug: "bordeaux"},
}

// patchMajorCitySlugs returns a new collection with flagship slugs
// canonicalized. The input slice is not mutated.
func patchMajorCitySlugs(cities []entities.City) []entities.City {
	out := make([]entities.City, len(cities))
	copy(out, cities)

	for _, major := range majorCities {
		for i := range out {
			if out[i].Slug == major.SimpleSlug ||
				(strings.EqualFold(out[i].Name, major.Name) && strings.HasPrefix(out[i].Zip, major.ZipPrefix)) {
				out[i].Slug = major.SimpleSlug
				break
			}
		}
	}
	return out
}

// normalizeCities sorts descending by population, deduplicates by
// lowercased name (first seen, hence most populated, wins), re-sorts and
// applies the flagship slug patch.
func normalizeCities(raw []rawCity) []entities.City {
	cities := make([]entities.City, 0, len(raw))
	for _, r := range raw {
		cities = append(cities, r.toCity())
	}

	sort.SliceStable(cities, func(i, j int) bool {
		return cities[i].Population > cities[j].Population
	})

	seen := make(map[string]struct{}, len(cities))
	deduped := cities[:0]
	for _, c := range cities {
		key := strings.ToLower(c.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, c)
	}

	// dedup preserves order, but re-sort so a future dedup strategy
	// cannot silently break the population ordering
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Population > deduped[j].Population
	})

	return patchMajorCitySlugs(deduped)
}

// CityDataset is an immutable in-memory city registry
type CityDataset struct {
	cities []entities.City
	bySlug map[string]entities.City
}

var _ repositories.CityRepository = (*CityDataset)(nil)

// NewCityDataset builds a registry from an already-normalized collection
func NewCityDataset(cities []entities.City) *CityDataset {
	bySlug := make(map[string]entities.City, len(cities))
	for _, c := range cities {
		bySlug[c.Slug] = c
	}
	return &CityDataset{cities: cities, bySlug: bySlug}
}

// LoadCityDataset reads the static cities JSON file and builds the registry
func LoadCityDataset(path string) (*CityDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewInternalError("reading cities dataset", err)
	}

	var raw []rawCity
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewValidationError("parsing cities dataset", err)
	}

	return NewCityDataset(normalizeCities(raw)), nil
}

// GetBySlug returns the city for a slug via direct map lookup
func (d *CityDataset) GetBySlug(s string) (entities.City, error) {
	c, ok := d.bySlug[s]
	if !ok {
		return entities.City{}, apperrors.NewNotFoundError("city not found: " + s)
	}
	return c, nil
}

// Top returns the limit most populated cities
func (d *CityDataset) Top(limit int) []entities.City {
	if limit < 0 {
		limit = 0
	}
	if limit > len(d.cities) {
		limit = len(d.cities)
	}
	return d.cities[:limit]
}

// Search matches query against city names, case- and accent-insensitive
func (d *CityDataset) Search(query string, limit int) []entities.City {
	normalized := slug.StripAccents(strings.ToLower(query))

	var out []entities.City
	for _, c := range d.cities {
		if len(out) >= limit {
			break
		}
		if strings.Contains(slug.StripAccents(strings.ToLower(c.Name)), normalized) {
			out = append(out, c)
		}
	}
	return out
}

// ByDepartment returns every city in a department
func (d *CityDataset) ByDepartment(code string) []entities.City {
	var out []entities.City
	for _, c := range d.cities {
		if c.DepartmentCode == code {
			out = append(out, c)
		}
	}
	return out
}

// ByRegion returns every city in a region
func (d *CityDataset) ByRegion(region string) []entities.City {
	var out []entities.City
	for _, c := range d.cities {
		if c.Region == region {
			out = append(out, c)
		}
	}
	return out
}

// Slugs returns all city slugs in population order
func (d *CityDataset) Slugs() []string {
	out := make([]string, len(d.cities))
	for i, c := range d.cities {
		out[i] = c.Slug
	}
	return out
}

// Count returns the number of cities in the registry
func (d *CityDataset) Count() int {
	return len(d.cities)
}

// All returns the full registry in population order
func (d *CityDataset) All() []entities.City {
	return d.cities
}
