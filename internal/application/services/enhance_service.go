package services

import (
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/repositories"
)

// Google Maps place URLs embed coordinates as !3d{lat}!4d{lng}
var (
	gmapsLatRe = regexp.MustCompile(`!3d(-?\d+\.?\d*)`)
	gmapsLngRe = regexp.MustCompile(`!4d(-?\d+\.?\d*)`)
	idZipRe    = regexp.MustCompile(`-\d{5}(-\d+)?$`)
)

// cityBox is an approximate bounding box for one covered city
type cityBox struct {
	Name   string
	Zip    string
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

// metroAreas are checked before the tighter city boxes so suburbs fold
// into their metro. Most of the scraped data is Lyon.
var metroAreas = []cityBox{
	{Name: "Lyon", Zip: "69000", LatMin: 45.65, LatMax: 45.85, LngMin: 4.70, LngMax: 4.95},
	{Name: "Bordeaux", Zip: "33000", LatMin: 44.75, LatMax: 44.95, LngMin: -0.75, LngMax: 0.75},
}

var cityBoxes = []cityBox{
	{Name: "Lyon", Zip: "69000", LatMin: 45.70, LatMax: 45.82, LngMin: 4.75, LngMax: 4.92},
	{Name: "Paris", Zip: "75000", LatMin: 48.80, LatMax: 48.92, LngMin: 2.20, LngMax: 2.50},
	{Name: "Bordeaux", Zip: "33000", LatMin: 44.78, LatMax: 44.92, LngMin: -0.70, LngMax: -0.50},
	{Name: "Marseille", Zip: "13000", LatMin: 43.20, LatMax: 43.40, LngMin: 5.30, LngMax: 5.50},
	{Name: "Toulouse", Zip: "31000", LatMin: 43.55, LatMax: 43.70, LngMin: 1.35, LngMax: 1.55},
	{Name: "Nice", Zip: "06000", LatMin: 43.65, LatMax: 43.75, LngMin: 7.20, LngMax: 7.35},
	{Name: "Villeurbanne", Zip: "69100", LatMin: 45.76, LatMax: 45.79, LngMin: 4.87, LngMax: 4.92},
	{Name: "Arcachon", Zip: "33120", LatMin: 44.60, LatMax: 44.70, LngMin: -1.20, LngMax: -1.10},
	{Name: "La Teste-de-Buch", Zip: "33260", LatMin: 44.60, LatMax: 44.68, LngMin: -1.16, LngMax: -1.08},
}

func (b cityBox) contains(lat, lng float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lng >= b.LngMin && lng <= b.LngMax
}

// EnhanceSummary reports one enhancement pass
type EnhanceSummary struct {
	Processed      int
	CoordinatesSet int
	CitiesFixed    int
}

// EnhanceService post-processes persisted listings: coordinates are
// recovered from the maps URL, and listings whose city resolution fell
// through to the sentinel get a second chance via coordinate lookup.
type EnhanceService struct {
	repo repositories.ListingRepository
}

// NewEnhanceService creates an enhancer over the given repository
func NewEnhanceService(repo repositories.ListingRepository) *EnhanceService {
	return &EnhanceService{repo: repo}
}

// Enhance runs one whole-collection pass and persists the result
func (s *EnhanceService) Enhance() (*EnhanceSummary, error) {
	existing := s.repo.All()
	summary := &EnhanceSummary{Processed: len(existing)}

	updated := make([]entities.Listing, len(existing))
	copy(updated, existing)

	for i := range updated {
		lat, lng := extractLatLng(updated[i].GmapsURL)
		if lat == 0 || lng == 0 {
			continue
		}
		updated[i].Lat = lat
		updated[i].Lng = lng
		summary.CoordinatesSet++

		if updated[i].City != sentinelCity && updated[i].ZipCode != sentinelZip {
			continue
		}
		box, ok := cityFromCoords(lat, lng)
		if !ok {
			continue
		}
		updated[i].City = box.Name
		updated[i].ZipCode = box.Zip
		base := idZipRe.ReplaceAllString(updated[i].ID, "")
		updated[i].ID = base + "-" + box.Zip
		summary.CitiesFixed++
	}

	if err := s.repo.Replace(updated); err != nil {
		return nil, err
	}

	log.Info().
		Int("processed", summary.Processed).
		Int("coordinates_set", summary.CoordinatesSet).
		Int("cities_fixed", summary.CitiesFixed).
		Msg("enhanced listings")

	return summary, nil
}

// extractLatLng pulls coordinates out of a maps place URL, defaulting
// to (0, 0) when absent
func extractLatLng(gmapsURL string) (float64, float64) {
	if gmapsURL == "" {
		return 0, 0
	}
	latMatch := gmapsLatRe.FindStringSubmatch(gmapsURL)
	lngMatch := gmapsLngRe.FindStringSubmatch(gmapsURL)
	if latMatch == nil || lngMatch == nil {
		return 0, 0
	}
	lat, errLat := strconv.ParseFloat(latMatch[1], 64)
	lng, errLng := strconv.ParseFloat(lngMatch[1], 64)
	if errLat != nil || errLng != nil {
		return 0, 0
	}
	return lat, lng
}

func cityFromCoords(lat, lng float64) (cityBox, bool) {
	for _, box := range metroAreas {
		if box.contains(lat, lng) {
			return box, true
		}
	}
	for _, box := range cityBoxes {
		if box.contains(lat, lng) {
			return box, true
		}
	}
	return cityBox{}, false
}
