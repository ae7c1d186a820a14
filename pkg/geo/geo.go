// Package geo provides great-circle distance and city proximity ranking.
// All functions are pure and total over finite inputs.
package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
)

const earthRadiusKm = 6371.0

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// CalculateDistance returns the Haversine distance in kilometers between
// two points given as latitude/longitude in decimal degrees.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// GetNearbyCities returns the limit closest cities to city, ascending by
// distance. The reference city itself is excluded by slug.
func GetNearbyCities(city entities.City, allCities []entities.City, limit int) []entities.NearbyCity {
	nearby := withDistances(city, allCities)
	if limit < 0 {
		limit = 0
	}
	if limit > len(nearby) {
		limit = len(nearby)
	}
	return nearby[:limit]
}

// GetCitiesWithinRadius returns every city within radiusKm of city,
// ascending by distance. The reference city itself is excluded by slug.
func GetCitiesWithinRadius(city entities.City, allCities []entities.City, radiusKm float64) []entities.NearbyCity {
	nearby := withDistances(city, allCities)
	out := nearby[:0]
	for _, n := range nearby {
		if n.Distance <= radiusKm {
			out = append(out, n)
		}
	}
	return out
}

func withDistances(city entities.City, allCities []entities.City) []entities.NearbyCity {
	nearby := make([]entities.NearbyCity, 0, len(allCities))
	for _, c := range allCities {
		if c.Slug == city.Slug {
			continue
		}
		nearby = append(nearby, entities.NearbyCity{
			City: c,
			Distance: CalculateDistance(
				city.Coordinates.Lat, city.Coordinates.Lng,
				c.Coordinates.Lat, c.Coordinates.Lng,
			),
		})
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})
	return nearby
}

// FormatDistance renders a distance for display: meters below 1 km,
// whole kilometers otherwise. Halves round away from zero.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int64(math.Round(km*1000)))
	}
	return fmt.Sprintf("%d km", int64(math.Round(km)))
}
