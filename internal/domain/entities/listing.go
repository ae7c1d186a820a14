package entities

import "encoding/json"

// Listing represents one business/practice record, the unit persisted by
// the ingestion pipeline. JSON field names match the flat listings-db file.
type Listing struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ServiceID       string          `json:"serviceId"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	ZipCode         string          `json:"zipCode"`
	Lat             float64         `json:"lat"`
	Lng             float64         `json:"lng"`
	Phone           string          `json:"phone"`
	Website         string          `json:"website"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"reviewCount"`
	ReviewsPerScore map[string]int  `json:"reviewsPerScore,omitempty"`
	ReviewsLink     string          `json:"reviewsLink,omitempty"`
	ImageURL        string          `json:"imageUrl"`
	GmapsURL        string          `json:"gmapsUrl"`
	Verified        bool            `json:"verified,omitempty"`
	WorkingHours    json.RawMessage `json:"workingHours,omitempty"`
	BookingURL      string          `json:"bookingUrl,omitempty"`
}

// CentreResult is the listing view shape handed to the rendering layer.
// IsReal distinguishes scraped listings from synthetic placeholders.
type CentreResult struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Address         string         `json:"address"`
	Rating          float64        `json:"rating"`
	ReviewCount     int            `json:"reviewCount"`
	Verified        bool           `json:"verified"`
	Phone           string         `json:"phone"`
	ImageURL        string         `json:"imageUrl"`
	Slug            string         `json:"slug"`
	IsReal          bool           `json:"isReal"`
	ReviewsPerScore map[string]int `json:"reviewsPerScore,omitempty"`
	ReviewsLink     string         `json:"reviewsLink,omitempty"`
	GmapsURL        string         `json:"gmapsUrl,omitempty"`
	Lat             float64        `json:"lat,omitempty"`
	Lng             float64        `json:"lng,omitempty"`
	Zip             string         `json:"zip,omitempty"`
}
