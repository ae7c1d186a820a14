package entities

// City represents one French commune from the static cities dataset
type City struct {
	Name           string      `json:"name"`
	Slug           string      `json:"slug"`
	Zip            string      `json:"zip"`
	DepartmentName string      `json:"department_name"`
	DepartmentCode string      `json:"department_code"`
	Region         string      `json:"region"`
	Coordinates    Coordinates `json:"coordinates"`
	Population     int         `json:"population"`
}

// Coordinates represents geographical coordinates in decimal degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NearbyCity is a city annotated with its distance (km) to a reference city
type NearbyCity struct {
	City
	Distance float64 `json:"distance"`
}
