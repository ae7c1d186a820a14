package entities

// Service represents one of the fixed treatment categories the directory
// organizes listings by
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	SEOKeyword  string `json:"seoKeyword"`
	HeroImage   string `json:"heroImage"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
