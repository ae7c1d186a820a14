package dataset

import (
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/repositories"
	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
)

// services is the fixed catalog of treatment categories. Four entries,
// hard-coded; the scale does not warrant a lookup map.
var services = []entities.Service{
	{
		ID:          "laser",
		Name:        "Épilation Laser",
		Slug:        "epilation-laser",
		SEOKeyword:  "épilation laser définitive",
		HeroImage:   "/images/services/epilation-laser.jpg",
		Description: "Découvrez les meilleurs centres d'épilation laser près de chez vous. Technologie de pointe pour une peau lisse et durable.",
		Icon:        "Zap",
	},
	{
		ID:          "cryo",
		Name:        "Cryolipolyse",
		Slug:        "cryolipolyse-minceur",
		SEOKeyword:  "cryolipolyse minceur",
		HeroImage:   "/images/services/cryolipolyse.jpg",
		Description: "Éliminez les graisses localisées par le froid. Trouvez les instituts certifiés pour la cryolipolyse dans votre ville.",
		Icon:        "Snowflake",
	},
	{
		ID:          "hydra",
		Name:        "Soin Hydrafacial",
		Slug:        "soin-hydrafacial",
		SEOKeyword:  "soin hydrafacial visage",
		HeroImage:   "/images/services/hydrafacial.jpg",
		Description: "Le soin visage révolutionnaire qui nettoie, exfolie et hydrate. Comparez les meilleurs instituts de beauté.",
		Icon:        "Droplets",
	},
	{
		ID:          "injections",
		Name:        "Injections & Botox",
		Slug:        "injections-esthetique",
		SEOKeyword:  "injections esthétiques botox",
		HeroImage:   "/images/services/injections.jpg",
		Description: "Injections d'acide hyaluronique et Botox par des médecins qualifiés. Trouvez un praticien de confiance.",
		Icon:        "Syringe",
	},
}

// ServiceCatalog is the fixed, immutable service registry
type ServiceCatalog struct{}

var _ repositories.ServiceRepository = (*ServiceCatalog)(nil)

// NewServiceCatalog returns the service registry
func NewServiceCatalog() *ServiceCatalog {
	return &ServiceCatalog{}
}

// GetBySlug returns the service for a slug via linear scan
func (c *ServiceCatalog) GetBySlug(slug string) (entities.Service, error) {
	for _, s := range services {
		if s.Slug == slug {
			return s, nil
		}
	}
	return entities.Service{}, apperrors.NewNotFoundError("service not found: " + slug)
}

// All returns every service
func (c *ServiceCatalog) All() []entities.Service {
	return services
}

// Slugs returns all service slugs
func (c *ServiceCatalog) Slugs() []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = s.Slug
	}
	return out
}
