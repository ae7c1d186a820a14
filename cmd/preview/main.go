// preview renders the generated page content for one service/city pair,
// for checking copy and centre sets before a site build.
package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/baguettecroissant/beautybeaute.fr/internal/adapters/dataset"
	"github.com/baguettecroissant/beautybeaute.fr/internal/adapters/storage"
	"github.com/baguettecroissant/beautybeaute.fr/internal/application/services"
	"github.com/baguettecroissant/beautybeaute.fr/internal/infrastructure/observability"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/config"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/geo"
)

func main() {
	var citySlug string
	var serviceSlug string
	var nearby int

	flag.StringVar(&citySlug, "city", "lyon", "City slug")
	flag.StringVar(&serviceSlug, "service", "epilation-laser", "Service slug")
	flag.IntVar(&nearby, "nearby", 5, "How many nearby cities to list")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("preview", cfg.Env)

	cities, err := dataset.LoadCityDataset(cfg.Data.CitiesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load cities dataset")
	}
	catalog := dataset.NewServiceCatalog()

	city, err := cities.GetBySlug(citySlug)
	if err != nil {
		log.Fatal().Err(err).Str("slug", citySlug).Msg("unknown city")
	}
	service, err := catalog.GetBySlug(serviceSlug)
	if err != nil {
		log.Fatal().Err(err).Str("slug", serviceSlug).Msg("unknown service")
	}

	store := storage.NewListingStore(cfg.Data.ListingsPath)
	if err := store.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load listings")
	}

	engine := services.NewContentEngine(store)
	content := engine.GenerateContent(service, city)

	fmt.Printf("H1:               %s\n", content.H1)
	fmt.Printf("Meta title:       %s\n", content.MetaTitle)
	fmt.Printf("Meta description: %s\n", content.MetaDescription)
	fmt.Printf("\nIntroduction:\n%s\n", content.Introduction)
	fmt.Printf("\nWhy choose %s:\n%s\n", city.Name, content.WhyChooseCity)

	fmt.Println("\nFAQ:")
	for _, item := range engine.GenerateFAQ(service, city) {
		fmt.Printf("  Q: %s\n  A: %s\n", item.Question, item.Answer)
	}

	fmt.Println("\nCentres:")
	for _, c := range engine.GenerateMockedCentres(service, city) {
		origin := "mock"
		if c.IsReal {
			origin = "real"
		}
		fmt.Printf("  [%s] %s — %.1f (%d avis) — %s\n", origin, c.Name, c.Rating, c.ReviewCount, c.Address)
	}

	fmt.Println("\nNearby cities:")
	for _, n := range geo.GetNearbyCities(city, cities.All(), nearby) {
		fmt.Printf("  %s (%s) — %s\n", n.Name, n.Zip, geo.FormatDistance(n.Distance))
	}
}
