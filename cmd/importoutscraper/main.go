// importoutscraper merges an Outscraper export (.json or .xlsx) into the
// listings JSON file, skipping closed businesses and duplicates.
package main

import (
	"flag"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/baguettecroissant/beautybeaute.fr/internal/adapters/storage"
	"github.com/baguettecroissant/beautybeaute.fr/internal/application/services"
	"github.com/baguettecroissant/beautybeaute.fr/internal/infrastructure/observability"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/config"
)

func main() {
	var input string
	var serviceID string

	flag.StringVar(&input, "in", "", "Outscraper export to import (.json or .xlsx)")
	flag.StringVar(&serviceID, "service", "", "Force a serviceId (laser, cryo, hydra, injections) instead of detecting it from the query field")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("importoutscraper", cfg.Env)

	if input == "" {
		log.Fatal().Msg("missing -in: path to an Outscraper export")
	}

	store := storage.NewListingStore(cfg.Data.ListingsPath)
	if err := store.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load existing listings")
	}
	log.Info().Int("existing", len(store.All())).Str("input", input).Msg("importing outscraper export")

	svc := services.NewOutscraperImportService(store, cfg.Ingest.PlaceholderImage, cfg.Ingest.DefaultServiceID)
	summary, err := svc.ImportFile(input, serviceID)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	for service, count := range summary.ByService {
		log.Info().Str("service", service).Int("listings", count).Msg("listings by service")
	}
	logTopCities(summary.ByCity, 10)
}

func logTopCities(dist map[string]int, limit int) {
	type cityCount struct {
		city  string
		count int
	}
	counts := make([]cityCount, 0, len(dist))
	for city, count := range dist {
		counts = append(counts, cityCount{city, count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].count > counts[j].count })

	if len(counts) > limit {
		counts = counts[:limit]
	}
	for _, c := range counts {
		log.Info().Str("city", c.city).Int("listings", c.count).Msg("top city")
	}
}
