// importcsv turns the cleaned 7-column CSV into the listings JSON file,
// replacing the previous collection.
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

	flag.StringVar(&input, "in", "raw_listings.csv", "Cleaned CSV to import")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("importcsv", cfg.Env)

	svc := services.NewCSVImportService(cfg.Ingest.PlaceholderImage, cfg.Ingest.DefaultServiceID)
	listings, summary, err := svc.ImportFile(input)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	store := storage.NewListingStore(cfg.Data.ListingsPath)
	if err := store.Replace(listings); err != nil {
		log.Fatal().Err(err).Msg("failed to write listings file")
	}

	log.Info().
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Str("output", cfg.Data.ListingsPath).
		Msg("import finished")

	logCityDistribution(summary.CityDistribution, 15)
}

func logCityDistribution(dist map[string]int, limit int) {
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
		log.Info().Str("city", c.city).Int("listings", c.count).Msg("city distribution")
	}
}
