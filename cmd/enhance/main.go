// enhance post-processes the listings file: coordinates recovered from
// maps URLs, unresolved cities fixed via coordinate bounding boxes.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/baguettecroissant/beautybeaute.fr/internal/adapters/storage"
	"github.com/baguettecroissant/beautybeaute.fr/internal/application/services"
	"github.com/baguettecroissant/beautybeaute.fr/internal/infrastructure/observability"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("enhance", cfg.Env)

	store := storage.NewListingStore(cfg.Data.ListingsPath)
	if err := store.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load listings")
	}

	svc := services.NewEnhanceService(store)
	summary, err := svc.Enhance()
	if err != nil {
		log.Fatal().Err(err).Msg("enhancement failed")
	}

	log.Info().
		Int("coordinates_set", summary.CoordinatesSet).
		Int("cities_fixed", summary.CitiesFixed).
		Msg("done")
}
