// cleancsv reduces a raw scraped CSV dump to the canonical 7-column
// listing shape, optionally replacing the input file with the result.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/baguettecroissant/beautybeaute.fr/internal/application/services"
	"github.com/baguettecroissant/beautybeaute.fr/internal/infrastructure/observability"
	"github.com/baguettecroissant/beautybeaute.fr/pkg/config"
)

func main() {
	var input string
	var output string
	var replace bool

	flag.StringVar(&input, "in", "raw_listings.csv", "Raw scraped CSV to clean")
	flag.StringVar(&output, "out", "raw_listings_cleaned.csv", "Where to write the cleaned CSV")
	flag.BoolVar(&replace, "replace", true, "Replace the input file with the cleaned version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("cleancsv", cfg.Env)

	svc := services.NewCSVCleanService()
	summary, err := svc.CleanFile(input, output)
	if err != nil {
		log.Fatal().Err(err).Msg("cleaning failed")
	}

	if replace {
		if err := copyFile(output, input); err != nil {
			log.Fatal().Err(err).Msg("failed to replace input file")
		}
		log.Info().Str("path", input).Msg("input replaced with cleaned version")
	}

	log.Info().
		Int("kept", summary.RowsKept).
		Int("dropped", summary.RowsDropped).
		Msg("done")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
