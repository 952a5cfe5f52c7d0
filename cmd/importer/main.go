package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"soil-reco/internal/cli"
	"soil-reco/internal/db"
	"soil-reco/internal/env"
	"soil-reco/internal/importers"
)

// Imports delimited soil reports into postgres.
// `go run ./cmd/importer report.csv [more.csv ...]`
// use `--use-cache` to re-import from the file cache without parsing.
func main() {
	flags := cli.GetFlags()
	cli.SetLogLevel(flags.LogLevel)

	e, err := env.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get environment variables")
	}

	log.Debug().Msg("connecting to database")
	dbClient, err := db.CreateRecoDBClient(e)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	defer func(dbClient *db.Database) {
		_ = dbClient.Close()
	}(dbClient)

	paths := make([]string, 0)
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		if args[i] == "--log-level" {
			i++
			continue
		}
		if strings.HasPrefix(args[i], "--") {
			continue
		}
		paths = append(paths, args[i])
	}
	if len(paths) == 0 {
		log.Fatal().Msg("no report files provided")
	}

	for _, path := range paths {
		log.Debug().Msgf("Importing report %s.", path)
		reportID, err := importers.ImportReport(dbClient, path)
		if err != nil {
			log.Fatal().Err(err).Msgf("failed to import report %s.", path)
		}
		log.Info().Msgf("Report %s imported OK as %s.", path, reportID)
	}
}
