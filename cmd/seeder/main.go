package main

import (
	"github.com/rs/zerolog/log"

	"soil-reco/internal/cli"
	"soil-reco/internal/db"
	"soil-reco/internal/env"
	"soil-reco/internal/models"
	"soil-reco/internal/seed"
)

// Loads the default catalog and formulas into empty tables.
// `--reset` purges products, formulas and variables first.
func main() {
	flags := cli.GetFlags()
	cli.SetLogLevel(flags.LogLevel)

	environment, err := env.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get environment variables")
	}

	dbClient, err := db.CreateRecoDBClient(environment)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to db")
	}

	defer func(dbClient *db.Database) {
		_ = dbClient.Close()
	}(dbClient)

	if cli.HasFlag("--reset") {
		log.Info().Msg("--reset provided - purging catalog, formulas and variables.")
		err = models.Purge(dbClient.Conn)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to purge models")
		}
	}

	err = seed.SeedIfEmpty(dbClient.Conn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed defaults")
	}

	log.Info().Msg("Seeding complete.")
}
