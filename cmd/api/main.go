package main

import (
	"github.com/rs/zerolog/log"

	"soil-reco/internal/db"
	"soil-reco/internal/env"
	"soil-reco/internal/router"
	"soil-reco/internal/seed"
)

func main() {
	environment, err := env.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get environment variables")
	}

	dbClient, err := db.CreateRecoDBClient(environment)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to db")
	}

	err = seed.SeedIfEmpty(dbClient.Conn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default catalog")
	}

	cfg := router.RouterConfig{DB: dbClient}
	r := router.NewRouter(cfg)

	err = r.Start(":8080")
	if err != nil {
		return
	}
}
