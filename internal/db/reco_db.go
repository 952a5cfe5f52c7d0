package db

import (
	"soil-reco/internal/env"

	"github.com/rs/zerolog/log"
)

// CreateRecoDBClient creates a db connection to the pg db using the current
// env.
func CreateRecoDBClient(e env.Env) (*Database, error) {
	log.Info().Msg("connecting to database")
	db, err := NewDatabase(Config{
		Host:     e.PgHost,
		Port:     e.PgPort,
		User:     e.PgUser,
		Password: e.PgPassword,
		Name:     e.PgName,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
