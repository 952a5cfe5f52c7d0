package env

import (
	"os"
	"path/filepath"
	"strconv"

	"soil-reco/internal/helpers"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Env struct {
	PgHost     string
	PgPort     string
	PgUser     string
	PgPassword string
	PgName     string
	// QueuePoolSizeFactor scales the queue processor's worker pool relative
	// to the CPU count.
	QueuePoolSizeFactor int
}

func Get() (Env, error) {
	projectRoot, err := helpers.GetProjectRoot()
	if err != nil {
		return Env{}, err
	}
	envFilePath := filepath.Join(projectRoot, ".env")

	err = godotenv.Load(envFilePath)
	if err != nil {
		return Env{}, err
	}

	env := Env{
		PgHost:              os.Getenv("POSTGRES_HOST"),
		PgPort:              os.Getenv("POSTGRES_PORT"),
		PgUser:              os.Getenv("POSTGRES_USER"),
		PgPassword:          os.Getenv("POSTGRES_PASSWORD"),
		PgName:              os.Getenv("POSTGRES_DB"),
		QueuePoolSizeFactor: getIntOr("QUEUE_POOL_SIZE_FACTOR", 1),
	}

	log.Info().Interface("env", env).Msg("Environment variables")

	return env, nil
}

func getIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid integer env var, using default")
		return fallback
	}
	return n
}
