package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"soil-reco/internal/cli"
	"soil-reco/internal/db"
	"soil-reco/internal/engine"
	"soil-reco/internal/env"
	"soil-reco/internal/helpers"
	"soil-reco/internal/models"
)

// Runs the recommendation engine over a stored report and prints per-point
// dose totals. `--save` also records the run in the database.
func main() {
	flags := cli.GetFlags()
	cli.SetLogLevel(flags.LogLevel)

	reportID, ok := cli.GetFlagValue("--report-id")
	if !ok {
		log.Fatal().Msg("--report-id is required")
	}

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

	input, err := models.GetEngineInput(dbClient.Conn, reportID)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed to assemble engine input for report %s", reportID)
	}

	result, err := engine.Run(input, engine.Options{IncludeZeros: flags.IncludeZeros})
	if err != nil {
		log.Fatal().Err(err).Msgf("Recommendation run failed for report %s", reportID)
	}

	rows := engine.AggregateByProduct(result)
	fmt.Printf("%-10s %-20s %12s %s\n", "point", "product", "dose", "unit")
	for _, row := range rows {
		fmt.Printf("%-10s %-20s %12.1f %s\n", row.Point, row.Product, helpers.RoundTo(row.TotalDose, 1), row.Unit)
	}

	fmt.Println()
	stats := engine.ComputeProductStats(rows)
	fmt.Printf("%-20s %8s %10s %10s %10s %s\n", "product", "points", "min", "mean", "max", "unit")
	for _, s := range stats {
		fmt.Printf("%-20s %8d %10.1f %10.1f %10.1f %s\n",
			s.Product, s.PointCount, helpers.RoundTo(s.Min, 1), helpers.RoundTo(s.Mean, 1), helpers.RoundTo(s.Max, 1), s.Unit)
	}

	if flags.Save {
		runID, err := models.CreatePendingRun(dbClient.Conn, reportID, flags.IncludeZeros)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create run record")
		}
		if err := models.SetRunCompleted(dbClient.Conn, runID, result); err != nil {
			log.Fatal().Err(err).Msgf("Failed to store result for run %d", runID)
		}
		log.Info().Msgf("Saved run %d for report %s", runID, reportID)
	}
}
