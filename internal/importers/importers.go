package importers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"soil-reco/internal/cache"
	"soil-reco/internal/db"
	"soil-reco/internal/engine"
	"soil-reco/internal/helpers"
	"soil-reco/internal/models"
)

func updateReportFileCache(reportsCache *cache.JSONFileCache, name string, ds engine.Dataset) error {
	log.Info().Msgf("Storing report %s in file cache", name)
	err := reportsCache.Store(name, ds)
	if err != nil {
		return err
	}

	return nil
}

func getReportFromCache(reportsCache *cache.JSONFileCache, name string) (engine.Dataset, error) {
	ds := engine.Dataset{}
	err := reportsCache.Get(name, &ds)
	if err != nil {
		return engine.Dataset{}, err
	}
	return ds, nil
}

// ImportReport reads a delimited soil report from disk, parses it and stores
// it as a named report. The parsed dataset is kept in a file cache so
// repeated imports of the same file can skip parsing with --use-cache.
func ImportReport(database *db.Database, path string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	useCache := helpers.ContainsStr(os.Args, "--use-cache")

	reportsCache, err := cache.NewJSONFileCache("./file-caches/reports-cache.json")
	if err != nil {
		return "", err
	}
	if helpers.ContainsStr(os.Args, "--purge-cache") {
		fmt.Println("--purge-cache provided - purging reports file cache")
		err := reportsCache.Purge()
		if err != nil {
			return "", err
		}
	}

	var dataset engine.Dataset
	if useCache {
		log.Info().Msg("--use-cache provided - pulling report from file cache.")
		data, err := getReportFromCache(reportsCache, name)
		if err != nil {
			log.Error().Err(err).Msg("Failed to get report from file cache.")
			return "", err
		}
		log.Info().Msg("Retrieved report from file cache.")
		dataset = data
	} else {
		log.Info().Msgf("Reading report from %s.", path)
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to read report file %s.", path)
			return "", err
		}

		ds, delimiter := ParseCSV(string(raw))
		if len(ds.Headers) == 0 {
			return "", fmt.Errorf("report file %s contains no header row", path)
		}
		log.Info().Msgf("Parsed %d rows with delimiter %q.", len(ds.Rows), delimiter)
		dataset = ds

		err = updateReportFileCache(reportsCache, name, dataset)
		if err != nil {
			log.Error().Err(err).Msg("Failed to update report file cache.")
			return "", err
		}
	}

	if helpers.ContainsStr(os.Args, "--cache-only") {
		log.Info().Msg("--cache-only was provided - Not persisting report in db.")
		return "", nil
	}

	report := models.Report{
		ID:      models.NewReportID(),
		Name:    name,
		Dataset: dataset,
	}

	log.Info().Msg("Beginning transaction.")
	tx, err := database.Conn.Begin()
	if err != nil {
		log.Error().Err(err).Msg("Failed to begin transaction.")
		return "", err
	}

	err = models.SaveReport(tx, report)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error().Err(err).Msg("failed to roll back transaction.")
			return "", rollbackErr
		}
		log.Error().Err(err).Msg("Failed to save report.")
		return "", err
	}

	err = tx.Commit()
	if err != nil {
		log.Error().Err(err).Msg("Failed to commit transaction.")
		return "", err
	}

	log.Info().Msgf("Imported report %s as %s.", name, report.ID)
	return report.ID, nil
}
