package main

import (
	"database/sql"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"soil-reco/internal/cache"
	"soil-reco/internal/cli"
	"soil-reco/internal/db"
	"soil-reco/internal/engine"
	"soil-reco/internal/env"
	"soil-reco/internal/models"
	"soil-reco/internal/queue"
)

func main() {
	flags := cli.GetFlags()

	// Set log level based on CLI flag
	cli.SetLogLevel(flags.LogLevel)
	environment, err := env.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get environment variables")
	}

	dbClient, err := db.CreateRecoDBClient(environment)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to db")
	}

	workerCount := runtime.NumCPU() * environment.QueuePoolSizeFactor
	log.Info().Msgf("Starting queue processor with %d workers", workerCount)

	datasetCache := cache.NewMemoryCache()

	processQueue(dbClient.Conn, workerCount, datasetCache)
}

// QueueJob represents a job to be processed
type QueueJob struct {
	Entry *queue.QueueEntry
}

// processQueue continuously polls for and processes queued recommendation runs
func processQueue(db *sql.DB, workerCount int, datasetCache cache.Cache) {
	inputChan := make(chan QueueJob, workerCount*2)
	wg := sync.WaitGroup{}

	// Start worker pool
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go worker(db, datasetCache, inputChan, &wg)
	}

	// Polling loop
	log.Info().Msg("Queue processor started, polling for jobs...")
	pollInterval := 2 * time.Second

	for {
		entry, err := queue.GetNextQueuedRun(db)
		if err != nil {
			log.Error().Err(err).Msg("Failed to fetch next queued run")
			time.Sleep(pollInterval)
			continue
		}

		if entry == nil {
			// No jobs available, wait before polling again
			log.Debug().Msg("No jobs in queue, waiting...")
			time.Sleep(pollInterval)
			continue
		}

		log.Info().Msgf("Found queued job %d for report %s", entry.QueueID, entry.ReportID)

		// Mark as processing before handing off, so the next poll does not
		// pick the same entry up again.
		err = queue.SetQueueProcessing(db, entry.QueueID)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to mark queue entry %d as processing", entry.QueueID)
			continue
		}

		inputChan <- QueueJob{Entry: entry}
	}
}

// loadDataset fetches the report dataset, going through the in-memory cache
// first. Catalog, formulas and variables are always read fresh.
func loadDataset(db *sql.DB, datasetCache cache.Cache, reportID string) (engine.Dataset, error) {
	if cached := datasetCache.Get(reportID); cached != nil {
		if ds, ok := cached.(engine.Dataset); ok {
			log.Debug().Msgf("Dataset for report %s served from memory cache", reportID)
			return ds, nil
		}
	}

	report, err := models.GetReportByID(db, reportID)
	if err != nil {
		return engine.Dataset{}, err
	}

	datasetCache.Store(reportID, report.Dataset)
	return report.Dataset, nil
}

// worker processes queue jobs
func worker(db *sql.DB, datasetCache cache.Cache, inputChan chan QueueJob, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range inputChan {
		entry := job.Entry
		log.Info().Msgf("Processing queue entry %d for report %s", entry.QueueID, entry.ReportID)

		dataset, err := loadDataset(db, datasetCache, entry.ReportID)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to load report for queue entry %d", entry.QueueID)
			_ = queue.SetQueueFailed(db, entry.QueueID, err.Error())
			continue
		}

		input, err := models.BuildEngineInput(db, dataset)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to assemble engine input for queue entry %d", entry.QueueID)
			_ = queue.SetQueueFailed(db, entry.QueueID, err.Error())
			continue
		}

		runID, err := models.CreatePendingRun(db, entry.ReportID, entry.IncludeZeros)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to create run for queue entry %d", entry.QueueID)
			_ = queue.SetQueueFailed(db, entry.QueueID, err.Error())
			continue
		}

		err = models.SetRunInProgress(db, runID)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to mark run %d in progress", runID)
		}

		result, err := engine.Run(input, engine.Options{IncludeZeros: entry.IncludeZeros})
		if err != nil {
			log.Error().Err(err).Msgf("Recommendation run failed for queue entry %d", entry.QueueID)
			_ = models.SetRunFailed(db, runID, err.Error())
			_ = queue.SetQueueFailed(db, entry.QueueID, err.Error())
			continue
		}

		err = models.SetRunCompleted(db, runID, result)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to store result for run %d", runID)
			_ = queue.SetQueueFailed(db, entry.QueueID, err.Error())
			continue
		}

		err = queue.SetQueueCompleted(db, entry.QueueID, runID)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to mark queue entry %d completed", entry.QueueID)
			continue
		}

		log.Info().Msgf("Queue entry %d completed as run %d", entry.QueueID, runID)
	}
}
