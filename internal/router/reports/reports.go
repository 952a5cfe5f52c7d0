package reports_router

import (
	"database/sql"
	"net/http"

	"soil-reco/internal/engine"
	"soil-reco/internal/importers"
	"soil-reco/internal/models"
	"soil-reco/internal/queue"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type uploadRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func Bind(e *echo.Group, db *sql.DB) *echo.Group {
	e.GET("", func(c echo.Context) error {
		reports, err := models.GetAllReportsShort(db)
		if err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(200, reports)
	})

	e.GET("/:id", func(c echo.Context) error {
		report, err := models.GetReportByID(db, c.Param("id"))
		if err != nil {
			return c.String(404, err.Error())
		}

		return c.JSON(200, report)
	})

	// Accepts raw delimited text in the request body and stores it as a
	// report. Parsing matches the CLI importer.
	e.POST("", func(c echo.Context) error {
		req := uploadRequest{}
		if err := c.Bind(&req); err != nil {
			return c.String(400, err.Error())
		}
		if req.Name == "" {
			return c.String(400, "report name is required")
		}

		dataset, _ := importers.ParseCSV(req.Content)
		if len(dataset.Headers) == 0 {
			return c.String(400, "report content has no header row")
		}

		report := models.Report{
			ID:      models.NewReportID(),
			Name:    req.Name,
			Dataset: dataset,
		}

		tx, err := db.Begin()
		if err != nil {
			return c.String(500, err.Error())
		}
		if err := models.SaveReport(tx, report); err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to roll back transaction.")
			}
			return c.String(500, err.Error())
		}
		if err := tx.Commit(); err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(http.StatusCreated, report)
	})

	e.DELETE("/:id", func(c echo.Context) error {
		if err := models.DeleteReport(db, c.Param("id")); err != nil {
			return c.String(500, err.Error())
		}

		return c.NoContent(http.StatusNoContent)
	})

	e.GET("/:id/runs", func(c echo.Context) error {
		runs, err := models.GetRunsByReport(db, c.Param("id"))
		if err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(200, runs)
	})

	// Runs the recommendation engine over a stored report. With ?queue=true
	// the work is handed to the queue processor instead of running inline.
	e.POST("/:id/recommend", func(c echo.Context) error {
		reportID := c.Param("id")
		includeZeros := c.QueryParam("include_zeros") == "true"

		if c.QueryParam("queue") == "true" {
			queueID, err := queue.CreateQueueEntry(db, reportID, includeZeros, queue.PriorityAPI)
			if err != nil {
				return c.String(500, err.Error())
			}
			return c.JSON(http.StatusAccepted, map[string]interface{}{
				"queue_id": queueID,
			})
		}

		runID, err := models.CreatePendingRun(db, reportID, includeZeros)
		if err != nil {
			return c.String(500, err.Error())
		}
		if err := models.SetRunInProgress(db, runID); err != nil {
			return c.String(500, err.Error())
		}

		input, err := models.GetEngineInput(db, reportID)
		if err != nil {
			if failErr := models.SetRunFailed(db, runID, err.Error()); failErr != nil {
				log.Error().Err(failErr).Msgf("Failed to mark run %d as failed", runID)
			}
			return c.String(404, err.Error())
		}

		result, err := engine.Run(input, engine.Options{IncludeZeros: includeZeros})
		if err != nil {
			if failErr := models.SetRunFailed(db, runID, err.Error()); failErr != nil {
				log.Error().Err(failErr).Msgf("Failed to mark run %d as failed", runID)
			}
			return c.String(422, err.Error())
		}

		if err := models.SetRunCompleted(db, runID, result); err != nil {
			return c.String(500, err.Error())
		}

		run, err := models.GetRunByID(db, runID)
		if err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(200, run)
	})

	return e
}
