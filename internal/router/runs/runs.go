package runs_router

import (
	"database/sql"
	"strconv"

	"soil-reco/internal/engine"
	"soil-reco/internal/models"

	"github.com/labstack/echo/v4"
)

func runParam(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

func Bind(e *echo.Group, db *sql.DB) *echo.Group {
	e.GET("/:id", func(c echo.Context) error {
		runID, err := runParam(c)
		if err != nil {
			return c.String(400, "run id must be an integer")
		}

		run, err := models.GetRunByID(db, runID)
		if err != nil {
			return c.String(404, err.Error())
		}

		return c.JSON(200, run)
	})

	// Per-point per-product dose totals for a completed run.
	e.GET("/:id/aggregate", func(c echo.Context) error {
		runID, err := runParam(c)
		if err != nil {
			return c.String(400, "run id must be an integer")
		}

		run, err := models.GetRunByID(db, runID)
		if err != nil {
			return c.String(404, err.Error())
		}
		if run.Result == nil {
			return c.String(409, "run has no result yet")
		}

		return c.JSON(200, engine.AggregateByProduct(run.Result))
	})

	// Min/mean/max dose per product across all points.
	e.GET("/:id/stats", func(c echo.Context) error {
		runID, err := runParam(c)
		if err != nil {
			return c.String(400, "run id must be an integer")
		}

		run, err := models.GetRunByID(db, runID)
		if err != nil {
			return c.String(404, err.Error())
		}
		if run.Result == nil {
			return c.String(409, "run has no result yet")
		}

		rows := engine.AggregateByProduct(run.Result)

		return c.JSON(200, engine.ComputeProductStats(rows))
	})

	return e
}
