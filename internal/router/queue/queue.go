package queue_router

import (
	"database/sql"
	"strconv"

	"soil-reco/internal/queue"

	"github.com/labstack/echo/v4"
)

func Bind(e *echo.Group, db *sql.DB) *echo.Group {
	// Poll endpoint for jobs created via POST /reports/:id/recommend?queue=true.
	e.GET("/:id", func(c echo.Context) error {
		queueID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.String(400, "queue id must be an integer")
		}

		entry, err := queue.GetQueueEntry(db, queueID)
		if err != nil {
			return c.String(404, err.Error())
		}

		return c.JSON(200, entry)
	})

	return e
}
