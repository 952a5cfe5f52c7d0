package formulas_router

import (
	"database/sql"
	"net/http"

	"soil-reco/internal/engine"
	"soil-reco/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type previewRequest struct {
	Expression string `json:"expression"`
	ReportID   string `json:"report_id"`
}

func Bind(e *echo.Group, db *sql.DB) *echo.Group {
	e.GET("", func(c echo.Context) error {
		formulas, err := models.GetAllFormulas(db)
		if err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(200, formulas)
	})

	e.GET("/:id", func(c echo.Context) error {
		formula, err := models.GetFormulaByID(db, c.Param("id"))
		if err != nil {
			return c.String(404, err.Error())
		}

		return c.JSON(200, formula)
	})

	e.POST("", func(c echo.Context) error {
		formula := models.Formula{}
		if err := c.Bind(&formula); err != nil {
			return c.String(400, err.Error())
		}
		if formula.TargetAttribute == "" {
			return c.String(400, "formula target_attribute is required")
		}
		if formula.ID == "" {
			formula.ID = models.NewFormulaID()
		}

		tx, err := db.Begin()
		if err != nil {
			return c.String(500, err.Error())
		}
		if err := models.UpsertFormula(tx, formula); err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to roll back transaction.")
			}
			return c.String(500, err.Error())
		}
		if err := tx.Commit(); err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(http.StatusCreated, formula)
	})

	e.DELETE("/:id", func(c echo.Context) error {
		if err := models.DeleteFormula(db, c.Param("id")); err != nil {
			return c.String(500, err.Error())
		}

		return c.NoContent(http.StatusNoContent)
	})

	// Evaluates an expression against every row of a report without running
	// the allocator, so formulas can be checked before saving.
	e.POST("/preview", func(c echo.Context) error {
		req := previewRequest{}
		if err := c.Bind(&req); err != nil {
			return c.String(400, err.Error())
		}
		if req.Expression == "" {
			return c.String(400, "expression is required")
		}

		report, err := models.GetReportByID(db, req.ReportID)
		if err != nil {
			return c.String(404, err.Error())
		}
		variables, err := models.GetAllVariables(db)
		if err != nil {
			return c.String(500, err.Error())
		}

		values := engine.EvaluateAll(req.Expression, variables, report.Dataset)

		return c.JSON(200, values)
	})

	return e
}
