package variables_router

import (
	"database/sql"
	"net/http"

	"soil-reco/internal/models"

	"github.com/labstack/echo/v4"
)

func Bind(e *echo.Group, db *sql.DB) *echo.Group {
	e.GET("", func(c echo.Context) error {
		variables, err := models.ListVariables(db)
		if err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(200, variables)
	})

	e.PUT("", func(c echo.Context) error {
		variable := models.Variable{}
		if err := c.Bind(&variable); err != nil {
			return c.String(400, err.Error())
		}
		if variable.Name == "" {
			return c.String(400, "variable name is required")
		}

		if err := models.SetVariable(db, variable.Name, variable.Value); err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(200, variable)
	})

	e.DELETE("/:name", func(c echo.Context) error {
		if err := models.DeleteVariable(db, c.Param("name")); err != nil {
			return c.String(500, err.Error())
		}

		return c.NoContent(http.StatusNoContent)
	})

	return e
}
