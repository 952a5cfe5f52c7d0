package products_router

import (
	"database/sql"
	"net/http"

	"soil-reco/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func Bind(e *echo.Group, db *sql.DB) *echo.Group {
	e.GET("", func(c echo.Context) error {
		products, err := models.GetAllProducts(db)
		if err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(200, products)
	})

	e.GET("/:id", func(c echo.Context) error {
		product, err := models.GetProductByID(db, c.Param("id"))
		if err != nil {
			return c.String(404, err.Error())
		}

		return c.JSON(200, product)
	})

	e.POST("", func(c echo.Context) error {
		product := models.Product{}
		if err := c.Bind(&product); err != nil {
			return c.String(400, err.Error())
		}
		if product.Name == "" {
			return c.String(400, "product name is required")
		}
		if product.ID == "" {
			product.ID = models.NewProductID()
		}

		tx, err := db.Begin()
		if err != nil {
			return c.String(500, err.Error())
		}
		if err := models.UpsertProduct(tx, product); err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to roll back transaction.")
			}
			return c.String(500, err.Error())
		}
		if err := tx.Commit(); err != nil {
			return c.String(500, err.Error())
		}

		return c.JSON(http.StatusCreated, product)
	})

	e.DELETE("/:id", func(c echo.Context) error {
		if err := models.DeleteProduct(db, c.Param("id")); err != nil {
			return c.String(500, err.Error())
		}

		return c.NoContent(http.StatusNoContent)
	})

	return e
}
