package router

import (
	"soil-reco/internal/db"
	formulas_router "soil-reco/internal/router/formulas"
	products_router "soil-reco/internal/router/products"
	queue_router "soil-reco/internal/router/queue"
	reports_router "soil-reco/internal/router/reports"
	runs_router "soil-reco/internal/router/runs"
	variables_router "soil-reco/internal/router/variables"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type RouterConfig struct {
	DB *db.Database
}

func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	// Set up middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	api := e.Group("/api")
	api.GET("/", func(c echo.Context) error {
		return c.String(200, "soil-reco api")
	})

	products_router.Bind(api.Group("/products"), config.DB.Conn)
	formulas_router.Bind(api.Group("/formulas"), config.DB.Conn)
	variables_router.Bind(api.Group("/variables"), config.DB.Conn)
	reports_router.Bind(api.Group("/reports"), config.DB.Conn)
	queue_router.Bind(api.Group("/queue"), config.DB.Conn)
	runs_router.Bind(api.Group("/runs"), config.DB.Conn)

	return e
}
