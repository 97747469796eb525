package controller

import (
	"net/http"

	"rto-workers/internal/models"

	"github.com/labstack/echo/v4"
)

type providersResponse struct {
	Providers []models.Provider `json:"providers"`
	Total     int               `json:"total"`
	Source    string            `json:"source"`
}

func (c *Controller) ListProviders(ctx echo.Context) error {
	providers := c.catalog.Providers()
	return ctx.JSON(http.StatusOK, providersResponse{
		Providers: providers,
		Total:     len(providers),
		Source:    c.catalog.Source(),
	})
}

func (c *Controller) GetProvider(ctx echo.Context) error {
	p, ok := c.catalog.Get(ctx.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "provider not found")
	}
	return ctx.JSON(http.StatusOK, p)
}
