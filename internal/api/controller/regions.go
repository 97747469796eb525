package controller

import (
	"net/http"

	"rto-workers/internal/models"

	"github.com/labstack/echo/v4"
)

type regionsResponse struct {
	Regions       []string              `json:"regions"`
	Covered       []string              `json:"covered"`
	DeliveryModes []models.DeliveryMode `json:"deliveryModes"`
}

// ListRegions returns the quiz options in display order. Covered lists the
// regions at least one provider currently serves.
func (c *Controller) ListRegions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, regionsResponse{
		Regions:       models.Regions,
		Covered:       c.catalog.CoveredRegions(),
		DeliveryModes: models.SelectableDeliveryModes,
	})
}
