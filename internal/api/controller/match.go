package controller

import (
	"net/http"
	"strings"

	"rto-workers/internal/common/metrics"
	"rto-workers/internal/matcher"
	"rto-workers/internal/models"

	"github.com/labstack/echo/v4"
)

const metricsChannel = "api"

type matchRequest struct {
	DeliveryPreference string `json:"deliveryPreference" validate:"required,max=32"`
	Region             string `json:"region" validate:"required,max=32"`
}

type matchResponse struct {
	TopMatch     *models.Provider `json:"topMatch"`
	RunnersUp    models.Ranking   `json:"runnersUp"`
	Providers    models.Ranking   `json:"providers"`
	TotalMatches int              `json:"totalMatches"`
	NoMatch      bool             `json:"noMatch"`
}

// Match ranks the catalog for one quiz submission. Answers outside the known
// modes and regions are not rejected; they simply match fewer providers.
func (c *Controller) Match(ctx echo.Context) error {
	var req matchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}
	req.DeliveryPreference = strings.TrimSpace(req.DeliveryPreference)
	req.Region = strings.TrimSpace(req.Region)
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	result := matcher.Summarize(c.catalog.Providers(), models.Query{
		DeliveryPreference: req.DeliveryPreference,
		Region:             req.Region,
	}, c.runnersUp)
	metrics.RecordMatch(metricsChannel, result.TotalMatches)
	if c.observer != nil {
		c.observer.RecordMatch(ctx.Request().Context(), metricsChannel, result.NoMatch)
	}

	return ctx.JSON(http.StatusOK, matchResponse{
		TopMatch:     result.TopMatch,
		RunnersUp:    result.RunnersUp,
		Providers:    result.RankedProviders,
		TotalMatches: result.TotalMatches,
		NoMatch:      result.NoMatch,
	})
}
