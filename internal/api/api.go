package api

import (
	"context"
	"errors"
	"net/http"

	"rto-workers/internal/api/controller"
	"rto-workers/internal/common/config"
	"rto-workers/internal/common/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIService struct {
	router *echo.Echo
	logger logger.Logger
}

func (svc *APIService) Serve(addr string) error {
	svc.logger.Info("quiz api listening", map[string]interface{}{"address": addr})
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router for in-process use.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(cfg config.APIConfig, catalog controller.ProviderCatalog, observer controller.MatchObserver, log logger.Logger) *APIService {
	svc := &APIService{router: echo.New(), logger: log}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Validator = NewValidator()
	svc.router.HTTPErrorHandler = httpErrorHandler(log)
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	svc.router.Use(requestLogger(log))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	cntrl := controller.NewController(catalog, observer, cfg.RunnersUp)

	svc.router.GET("/health", cntrl.Health)
	svc.router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := svc.router.Group("/api/v1")
	api.POST("/match", cntrl.Match)
	api.GET("/providers", cntrl.ListProviders)
	api.GET("/providers/:id", cntrl.GetProvider)
	api.GET("/regions", cntrl.ListRegions)

	return svc
}
