package api

import (
	"time"

	"rto-workers/internal/common/logger"

	"github.com/labstack/echo/v4"
)

func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.Info("request", map[string]interface{}{
				"method":     c.Request().Method,
				"path":       c.Path(),
				"status":     c.Response().Status,
				"durationMs": time.Since(start).Milliseconds(),
				"requestId":  c.Response().Header().Get(echo.HeaderXRequestID),
			})
			return nil
		}
	}
}
