package api

import (
	"errors"
	"net/http"

	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code    int      `json:"code"`
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func httpErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := toErrorResponse(err)
		if resp.Code >= http.StatusInternalServerError {
			log.Error("request failed", map[string]interface{}{
				"path":      c.Path(),
				"requestId": c.Response().Header().Get(echo.HeaderXRequestID),
				"error":     err.Error(),
			})
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.Code)
			return
		}
		_ = c.JSON(resp.Code, resp)
	}
}

func toErrorResponse(err error) ErrorResponse {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return ErrorResponse{
			Code:    http.StatusBadRequest,
			Error:   string(apperrors.ErrCodeInvalidQuizInput),
			Message: "request validation failed",
			Details: verr.Fields,
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return ErrorResponse{Code: he.Code, Error: http.StatusText(he.Code), Message: msg}
	}

	var se *apperrors.StandardError
	if errors.As(err, &se) {
		resp := ErrorResponse{Code: statusFor(se.Code), Error: string(se.Code), Message: se.Message}
		if se.Details != "" && resp.Code < http.StatusInternalServerError {
			resp.Details = []string{se.Details}
		}
		return resp
	}

	return ErrorResponse{
		Code:    http.StatusInternalServerError,
		Error:   string(apperrors.ErrCodeInternal),
		Message: "internal server error",
	}
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeParseError, apperrors.ErrCodeInvalidQuizInput:
		return http.StatusBadRequest
	case apperrors.ErrCodeCatalogLoadFailed, apperrors.ErrCodeCatalogEmpty,
		apperrors.ErrCodeDatabaseConnectionFailed, apperrors.ErrCodeSearchTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
