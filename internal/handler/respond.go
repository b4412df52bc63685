package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "carlog/internal/errors"
)

// writeError translates a domain error into the JSON failure shape. The
// cause of an unexpected error is logged server-side and only included in
// the response body outside production.
func writeError(c echo.Context, logger *zap.Logger, debug bool, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	resp := httpErr.ToErrorResponse()

	if httpErr.StatusCode == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		if debug {
			resp.Details = err.Error()
		}
	}

	return c.JSON(httpErr.StatusCode, resp)
}
