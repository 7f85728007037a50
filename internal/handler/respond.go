package handler

import (
	"github.com/vicriadty/cafe-app-ai/internal/apperr"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps a service error to its HTTP status and a caller-safe
// JSON body. Unexpected errors are logged with their cause and masked.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	status := apperr.HTTPStatus(err)
	message := apperr.MessageOf(err)

	if apperr.CodeOf(err) == apperr.CodeInternal {
		log.Error("Request failed", zap.Error(err))
	} else {
		log.Warn("Request rejected",
			zap.String("code", string(apperr.CodeOf(err))),
			zap.String("reason", message))
	}

	return c.JSON(status, echo.Map{"error": message})
}
