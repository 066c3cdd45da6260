package handler

import (
	"github.com/labstack/echo/v4"

	"microblog/internal/apperrors"
)

// writeError translates a domain error into its HTTP status and renders the
// uniform {message} body. Unrecognized errors become a generic 500.
func writeError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, apperrors.MessageResponse{Message: httpErr.Message})
}
