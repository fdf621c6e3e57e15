package apis

import (
	"net/http"
	"venue-booking-backend/cmd/venue-booking/lifecycle"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, lifecycle.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, lifecycle.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, lifecycle.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorResponse(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).
			Str("path", c.Path()).
			Msg("request failed")
	}

	return c.JSON(
		status,
		model.BaseResponse{
			Message: err.Error(),
		},
	)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(
		http.StatusBadRequest,
		model.BaseResponse{
			Message: msg,
		},
	)
}

func success(c echo.Context, status int, data any) error {
	return c.JSON(
		status,
		model.BaseResponse{
			Message: "success",
			Data:    data,
		},
	)
}
