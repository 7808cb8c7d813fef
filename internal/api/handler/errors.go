package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskbid/marketplace/internal/core/domain"
)

// marketError maps a domain error to its HTTP rendering. Every business-rule
// violation gets a distinct, specific message; only genuinely unexpected
// errors collapse into a 500.
func marketError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrNoSuchBid),
		errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotAssignedSeller):
		return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDuplicateTitle),
		errors.Is(err, domain.ErrDuplicateBid),
		errors.Is(err, domain.ErrTaskNotOpen),
		errors.Is(err, domain.ErrStaleState):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPriceOutOfRange),
		errors.Is(err, domain.ErrSelfBid),
		errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrGatewayFailure):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
	// Unexpected (including ErrStoreCorrupt): let the central error handler
	// log the cause and render a generic message.
	return err
}
