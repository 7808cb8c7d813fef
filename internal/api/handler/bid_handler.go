package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskbid/marketplace/internal/api/metrics"
	"github.com/taskbid/marketplace/internal/core/ports"
)

// BidHandler handles HTTP requests for bid operations.
type BidHandler struct {
	service ports.BidService
}

func NewBidHandler(service ports.BidService) *BidHandler {
	return &BidHandler{service: service}
}

// Submit handles POST /v1/tasks/:id/bids — the caller bids on an open task.
//
// @Summary      Submit a bid on an open task
// @Tags         bids
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Task ID"
// @Param        body  body      submitBidRequest  true  "Bid message"
// @Success      201   {object}  bidResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/{id}/bids [post]
func (h *BidHandler) Submit(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req submitBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	bid, err := h.service.Submit(c.Request().Context(), ports.SubmitBidInput{
		TaskID:  c.Param("id"),
		Seller:  username,
		Message: req.Message,
	})
	if err != nil {
		return marketError(c, err)
	}

	metrics.BidsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, toBidResponse(bid))
}

// ListForTask handles GET /v1/tasks/:id/bids — bids on a task, in
// submission order.
//
// @Summary      List bids for a task
// @Tags         bids
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task ID"
// @Success      200  {object}  listBidsResponse
// @Router       /v1/tasks/{id}/bids [get]
func (h *BidHandler) ListForTask(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	bids, err := h.service.ListForTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusOK, toListBidsResponse(bids))
}

// Mine handles GET /v1/bids/mine — the caller's submitted bids.
//
// @Summary      List the caller's submitted bids
// @Tags         bids
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listBidsResponse
// @Router       /v1/bids/mine [get]
func (h *BidHandler) Mine(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	bids, err := h.service.ListBySeller(c.Request().Context(), username)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusOK, toListBidsResponse(bids))
}
