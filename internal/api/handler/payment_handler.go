package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskbid/marketplace/internal/core/ports"
)

// SettlementDispatcher is the interface the handler uses to enqueue
// settlement callbacks for asynchronous processing.
type SettlementDispatcher interface {
	Enqueue(input ports.SettlementInput)
}

// PaymentHandler receives the gateway's redirect callback. The route is
// public: the payer lands here coming back from the hosted checkout page, and
// the query parameters are the only correlation the gateway provides.
type PaymentHandler struct {
	dispatcher SettlementDispatcher
}

func NewPaymentHandler(dispatcher SettlementDispatcher) *PaymentHandler {
	return &PaymentHandler{dispatcher: dispatcher}
}

// Callback handles GET /payments/callback?status=&user=&task=.
//
// @Summary      Receive the payment gateway redirect
// @Tags         payments
// @Produce      json
// @Param        status  query     string  true   "success or cancel"
// @Param        user    query     string  false  "buyer username (required on success)"
// @Param        task    query     string  false  "task title (required on success)"
// @Success      202     {object}  acceptedResponse
// @Failure      400     {object}  errorResponse
// @Router       /payments/callback [get]
func (h *PaymentHandler) Callback(c echo.Context) error {
	status := c.QueryParam("status")
	user := c.QueryParam("user")
	task := c.QueryParam("task")

	switch status {
	case ports.SettlementSuccess:
		if user == "" || task == "" {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "success callback requires user and task"})
		}
	case ports.SettlementCancel:
		// informational only, no state change
		return c.JSON(http.StatusOK, acceptedResponse{Message: "payment was cancelled"})
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown callback status"})
	}

	h.dispatcher.Enqueue(ports.SettlementInput{
		Status:    status,
		Username:  user,
		TaskTitle: task,
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "payment received, settlement in progress"})
}
