package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskbid/marketplace/internal/api/metrics"
	"github.com/taskbid/marketplace/internal/core/ports"
)

// TaskHandler handles HTTP requests for task lifecycle operations.
type TaskHandler struct {
	service     ports.TaskService
	platformFee int
}

func NewTaskHandler(service ports.TaskService, platformFee int) *TaskHandler {
	return &TaskHandler{service: service, platformFee: platformFee}
}

// Create handles POST /v1/tasks.
//
// @Summary      Post a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Buyer:       username,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return marketError(c, err)
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task, h.platformFee))
}

// ListOpen handles GET /v1/tasks — open tasks the caller can bid on
// (their own tasks are excluded).
//
// @Summary      List open tasks available to bid on
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTasksResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) ListOpen(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListOpenExcluding(c.Request().Context(), username)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusOK, toListTasksResponse(tasks, h.platformFee))
}

// Mine handles GET /v1/tasks/mine — tasks the caller posted as buyer.
//
// @Summary      List the caller's posted tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTasksResponse
// @Router       /v1/tasks/mine [get]
func (h *TaskHandler) Mine(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListByBuyer(c.Request().Context(), username)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusOK, toListTasksResponse(tasks, h.platformFee))
}

// Assigned handles GET /v1/tasks/assigned — active tasks assigned to the
// caller as seller.
//
// @Summary      List tasks assigned to the caller
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTasksResponse
// @Router       /v1/tasks/assigned [get]
func (h *TaskHandler) Assigned(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListAssignedTo(c.Request().Context(), username)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusOK, toListTasksResponse(tasks, h.platformFee))
}

// Accept handles POST /v1/tasks/:id/accept — the buyer accepts a seller's bid.
//
// @Summary      Accept a bid on an open task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Task ID (e.g. TSK-7A8B9C2D1E3F4A5B)"
// @Param        body  body      acceptBidRequest  true  "Bid to accept"
// @Success      200   {object}  taskResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/tasks/{id}/accept [post]
func (h *TaskHandler) Accept(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req acceptBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	task, err := h.service.AcceptBid(c.Request().Context(), c.Param("id"), req.Seller, username)
	if err != nil {
		return marketError(c, err)
	}

	metrics.BidsAcceptedTotal.Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task, h.platformFee))
}

// Complete handles POST /v1/tasks/:id/complete — the assigned seller marks
// the work done.
//
// @Summary      Mark an assigned task complete
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task ID"
// @Success      200  {object}  taskResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	task, err := h.service.MarkComplete(c.Request().Context(), c.Param("id"), username)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(task, h.platformFee))
}

// Checkout handles POST /v1/tasks/:id/checkout — the buyer requests a hosted
// payment page for a pending_payment task.
//
// @Summary      Create a checkout session for a task awaiting payment
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task ID"
// @Success      200  {object}  checkoutResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/tasks/{id}/checkout [post]
func (h *TaskHandler) Checkout(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	url, err := h.service.CreateCheckout(c.Request().Context(), c.Param("id"), username)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusOK, checkoutResponse{CheckoutURL: url})
}
