package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       int    `json:"price"       validate:"required,gt=0"`
}

type acceptBidRequest struct {
	Seller string `json:"seller" validate:"required"`
}

type submitBidRequest struct {
	Message string `json:"message" validate:"required"`
}

// --- Response types ---
// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// service changes.

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
}

type taskResponse struct {
	ID             string                      `json:"id"`
	Title          string                      `json:"title"`
	Description    string                      `json:"description"`
	Buyer          string                      `json:"buyer"`
	Price          int                         `json:"price"`
	SellerPayout   int                         `json:"seller_payout"`
	Status         string                      `json:"status"`
	AssignedSeller string                      `json:"assigned_seller,omitempty"`
	StatusHistory  []statusHistoryItemResponse `json:"status_history,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

type listTasksResponse struct {
	Data []taskResponse `json:"data"`
}

type checkoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type bidResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	Seller    string    `json:"seller"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type listBidsResponse struct {
	Data []bidResponse `json:"data"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}
