package ports

import (
	"context"

	"github.com/taskbid/marketplace/internal/core/domain"
)

// CreateTaskInput carries all data needed to post a new task.
type CreateTaskInput struct {
	Buyer       string
	Title       string
	Description string
	Price       int
}

// TaskService defines use-case operations on the task ledger. Ownership rules
// are enforced here: only the buyer accepts bids and confirms payment, only
// the assigned seller marks work complete.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	ListOpenExcluding(ctx context.Context, username string) ([]*domain.Task, error)
	ListByBuyer(ctx context.Context, buyer string) ([]*domain.Task, error)
	ListAssignedTo(ctx context.Context, seller string) ([]*domain.Task, error)

	// AcceptBid transitions the task open → assigned and records the seller.
	// The bid must exist in the bid ledger at the moment of acceptance.
	AcceptBid(ctx context.Context, taskID, seller, actingUser string) (*domain.Task, error)

	// MarkComplete transitions assigned → pending_payment.
	MarkComplete(ctx context.Context, taskID, actingUser string) (*domain.Task, error)

	// ConfirmPayment transitions pending_payment → completed. Confirming an
	// already-completed task is a no-op, not an error.
	ConfirmPayment(ctx context.Context, taskID, actingUser string) (*domain.Task, error)

	// CreateCheckout asks the payment gateway for a hosted checkout URL for a
	// pending_payment task. No ledger state is mutated by this call.
	CreateCheckout(ctx context.Context, taskID, actingUser string) (string, error)
}
