package ports

import (
	"context"

	"github.com/taskbid/marketplace/internal/core/domain"
)

// SubmitBidInput carries all data needed to bid on a task.
type SubmitBidInput struct {
	TaskID  string
	Seller  string
	Message string
}

// BidService defines use-case operations on the bid ledger.
type BidService interface {
	// Submit records a bid on an open task. Rejects self-bids and duplicate
	// (task, seller) pairs.
	Submit(ctx context.Context, input SubmitBidInput) (*domain.Bid, error)

	ListForTask(ctx context.Context, taskID string) ([]*domain.Bid, error)
	ListBySeller(ctx context.Context, seller string) ([]*domain.Bid, error)
}
