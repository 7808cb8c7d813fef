package ports

import (
	"context"

	"github.com/taskbid/marketplace/internal/core/domain"
)

// BidRepository defines persistence operations for bids.
type BidRepository interface {
	// Create inserts a new bid. Returns domain.ErrDuplicateBid when the
	// (task, seller) pair already has one.
	Create(ctx context.Context, b *domain.Bid) error

	// FindByTaskAndSeller returns domain.ErrNoSuchBid when absent.
	FindByTaskAndSeller(ctx context.Context, taskID, seller string) (*domain.Bid, error)

	// ListByTask returns bids in submission order (created_at ascending).
	ListByTask(ctx context.Context, taskID string) ([]*domain.Bid, error)
	ListBySeller(ctx context.Context, seller string) ([]*domain.Bid, error)
}
