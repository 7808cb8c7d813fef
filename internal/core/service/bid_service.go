package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskbid/marketplace/internal/core/domain"
	"github.com/taskbid/marketplace/internal/core/ports"
)

// BidService implements the bid ledger.
type BidService struct {
	bids   ports.BidRepository
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewBidService(bids ports.BidRepository, tasks ports.TaskRepository, logger zerolog.Logger) *BidService {
	return &BidService{bids: bids, tasks: tasks, logger: logger}
}

// Submit records a seller's bid on an open task. The task is re-read at
// submission time: a bid against a task that has left the open status is
// rejected even if the caller's view was stale.
func (s *BidService) Submit(ctx context.Context, input ports.SubmitBidInput) (*domain.Bid, error) {
	task, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.StatusOpen {
		return nil, domain.ErrTaskNotOpen
	}
	if task.Buyer == input.Seller {
		return nil, domain.ErrSelfBid
	}

	bid := &domain.Bid{
		ID:        generateBidID(),
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Seller:    input.Seller,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}

	// The unique (task_id, seller) index turns a racing duplicate into
	// ErrDuplicateBid at the store.
	if err := s.bids.Create(ctx, bid); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("seller", input.Seller).Msg("bid submitted")
	return bid, nil
}

func (s *BidService) ListForTask(ctx context.Context, taskID string) ([]*domain.Bid, error) {
	return s.bids.ListByTask(ctx, taskID)
}

func (s *BidService) ListBySeller(ctx context.Context, seller string) ([]*domain.Bid, error) {
	return s.bids.ListBySeller(ctx, seller)
}

// generateBidID returns an opaque bid identifier: "BID-" plus 16 hex
// characters, same width as task IDs.
func generateBidID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("BID-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("BID-%016X", b)
}
