package domain

import (
	"errors"
	"time"
)

var ErrDuplicateBid = errors.New("seller already bid on this task")
var ErrSelfBid = errors.New("buyer cannot bid on their own task")
var ErrNoSuchBid = errors.New("bid not found")

// Bid is a seller's offer to perform a specific open task. At most one bid
// exists per (task, seller) pair. Bids are never deleted; they simply become
// unreachable once the task leaves the open status.
type Bid struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TaskID    string    `json:"task_id" bson:"task_id"`
	TaskTitle string    `json:"task_title" bson:"task_title"`
	Seller    string    `json:"seller" bson:"seller"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
