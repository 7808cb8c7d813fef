package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusOpen           TaskStatus = "open"
	StatusAssigned       TaskStatus = "assigned"
	StatusPendingPayment TaskStatus = "pending_payment"
	StatusCompleted      TaskStatus = "completed"
)

// ActiveStatuses enumerates every status in which a task still occupies its
// title. Kept in sync with Active(); stores that can only filter by
// enumeration (partial indexes) build their predicates from this list.
var ActiveStatuses = []TaskStatus{StatusOpen, StatusAssigned, StatusPendingPayment}

// LifecycleMode selects which transition table governs tasks. The full mode
// tracks payment; the simple mode treats acceptance as terminal. A deployment
// runs exactly one mode, the tables are never mixed.
type LifecycleMode string

const (
	LifecycleFull   LifecycleMode = "full"
	LifecycleSimple LifecycleMode = "simple"
)

// fullTransitions defines the allowed state machine transitions with payment
// tracking. Transitions are monotonic: no status ever moves backward.
var fullTransitions = map[TaskStatus][]TaskStatus{
	StatusOpen:           {StatusAssigned},
	StatusAssigned:       {StatusPendingPayment},
	StatusPendingPayment: {StatusCompleted},
}

// simpleTransitions is the two-state variant: accepting a bid ends the lifecycle.
var simpleTransitions = map[TaskStatus][]TaskStatus{
	StatusOpen: {StatusAssigned},
}

var ErrTaskNotFound = errors.New("task not found")
var ErrDuplicateTitle = errors.New("task title already in use")
var ErrPriceOutOfRange = errors.New("task price out of range")
var ErrTaskNotOpen = errors.New("task is not open")
var ErrNotOwner = errors.New("only the task buyer may perform this action")
var ErrNotAssignedSeller = errors.New("only the assigned seller may perform this action")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrStaleState = errors.New("task state changed concurrently")
var ErrGatewayFailure = errors.New("payment gateway request failed")
var ErrStoreCorrupt = errors.New("persisted store is corrupt")

// CanTransition reports whether moving from one status to another is valid
// under the given lifecycle mode.
func (m LifecycleMode) CanTransition(from, to TaskStatus) bool {
	table := fullTransitions
	if m == LifecycleSimple {
		table = simpleTransitions
	}
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Valid reports whether the mode is one of the known lifecycle modes.
func (m LifecycleMode) Valid() bool {
	return m == LifecycleFull || m == LifecycleSimple
}

// StatusHistoryEntry records a single status transition on a task.
type StatusHistoryEntry struct {
	Status    TaskStatus `json:"status" bson:"status"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
	Actor     string     `json:"actor,omitempty" bson:"actor,omitempty"`
}

// Task is the unit of work a buyer posts at a fixed price. The ID is the
// identity; the title is display text that additionally must stay unique
// among non-completed tasks because the settlement callback correlates by
// (title, buyer).
type Task struct {
	ID             string               `json:"id" bson:"_id,omitempty"`
	Title          string               `json:"title" bson:"title"`
	Description    string               `json:"description" bson:"description"`
	Buyer          string               `json:"buyer" bson:"buyer"`
	Price          int                  `json:"price" bson:"price"`
	Status         TaskStatus           `json:"status" bson:"status"`
	AssignedSeller string               `json:"assigned_seller,omitempty" bson:"assigned_seller,omitempty"`
	StatusHistory  []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// Payout returns what the seller receives after the flat platform fee.
// The fee is waived when the price does not exceed it.
func (t *Task) Payout(platformFee int) int {
	if t.Price > platformFee {
		return t.Price - platformFee
	}
	return t.Price
}

// Active reports whether the task still occupies its title (for the
// duplicate-title rule).
func (t *Task) Active() bool {
	return t.Status != StatusCompleted
}
