package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskbid/marketplace/internal/core/domain"
	"github.com/taskbid/marketplace/internal/core/ports"
)

// MarketRules carries the configurable marketplace constants.
type MarketRules struct {
	MinTaskPrice  int
	MaxTaskPrice  int
	PlatformFee   int
	Lifecycle     domain.LifecycleMode
	PublicBaseURL string
}

// TaskService implements the task ledger and the cross-ledger marketplace
// orchestration (accepting bids, completion, settlement confirmation).
type TaskService struct {
	tasks   ports.TaskRepository
	bids    ports.BidRepository
	gateway ports.PaymentGateway
	rules   MarketRules
	logger  zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, bids ports.BidRepository, gateway ports.PaymentGateway, rules MarketRules, logger zerolog.Logger) *TaskService {
	if rules.MinTaskPrice <= 0 {
		rules.MinTaskPrice = 1
	}
	if rules.MaxTaskPrice < rules.MinTaskPrice {
		rules.MaxTaskPrice = 10
	}
	if !rules.Lifecycle.Valid() {
		rules.Lifecycle = domain.LifecycleFull
	}
	return &TaskService{tasks: tasks, bids: bids, gateway: gateway, rules: rules, logger: logger}
}

// Create posts a new open task for the buyer.
func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if input.Price < s.rules.MinTaskPrice || input.Price > s.rules.MaxTaskPrice {
		return nil, domain.ErrPriceOutOfRange
	}

	if _, err := s.tasks.FindActiveByTitle(ctx, input.Title); err == nil {
		return nil, domain.ErrDuplicateTitle
	} else if !errors.Is(err, domain.ErrTaskNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          generateTaskID(),
		Title:       input.Title,
		Description: input.Description,
		Buyer:       input.Buyer,
		Price:       input.Price,
		Status:      domain.StatusOpen,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusOpen, Timestamp: now, Actor: input.Buyer},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique active-title index backs up the check above when two
	// creates race on the same title.
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("buyer", input.Buyer).Int("price", input.Price).Msg("task created")
	return task, nil
}

func (s *TaskService) ListOpenExcluding(ctx context.Context, username string) ([]*domain.Task, error) {
	return s.tasks.ListOpenExcluding(ctx, username)
}

func (s *TaskService) ListByBuyer(ctx context.Context, buyer string) ([]*domain.Task, error) {
	return s.tasks.ListByBuyer(ctx, buyer)
}

func (s *TaskService) ListAssignedTo(ctx context.Context, seller string) ([]*domain.Task, error) {
	return s.tasks.ListAssignedTo(ctx, seller)
}

// AcceptBid transitions the task open → assigned on behalf of the buyer.
// Preconditions are validated against a fresh read, and the write itself is
// guarded on the open status, so of two racing accepts exactly one wins and
// the other observes ErrTaskNotOpen.
func (s *TaskService) AcceptBid(ctx context.Context, taskID, seller, actingUser string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Buyer != actingUser {
		return nil, domain.ErrNotOwner
	}
	if task.Status != domain.StatusOpen {
		return nil, domain.ErrTaskNotOpen
	}
	if _, err := s.bids.FindByTaskAndSeller(ctx, taskID, seller); err != nil {
		return nil, err
	}

	err = s.tasks.Transition(ctx, taskID, domain.StatusOpen, domain.StatusAssigned, seller, actingUser, time.Now().UTC())
	if err != nil {
		return nil, s.explainStaleWrite(ctx, taskID, err, domain.StatusOpen)
	}

	s.logger.Info().Str("task_id", taskID).Str("seller", seller).Msg("bid accepted")
	return s.tasks.FindByID(ctx, taskID)
}

// MarkComplete transitions assigned → pending_payment on behalf of the
// assigned seller. In the simple lifecycle the assigned status is terminal
// and this returns ErrInvalidTransition.
func (s *TaskService) MarkComplete(ctx context.Context, taskID, actingUser string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedSeller != actingUser {
		return nil, domain.ErrNotAssignedSeller
	}
	if !s.rules.Lifecycle.CanTransition(task.Status, domain.StatusPendingPayment) {
		return nil, domain.ErrInvalidTransition
	}

	err = s.tasks.Transition(ctx, taskID, domain.StatusAssigned, domain.StatusPendingPayment, "", actingUser, time.Now().UTC())
	if err != nil {
		return nil, s.explainStaleWrite(ctx, taskID, err, domain.StatusAssigned)
	}

	s.logger.Info().Str("task_id", taskID).Str("seller", actingUser).Msg("task marked complete, awaiting payment")
	return s.tasks.FindByID(ctx, taskID)
}

// ConfirmPayment transitions pending_payment → completed on behalf of the
// buyer. Confirming an already-completed task returns it unchanged: the
// gateway may deliver the settlement callback more than once.
func (s *TaskService) ConfirmPayment(ctx context.Context, taskID, actingUser string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Buyer != actingUser {
		return nil, domain.ErrNotOwner
	}
	if task.Status == domain.StatusCompleted {
		return task, nil
	}
	if !s.rules.Lifecycle.CanTransition(task.Status, domain.StatusCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	err = s.tasks.Transition(ctx, taskID, domain.StatusPendingPayment, domain.StatusCompleted, "", actingUser, time.Now().UTC())
	if err != nil {
		// A concurrent confirmation winning the race is still a success
		// for this caller.
		updated, readErr := s.tasks.FindByID(ctx, taskID)
		if readErr == nil && updated.Status == domain.StatusCompleted {
			return updated, nil
		}
		return nil, s.explainStaleWrite(ctx, taskID, err, domain.StatusPendingPayment)
	}

	updated, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("seller", updated.AssignedSeller).
		Int("payout", updated.Payout(s.rules.PlatformFee)).
		Msg("payment confirmed, task completed")
	return updated, nil
}

// CreateCheckout asks the gateway for a hosted checkout URL. The ledger is
// not touched while the gateway call is pending; settlement is applied later
// by the callback the redirect URLs point at.
func (s *TaskService) CreateCheckout(ctx context.Context, taskID, actingUser string) (string, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return "", err
	}
	if task.Buyer != actingUser {
		return "", domain.ErrNotOwner
	}
	if task.Status != domain.StatusPendingPayment {
		return "", domain.ErrInvalidTransition
	}

	successURL := fmt.Sprintf("%s/payments/callback?status=success&user=%s&task=%s",
		s.rules.PublicBaseURL, url.QueryEscape(task.Buyer), url.QueryEscape(task.Title))
	cancelURL := s.rules.PublicBaseURL + "/payments/callback?status=cancel"

	checkoutURL, err := s.gateway.CreateCheckout(ctx, task.Title, task.Price, successURL, cancelURL)
	if err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("checkout session creation failed")
		return "", err
	}

	s.logger.Info().Str("task_id", taskID).Str("buyer", actingUser).Msg("checkout session created")
	return checkoutURL, nil
}

// Payout exposes the settlement split for the given task under the configured
// platform fee.
func (s *TaskService) Payout(task *domain.Task) int {
	return task.Payout(s.rules.PlatformFee)
}

// explainStaleWrite re-reads the task after a failed guarded write and maps
// the failure to the most precise business error available.
func (s *TaskService) explainStaleWrite(ctx context.Context, taskID string, writeErr error, expected domain.TaskStatus) error {
	if !errors.Is(writeErr, domain.ErrStaleState) {
		return writeErr
	}
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return writeErr
	}
	if task.Status != expected {
		if expected == domain.StatusOpen {
			return domain.ErrTaskNotOpen
		}
		return domain.ErrInvalidTransition
	}
	return writeErr
}

// generateTaskID returns an opaque task identifier: "TSK-" plus 16 hex
// characters. 64 bits of randomness keeps _id collisions out of reach; a
// collision would surface as a duplicate-key error on the wrong index.
func generateTaskID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("TSK-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("TSK-%016X", b)
}
