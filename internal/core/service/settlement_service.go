package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskbid/marketplace/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for gateway callbacks.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, taskTitle, username, status string) (bool, error)
	Mark(ctx context.Context, taskTitle, username, status string) error
}

type settlementService struct {
	tasks       ports.TaskRepository
	engine      ports.TaskService
	dedup       DedupChecker
	platformFee int
	log         zerolog.Logger
}

// NewSettlementService returns a SettlementService implementation. Success
// callbacks are resolved to a task via the (title, buyer) correlation keys
// the gateway echoes back, then applied through the engine's ConfirmPayment.
func NewSettlementService(
	tasks ports.TaskRepository,
	engine ports.TaskService,
	dedup DedupChecker,
	platformFee int,
	log zerolog.Logger,
) ports.SettlementService {
	return &settlementService{
		tasks:       tasks,
		engine:      engine,
		dedup:       dedup,
		platformFee: platformFee,
		log:         log,
	}
}

// Process applies a single gateway redirect callback.
func (s *settlementService) Process(ctx context.Context, in ports.SettlementInput) error {
	// 1. Cancellations carry no state change, they are informational only.
	if in.Status == ports.SettlementCancel {
		s.log.Info().Str("user", in.Username).Msg("checkout cancelled by payer")
		return nil
	}
	if in.Status != ports.SettlementSuccess {
		return fmt.Errorf("process settlement: unknown callback status %q", in.Status)
	}

	// 2. Idempotency check — the gateway may redeliver; skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.TaskTitle, in.Username, in.Status)
	if err != nil {
		s.log.Warn().Err(err).Str("task", in.TaskTitle).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("task", in.TaskTitle).Str("user", in.Username).Msg("duplicate settlement callback skipped")
		return nil
	}

	// 3. Resolve the correlation keys to a task.
	task, err := s.tasks.FindActiveByTitleAndBuyer(ctx, in.TaskTitle, in.Username)
	if err != nil {
		return fmt.Errorf("process settlement: %w", err)
	}

	// 4. Confirm through the engine. ConfirmPayment is idempotent, so a
	// redelivered callback that slipped past dedup is still harmless.
	confirmed, err := s.engine.ConfirmPayment(ctx, task.ID, in.Username)
	if err != nil {
		return fmt.Errorf("process settlement: confirm payment: %w", err)
	}

	// 5. Mark only after the confirm landed. Marking first would make a
	// transiently failed confirm swallow the gateway's redelivery and strand
	// the task in pending_payment until the dedup key expires.
	if markErr := s.dedup.Mark(ctx, in.TaskTitle, in.Username, in.Status); markErr != nil {
		s.log.Warn().Err(markErr).Str("task", in.TaskTitle).Msg("failed to set dedup key")
	}

	s.log.Info().
		Str("task_id", confirmed.ID).
		Str("buyer", in.Username).
		Str("seller", confirmed.AssignedSeller).
		Int("price", confirmed.Price).
		Int("payout", confirmed.Payout(s.platformFee)).
		Msg("settlement applied")

	return nil
}
