package ports

import (
	"context"
	"time"

	"github.com/taskbid/marketplace/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
//
// The store is shared between uncoordinated writers, so every mutation is a
// conditional write: Transition only applies when the persisted status still
// matches the expected one. Callers reload and re-validate after a failed
// conditional write.
type TaskRepository interface {
	// Create inserts a new task. Returns domain.ErrDuplicateTitle when an
	// active (non-completed) task already uses the title.
	Create(ctx context.Context, t *domain.Task) error

	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindActiveByTitle retrieves the non-completed task occupying the title.
	FindActiveByTitle(ctx context.Context, title string) (*domain.Task, error)

	// FindActiveByTitleAndBuyer resolves the settlement callback's correlation
	// keys (task title + buyer username) to a task.
	FindActiveByTitleAndBuyer(ctx context.Context, title, buyer string) (*domain.Task, error)

	// ListOpenExcluding returns all open tasks whose buyer is not username.
	ListOpenExcluding(ctx context.Context, username string) ([]*domain.Task, error)
	ListByBuyer(ctx context.Context, buyer string) ([]*domain.Task, error)
	ListAssignedTo(ctx context.Context, seller string) ([]*domain.Task, error)

	// Transition atomically moves the task from status `from` to `to` and
	// appends a history entry, guarded by a filter on the expected current
	// status. assignedSeller is recorded when non-empty. Returns
	// domain.ErrStaleState when the guarded write matched no document.
	Transition(ctx context.Context, id string, from, to domain.TaskStatus, assignedSeller, actor string, ts time.Time) error
}
