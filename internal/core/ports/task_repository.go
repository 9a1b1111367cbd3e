package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
)

// TaskRepository defines the persistence contract for task aggregates.
type TaskRepository interface {
	// Add persists a new task.
	Add(ctx context.Context, aggregate *task.Task) error

	// Update persists status, courier, payment status and updated_at of an existing task.
	Update(ctx context.Context, aggregate *task.Task) error

	// Get retrieves a task without locking it.
	Get(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// GetForUpdate retrieves a task and holds its row lock until the unit of work ends.
	// Every state transition goes through this method so transitions of one task
	// are serialized across handlers and instances.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// ListPendingIDs returns up to limit pending task ids, oldest first.
	ListPendingIDs(ctx context.Context, limit int) ([]kernel.UUID, error)
}
