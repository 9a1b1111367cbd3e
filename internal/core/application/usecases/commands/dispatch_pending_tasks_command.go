package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDispatchPendingTasksCommandIsNotConstructed = errors.New(
	"DispatchPendingTasksCommand must be created via NewDispatchPendingTasksCommand constructor",
)

// DispatchPendingTasksCommand retries assignment for up to batchSize pending tasks.
type DispatchPendingTasksCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchPendingTasksCommand(batchSize int) (DispatchPendingTasksCommand, error) {
	if batchSize <= 0 {
		return DispatchPendingTasksCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return DispatchPendingTasksCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchPendingTasksCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPendingTasksCommandIsNotConstructed)
}

func (c DispatchPendingTasksCommand) BatchSize() int {
	return c.batchSize
}
