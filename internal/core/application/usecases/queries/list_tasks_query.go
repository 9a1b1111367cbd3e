package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	defaultTaskListLimit = 100
	maxTaskListLimit     = 500
)

var ErrListTasksQueryIsNotConstructed = errors.New(
	"ListTasksQuery must be created via NewListTasksQuery constructor",
)

// ListTasksQuery lists tasks newest first, optionally filtered by status.
type ListTasksQuery struct {
	status *task.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewListTasksQuery accepts an empty status for "all" and a zero limit for the default.
func NewListTasksQuery(status string, limit int) (ListTasksQuery, error) {
	q := ListTasksQuery{limit: limit, guard: guard.NewConstructorGuard()}

	if status != "" {
		s := task.Status(status)
		if err := s.Validate(); err != nil {
			return ListTasksQuery{}, err
		}
		q.status = &s
	}

	if limit < 0 || limit > maxTaskListLimit {
		return ListTasksQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, maxTaskListLimit)
	}
	if limit == 0 {
		q.limit = defaultTaskListLimit
	}
	return q, nil
}

func (q ListTasksQuery) Validate() error {
	return q.guard.Validate(ErrListTasksQueryIsNotConstructed)
}

func (q ListTasksQuery) Status() *task.Status {
	return q.status
}

func (q ListTasksQuery) Limit() int {
	return q.limit
}
