package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListTasksQueryHandler struct {
	db *gorm.DB
}

func NewListTasksQueryHandler(db *gorm.DB) ListTasksQueryHandler {
	return ListTasksQueryHandler{db: db}
}

func (h ListTasksQueryHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := "SELECT " + taskColumns + " FROM tasks"
	args := make([]any, 0, 2)
	if s := query.Status(); s != nil {
		sqlText += " WHERE status = ?"
		args = append(args, string(*s))
	}
	sqlText += " ORDER BY created_at DESC, id LIMIT ?"
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]TaskView, 0)
	for rows.Next() {
		view, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tasks = append(tasks, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
