package dto

import (
	"todoTracker/internal/models/task"
)

// TaskRequest тело POST и PUT. createdAt, updatedAt и isOverdue
// выставляет сервер, поэтому из запроса они не читаются.
type TaskRequest struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      bool          `json:"status"`
	Priority    task.Priority `json:"priority"`
	Category    task.Category `json:"category"`
	DueDate     task.Date     `json:"dueDate"`
}

type TaskResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      bool          `json:"status"`
	CreatedAt   task.Date     `json:"createdAt"`
	UpdatedAt   task.Date     `json:"updatedAt"`
	Priority    task.Priority `json:"priority"`
	Category    task.Category `json:"category"`
	DueDate     task.Date     `json:"dueDate"`
	IsOverdue   bool          `json:"isOverdue"`
}

func (r *TaskRequest) ToTask() *task.Task {
	return &task.Task{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Category:    r.Category,
		DueDate:     r.DueDate,
	}
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Priority:    t.Priority,
		Category:    t.Category,
		DueDate:     t.DueDate,
		IsOverdue:   t.IsOverdue,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
