package dto

import (
	"time"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
)

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	BoardID     uuid.UUID           `json:"boardId" binding:"required"`
	Content     string              `json:"content" binding:"required,min=1,max=255"`
	Description string              `json:"description"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	Deadline    *time.Time          `json:"deadline"`
	Tag         string              `json:"tag"`
	Assignee    string              `json:"assignee"`
	AssignedTo  *uuid.UUID          `json:"assignedTo"`
}

// UpdateTaskRequest represents the request to update a task's fields.
// Nil pointers leave the corresponding field unchanged.
type UpdateTaskRequest struct {
	Content     *string              `json:"content"`
	Description *string              `json:"description"`
	Priority    *domain.TaskPriority `json:"priority"`
	Deadline    *time.Time           `json:"deadline"`
	Tag         *string              `json:"tag"`
	Assignee    *string              `json:"assignee"`
	AssignedTo  *uuid.UUID           `json:"assignedTo"`
}

// MoveTaskRequest represents the request to move a task to a column slot.
// Position is the drop index in the destination column. When the client is
// rendering a filtered view it sends the IDs it can see so the drop index
// can be mapped back onto the full column.
type MoveTaskRequest struct {
	Status         domain.TaskStatus `json:"status" binding:"required"`
	Position       int               `json:"position"`
	VisibleTaskIDs []uuid.UUID       `json:"visibleTaskIds,omitempty"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID          uuid.UUID           `json:"id"`
	BoardID     uuid.UUID           `json:"boardId"`
	Content     string              `json:"content"`
	Description string              `json:"description"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	Deadline    *time.Time          `json:"deadline,omitempty"`
	Tag         string              `json:"tag"`
	Assignee    string              `json:"assignee"`
	AssignedTo  *uuid.UUID          `json:"assignedTo,omitempty"`
	Position    int                 `json:"position"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// MyTaskResponse represents one entry of the caller's cross-board task list
type MyTaskResponse struct {
	ID         uuid.UUID           `json:"id"`
	BoardID    uuid.UUID           `json:"boardId"`
	BoardTitle string              `json:"boardTitle"`
	Content    string              `json:"content"`
	Priority   domain.TaskPriority `json:"priority"`
	Deadline   *time.Time          `json:"deadline,omitempty"`
	State      string              `json:"state"`
}

// TaskStatsResponse represents aggregate completion figures
type TaskStatsResponse struct {
	Total      int64   `json:"total"`
	Completed  int64   `json:"completed"`
	InProgress int64   `json:"inProgress"`
	Efficiency float64 `json:"efficiency"`
}

// ToTaskResponse converts a domain task to its API representation
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		BoardID:     task.BoardID,
		Content:     task.Content,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Deadline:    task.Deadline,
		Tag:         task.Tag,
		Assignee:    task.Assignee,
		AssignedTo:  task.AssignedTo,
		Position:    task.Position,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskResponses converts a task slice preserving order
func ToTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, ToTaskResponse(&tasks[i]))
	}
	return out
}
