package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus identifies the column a task occupies on its board
type TaskStatus string

const (
	StatusAssigned   TaskStatus = "col-1"
	StatusInProgress TaskStatus = "col-2"
	StatusReview     TaskStatus = "col-3"
	StatusDone       TaskStatus = "col-4"
)

// ColumnOrder is the fixed left-to-right column layout of every board
var ColumnOrder = []TaskStatus{StatusAssigned, StatusInProgress, StatusReview, StatusDone}

// IsValid reports whether the status is one of the known columns
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// TaskPriority represents the priority level of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// IsValid reports whether the priority is a known level
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single card on a board. Position orders tasks within
// a (board, status) partition; it carries no meaning across columns.
type Task struct {
	BaseModel
	BoardID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_tasks_board_id;index:idx_tasks_board_status,priority:1" json:"boardId"`
	Content     string       `gorm:"type:varchar(255);not null" json:"content"`
	Description string       `gorm:"type:text;default:''" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'col-1';index:idx_tasks_board_status,priority:2" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	Deadline    *time.Time   `gorm:"type:timestamp" json:"deadline,omitempty"`
	Tag         string       `gorm:"type:varchar(100);default:'General'" json:"tag"`
	Assignee    string       `gorm:"type:varchar(255);default:'Unassigned'" json:"assignee"`
	AssignedTo  *uuid.UUID   `gorm:"type:uuid;index:idx_tasks_assigned_to" json:"assignedTo,omitempty"`
	Position    int          `gorm:"not null;default:0" json:"position"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
