package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error)
	FindByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	CountByBoardAndStatus(ctx context.Context, boardID uuid.UUID, status domain.TaskStatus) (int64, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdatePositions(ctx context.Context, updates []PositionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error
	FindOrphaned(ctx context.Context, limit int) ([]domain.Task, error)
}

// PositionUpdate carries a single task's new column and position,
// applied as one batch inside a transaction.
type PositionUpdate struct {
	TaskID   uuid.UUID
	Status   domain.TaskStatus
	Position int
}

// taskRepositoryImpl is the GORM implementation of TaskRepository
type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create creates a new task
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by its ID
func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByBoardID returns the board's tasks ordered by column position
func (r *taskRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("status ASC, position ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByAssignee returns every task assigned to the user across boards.
// Tasks whose board has been deleted are excluded.
func (r *taskRepositoryImpl) FindByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN boards ON boards.id = tasks.board_id AND boards.deleted_at IS NULL").
		Where("tasks.assigned_to = ?", userID).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByBoardAndStatus returns the number of tasks in one column of a board
func (r *taskRepositoryImpl) CountByBoardAndStatus(ctx context.Context, boardID uuid.UUID, status domain.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("board_id = ? AND status = ?", boardID, status).
		Count(&count).Error
	return count, err
}

// Update saves the full task record
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// UpdatePositions applies a batch of column/position changes atomically
func (r *taskRepositoryImpl) UpdatePositions(ctx context.Context, updates []PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&domain.Task{}).
				Where("id = ?", u.TaskID).
				Updates(map[string]interface{}{
					"status":   u.Status,
					"position": u.Position,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a task
func (r *taskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}

// DeleteByBoardID removes every task belonging to a board
func (r *taskRepositoryImpl) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Delete(&domain.Task{}).Error
}

// FindOrphaned returns tasks whose board no longer exists, up to limit.
// Used by the cleanup job.
func (r *taskRepositoryImpl) FindOrphaned(ctx context.Context, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN boards ON boards.id = tasks.board_id AND boards.deleted_at IS NULL").
		Where("boards.id IS NULL").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
