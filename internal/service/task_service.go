package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/kanban"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetBoardTasks(ctx context.Context, userID, boardID uuid.UUID) ([]dto.TaskResponse, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
	GetMyTasks(ctx context.Context, userID uuid.UUID) ([]dto.MyTaskResponse, error)
	GetStats(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) (*dto.TaskStatsResponse, error)
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	boardRepo repository.BoardRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		metrics:   m,
		logger:    logger,
	}
}

// CreateTask creates a task at the bottom of its column. The position is
// the current count of tasks in the (board, status) partition, so it is
// scoped to the column, not the board.
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	board, err := s.findBoard(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}
	if !policy.IsMember(board, userID) {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}
	if !policy.For(policy.ResolveRole(board, userID)).CanCreate {
		return nil, response.NewForbiddenError("Your role cannot create tasks on this board", "")
	}

	status := req.Status
	if status == "" {
		status = domain.StatusAssigned
	}
	if !status.IsValid() {
		return nil, response.NewValidationError("Unknown column", string(status))
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, response.NewValidationError("Unknown priority", string(priority))
	}

	count, err := s.taskRepo.CountByBoardAndStatus(ctx, req.BoardID, status)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to compute task position", err.Error())
	}

	task := &domain.Task{
		BoardID:     req.BoardID,
		Content:     req.Content,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Deadline:    req.Deadline,
		Tag:         orDefault(req.Tag, "General"),
		Assignee:    orDefault(req.Assignee, "Unassigned"),
		AssignedTo:  req.AssignedTo,
		Position:    int(count),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}

	resp := dto.ToTaskResponse(task)
	return &resp, nil
}

// GetBoardTasks returns the board's tasks ordered by column position
func (s *taskServiceImpl) GetBoardTasks(ctx context.Context, userID, boardID uuid.UUID) ([]dto.TaskResponse, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !policy.IsMember(board, userID) {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}

	tasks, err := s.taskRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
	}
	return dto.ToTaskResponses(tasks), nil
}

// UpdateTask edits a task's fields. Column and position are only changed
// through MoveTask.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, board, err := s.findTaskWithBoard(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !policy.IsMember(board, userID) {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}
	if !policy.For(policy.ResolveRole(board, userID)).CanEdit {
		return nil, response.NewForbiddenError("Your role cannot edit tasks on this board", "")
	}

	if req.Content != nil {
		task.Content = *req.Content
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, response.NewValidationError("Unknown priority", string(*req.Priority))
		}
		task.Priority = *req.Priority
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	if req.Tag != nil {
		task.Tag = *req.Tag
	}
	if req.Assignee != nil {
		task.Assignee = *req.Assignee
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	resp := dto.ToTaskResponse(task)
	return &resp, nil
}

// MoveTask moves a task to a column slot and durably recomputes positions
// in the affected columns: the source column is compacted and the
// destination column is spliced at the drop index. When the client was
// rendering a filtered view the drop index is first mapped back onto the
// full column.
func (s *taskServiceImpl) MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
	task, board, err := s.findTaskWithBoard(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !policy.IsMember(board, userID) {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}
	if !policy.For(policy.ResolveRole(board, userID)).CanMove {
		return nil, response.NewForbiddenError("Your role cannot move tasks on this board", "")
	}
	if !req.Status.IsValid() {
		return nil, response.NewValidationError("Unknown column", string(req.Status))
	}

	tasks, err := s.taskRepo.FindByBoardID(ctx, board.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
	}

	taskPtrs := make([]*domain.Task, len(tasks))
	for i := range tasks {
		taskPtrs[i] = &tasks[i]
	}
	order := kanban.FromTasks(taskPtrs)

	sourceCol := task.Status
	sourceIdx := indexIn(order.Column(sourceCol), taskID)
	if sourceIdx < 0 {
		return nil, response.NewAppError(response.ErrCodeInternal, "Task missing from its column order", "")
	}

	destIdx := req.Position
	if len(req.VisibleTaskIDs) > 0 {
		destIdx = kanban.RealIndex(order.Column(req.Status), req.VisibleTaskIDs, req.Position)
	}

	if err := order.Apply(kanban.Move{
		TaskID:    taskID,
		Source:    sourceCol,
		Dest:      req.Status,
		SourceIdx: sourceIdx,
		DestIdx:   destIdx,
	}); err != nil {
		return nil, err
	}

	// Persist positions for both affected columns in one transaction
	updates := positionUpdates(order, sourceCol)
	if req.Status != sourceCol {
		updates = append(updates, positionUpdates(order, req.Status)...)
	}
	if err := s.taskRepo.UpdatePositions(ctx, updates); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to persist task positions", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskMoved()
	}

	moved, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload task", err.Error())
	}
	resp := dto.ToTaskResponse(moved)
	return &resp, nil
}

// DeleteTask removes a task. Only roles with delete capability (the
// owner) may do this.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	task, board, err := s.findTaskWithBoard(ctx, taskID)
	if err != nil {
		return err
	}
	if !policy.IsMember(board, userID) {
		return response.NewForbiddenError("You do not have access to this board", "")
	}
	if !policy.For(policy.ResolveRole(board, userID)).CanDelete {
		return response.NewForbiddenError("Your role cannot delete tasks on this board", "")
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}
	return nil
}

// GetMyTasks returns the caller's assigned tasks across all live boards,
// sorted by deadline with undated tasks last.
func (s *taskServiceImpl) GetMyTasks(ctx context.Context, userID uuid.UUID) ([]dto.MyTaskResponse, error) {
	tasks, err := s.taskRepo.FindByAssignee(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
	}

	titles := make(map[uuid.UUID]string)
	out := make([]dto.MyTaskResponse, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		title, ok := titles[t.BoardID]
		if !ok {
			board, err := s.boardRepo.FindByID(ctx, t.BoardID)
			if err != nil {
				// Board vanished between the join and now; skip the task
				continue
			}
			title = board.Title
			titles[t.BoardID] = title
		}

		state := "Pending"
		if t.Status == domain.StatusDone {
			state = "Completed"
		}
		out = append(out, dto.MyTaskResponse{
			ID:         t.ID,
			BoardID:    t.BoardID,
			BoardTitle: title,
			Content:    t.Content,
			Priority:   t.Priority,
			Deadline:   t.Deadline,
			State:      state,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Deadline, out[j].Deadline
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return out, nil
}

// GetStats returns completion figures. With a board id the scope is that
// board (access gated); without one the scope is the caller's assigned
// tasks.
func (s *taskServiceImpl) GetStats(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) (*dto.TaskStatsResponse, error) {
	var tasks []domain.Task
	var err error

	if boardID != nil {
		board, berr := s.findBoard(ctx, *boardID)
		if berr != nil {
			return nil, berr
		}
		if !policy.IsMember(board, userID) {
			return nil, response.NewForbiddenError("You do not have access to this board", "")
		}
		tasks, err = s.taskRepo.FindByBoardID(ctx, *boardID)
	} else {
		tasks, err = s.taskRepo.FindByAssignee(ctx, userID)
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
	}

	stats := &dto.TaskStatsResponse{Total: int64(len(tasks))}
	for i := range tasks {
		switch tasks[i].Status {
		case domain.StatusDone:
			stats.Completed++
		case domain.StatusInProgress:
			stats.InProgress++
		}
	}
	if stats.Total > 0 {
		stats.Efficiency = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}

// findTaskWithBoard loads a task and its board. A task whose board is gone
// is treated as not found; orphans never surface on read paths.
func (s *taskServiceImpl) findTaskWithBoard(ctx context.Context, taskID uuid.UUID) (*domain.Task, *domain.Board, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Task not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch task", err.Error())
	}

	board, err := s.boardRepo.FindByID(ctx, task.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Task not found", "board deleted")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return task, board, nil
}

func (s *taskServiceImpl) findBoard(ctx context.Context, boardID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return board, nil
}

// positionUpdates reindexes one column of the order into repository updates
func positionUpdates(order kanban.Order, col domain.TaskStatus) []repository.PositionUpdate {
	ids := order.Column(col)
	updates := make([]repository.PositionUpdate, 0, len(ids))
	for i, id := range ids {
		updates = append(updates, repository.PositionUpdate{
			TaskID:   id,
			Status:   col,
			Position: i,
		})
	}
	return updates
}

func indexIn(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
