package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

// TaskHandler exposes task CRUD, board movement and reporting endpoints
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, task)
}

// GetBoardTasks handles GET /tasks?boardId=...
func (h *TaskHandler) GetBoardTasks(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Query("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "A valid boardId query parameter is required")
		return
	}

	tasks, err := h.taskService.GetBoardTasks(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tasks)
}

// UpdateTask handles PUT /tasks/:taskId
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// MoveTask handles PUT /tasks/:taskId/move
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.MoveTask(c.Request.Context(), userID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/:taskId
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// GetMyTasks handles GET /tasks/my-tasks
func (h *TaskHandler) GetMyTasks(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetMyTasks(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tasks)
}

// GetStats handles GET /tasks/stats with an optional boardId query parameter
func (h *TaskHandler) GetStats(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var boardID *uuid.UUID
	if raw := c.Query("boardId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid boardId query parameter")
			return
		}
		boardID = &id
	}

	stats, err := h.taskService.GetStats(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, stats)
}
