package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

// BoardHandler exposes board and membership endpoints
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// GetBoards handles GET /boards
func (h *BoardHandler) GetBoards(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardService.GetBoards(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, boards)
}

// CreateBoard handles POST /boards
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, board)
}

// GetBoard handles GET /boards/:boardId
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard handles DELETE /boards/:boardId
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), userID, boardID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// JoinBoard handles PUT /boards/:boardId/join
func (h *BoardHandler) JoinBoard(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	var req dto.JoinBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.JoinBoard(c.Request.Context(), userID, boardID, policy.Normalize(string(req.Role)))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// LeaveBoard handles PUT /boards/:boardId/leave
func (h *BoardHandler) LeaveBoard(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	if err := h.boardService.LeaveBoard(c.Request.Context(), userID, boardID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"left": true})
}

// KickMember handles DELETE /boards/:boardId/members/:userId
func (h *BoardHandler) KickMember(c *gin.Context) {
	callerID, ok := extractUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.boardService.KickMember(c.Request.Context(), callerID, boardID, targetID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"removed": true})
}
