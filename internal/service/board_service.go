package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoards(ctx context.Context, userID uuid.UUID) ([]dto.BoardResponse, error)
	GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	JoinBoard(ctx context.Context, userID, boardID uuid.UUID, role domain.Role) (*dto.BoardResponse, error)
	LeaveBoard(ctx context.Context, userID, boardID uuid.UUID) error
	KickMember(ctx context.Context, callerID, boardID, targetID uuid.UUID) error
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo        repository.BoardRepository
	taskRepo         repository.TaskRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	mailer           client.Mailer
	metrics          *metrics.Metrics
	logger           *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	mailer client.Mailer,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:        boardRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		metrics:          m,
		logger:           logger,
	}
}

// CreateBoard creates a board owned by the caller. The owner is not stored
// as a member; ownership alone grants the admin role.
func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	board := &domain.Board{
		Title:   req.Title,
		OwnerID: userID,
		Members: []domain.BoardMember{},
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}
	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("owner_id", userID.String()))

	resp := dto.ToBoardResponse(board, domain.RoleAdmin)
	return &resp, nil
}

// GetBoards returns every board the caller owns or is a member of
func (s *boardServiceImpl) GetBoards(ctx context.Context, userID uuid.UUID) ([]dto.BoardResponse, error) {
	boards, err := s.boardRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch boards", err.Error())
	}

	out := make([]dto.BoardResponse, 0, len(boards))
	for i := range boards {
		role := policy.ResolveRole(&boards[i], userID)
		out = append(out, dto.ToBoardResponse(&boards[i], role))
	}
	return out, nil
}

// GetBoard returns one board with its tasks. Existence is checked before
// access so a stranger probing an unknown id cannot tell the two apart
// from a member probing a deleted one.
func (s *boardServiceImpl) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
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

	role := policy.ResolveRole(board, userID)
	return &dto.BoardDetailResponse{
		BoardResponse: dto.ToBoardResponse(board, role),
		Tasks:         dto.ToTaskResponses(tasks),
	}, nil
}

// JoinBoard adds the caller to a board with the requested role. Joining a
// board the caller already belongs to (or owns) is a no-op that returns
// the current state; no duplicate row and no second notification.
func (s *boardServiceImpl) JoinBoard(ctx context.Context, userID, boardID uuid.UUID, role domain.Role) (*dto.BoardResponse, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if policy.IsMember(board, userID) {
		resp := dto.ToBoardResponse(board, policy.ResolveRole(board, userID))
		return &resp, nil
	}

	role = policy.Normalize(string(role))
	member := &domain.BoardMember{
		BoardID:  boardID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.boardRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to join board", err.Error())
	}

	s.notifyOwnerOfJoin(ctx, board, userID, role)

	board, err = s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToBoardResponse(board, role)
	return &resp, nil
}

// LeaveBoard removes the caller's membership. The owner cannot leave their
// own board. Leaving also strips the caller's notifications for the board.
func (s *boardServiceImpl) LeaveBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return err
	}

	if board.OwnerID == userID {
		return response.NewValidationError("Owner cannot leave their own board", "delete the board instead")
	}

	if _, err := s.boardRepo.FindMember(ctx, boardID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("You are not a member of this board", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to look up membership", err.Error())
	}

	if err := s.boardRepo.RemoveMember(ctx, boardID, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to leave board", err.Error())
	}

	// Best effort: the member's inbox entries for this board go with them
	if err := s.notificationRepo.DeleteByUserAndBoard(ctx, userID, boardID); err != nil {
		s.logger.Warn("Failed to strip notifications on leave",
			zap.String("board_id", boardID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	return nil
}

// KickMember removes a member from a board. Only the owner may kick, and
// the removed user is not notified.
func (s *boardServiceImpl) KickMember(ctx context.Context, callerID, boardID, targetID uuid.UUID) error {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return err
	}

	if !policy.For(policy.ResolveRole(board, callerID)).CanManageMembers {
		return response.NewForbiddenError("Only the board owner can remove members", "")
	}
	if targetID == board.OwnerID {
		return response.NewValidationError("The owner cannot be removed from their own board", "")
	}

	if _, err := s.boardRepo.FindMember(ctx, boardID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Member not found on this board", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to look up membership", err.Error())
	}

	if err := s.boardRepo.RemoveMember(ctx, boardID, targetID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove member", err.Error())
	}

	return nil
}

// DeleteBoard deletes a board with its tasks and notifications. Only the
// owner may delete. The cascade is sequential and best effort: a failure
// on one collection is logged and the rest still runs.
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return err
	}

	if board.OwnerID != userID {
		return response.NewForbiddenError("Only the board owner can delete the board", "")
	}

	if err := s.taskRepo.DeleteByBoardID(ctx, boardID); err != nil {
		s.logger.Error("Failed to delete board tasks",
			zap.String("board_id", boardID.String()),
			zap.Error(err))
	}
	if err := s.notificationRepo.DeleteByBoardID(ctx, boardID); err != nil {
		s.logger.Error("Failed to delete board notifications",
			zap.String("board_id", boardID.String()),
			zap.Error(err))
	}

	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	s.logger.Info("Board deleted",
		zap.String("board_id", boardID.String()),
		zap.String("owner_id", userID.String()))
	return nil
}

// notifyOwnerOfJoin writes the owner's inbox entry and, when mail is
// configured, sends the owner an email. Both are best effort.
func (s *boardServiceImpl) notifyOwnerOfJoin(ctx context.Context, board *domain.Board, joinerID uuid.UUID, role domain.Role) {
	joiner, err := s.userRepo.FindByID(ctx, joinerID)
	if err != nil {
		s.logger.Warn("Failed to resolve joiner for notification",
			zap.String("user_id", joinerID.String()),
			zap.Error(err))
		return
	}

	metadata, _ := json.Marshal(map[string]string{
		"event":  "member_joined",
		"userId": joinerID.String(),
		"role":   string(role),
	})
	notification := &domain.Notification{
		UserID:    board.OwnerID,
		BoardID:   board.ID,
		Message:   fmt.Sprintf("%s joined %q as %s", joiner.Name, board.Title, role),
		Metadata:  datatypes.JSON(metadata),
		CreatedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("Failed to create join notification",
			zap.String("board_id", board.ID.String()),
			zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.IncrementNotificationCreated()
	}

	if s.mailer != nil && s.mailer.IsConfigured() {
		owner, err := s.userRepo.FindByID(ctx, board.OwnerID)
		if err != nil {
			return
		}
		if err := s.mailer.SendBoardJoinedEmail(owner.Email, owner.Name, joiner.Name, board.Title); err != nil {
			s.logger.Warn("Failed to send join email",
				zap.String("board_id", board.ID.String()),
				zap.Error(err))
		}
	}
}

func (s *boardServiceImpl) findBoard(ctx context.Context, boardID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return board, nil
}
