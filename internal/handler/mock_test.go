package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
)

// setupTestRouter builds a gin engine that pretends the auth middleware
// already ran for userID.
func setupTestRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	return router
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	SignupFunc                func(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	LoginFunc                 func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleSyncFunc            func(ctx context.Context, req *dto.GoogleSyncRequest) (*dto.AuthResponse, error)
	UpdateProfilePictureFunc  func(ctx context.Context, userID uuid.UUID, fileName, contentType string, file io.Reader) (*dto.UpdateProfilePictureResponse, error)
	GetNotificationsFunc      func(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkNotificationsReadFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *MockAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) GoogleSync(ctx context.Context, req *dto.GoogleSyncRequest) (*dto.AuthResponse, error) {
	if m.GoogleSyncFunc != nil {
		return m.GoogleSyncFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, fileName, contentType string, file io.Reader) (*dto.UpdateProfilePictureResponse, error) {
	if m.UpdateProfilePictureFunc != nil {
		return m.UpdateProfilePictureFunc(ctx, userID, fileName, contentType, file)
	}
	return nil, nil
}

func (m *MockAuthService) GetNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	if m.GetNotificationsFunc != nil {
		return m.GetNotificationsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAuthService) MarkNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	if m.MarkNotificationsReadFunc != nil {
		return m.MarkNotificationsReadFunc(ctx, userID)
	}
	return nil
}

// MockBoardService is a mock implementation of BoardService
type MockBoardService struct {
	CreateBoardFunc func(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoardsFunc   func(ctx context.Context, userID uuid.UUID) ([]dto.BoardResponse, error)
	GetBoardFunc    func(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	JoinBoardFunc   func(ctx context.Context, userID, boardID uuid.UUID, role domain.Role) (*dto.BoardResponse, error)
	LeaveBoardFunc  func(ctx context.Context, userID, boardID uuid.UUID) error
	KickMemberFunc  func(ctx context.Context, callerID, boardID, targetID uuid.UUID) error
	DeleteBoardFunc func(ctx context.Context, userID, boardID uuid.UUID) error
}

func (m *MockBoardService) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockBoardService) GetBoards(ctx context.Context, userID uuid.UUID) ([]dto.BoardResponse, error) {
	if m.GetBoardsFunc != nil {
		return m.GetBoardsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBoardService) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, userID, boardID)
	}
	return nil, nil
}

func (m *MockBoardService) JoinBoard(ctx context.Context, userID, boardID uuid.UUID, role domain.Role) (*dto.BoardResponse, error) {
	if m.JoinBoardFunc != nil {
		return m.JoinBoardFunc(ctx, userID, boardID, role)
	}
	return nil, nil
}

func (m *MockBoardService) LeaveBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if m.LeaveBoardFunc != nil {
		return m.LeaveBoardFunc(ctx, userID, boardID)
	}
	return nil
}

func (m *MockBoardService) KickMember(ctx context.Context, callerID, boardID, targetID uuid.UUID) error {
	if m.KickMemberFunc != nil {
		return m.KickMemberFunc(ctx, callerID, boardID, targetID)
	}
	return nil
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, userID, boardID)
	}
	return nil
}

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	CreateTaskFunc    func(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetBoardTasksFunc func(ctx context.Context, userID, boardID uuid.UUID) ([]dto.TaskResponse, error)
	UpdateTaskFunc    func(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	MoveTaskFunc      func(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error)
	DeleteTaskFunc    func(ctx context.Context, userID, taskID uuid.UUID) error
	GetMyTasksFunc    func(ctx context.Context, userID uuid.UUID) ([]dto.MyTaskResponse, error)
	GetStatsFunc      func(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) (*dto.TaskStatsResponse, error)
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockTaskService) GetBoardTasks(ctx context.Context, userID, boardID uuid.UUID) ([]dto.TaskResponse, error) {
	if m.GetBoardTasksFunc != nil {
		return m.GetBoardTasksFunc(ctx, userID, boardID)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, userID, taskID, req)
	}
	return nil, nil
}

func (m *MockTaskService) MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
	if m.MoveTaskFunc != nil {
		return m.MoveTaskFunc(ctx, userID, taskID, req)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, userID, taskID)
	}
	return nil
}

func (m *MockTaskService) GetMyTasks(ctx context.Context, userID uuid.UUID) ([]dto.MyTaskResponse, error) {
	if m.GetMyTasksFunc != nil {
		return m.GetMyTasksFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTaskService) GetStats(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) (*dto.TaskStatsResponse, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, userID, boardID)
	}
	return nil, nil
}
