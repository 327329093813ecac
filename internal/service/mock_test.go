package service

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc               func(ctx context.Context, user *domain.User) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc          func(ctx context.Context, email string) (*domain.User, error)
	UpdateFunc               func(ctx context.Context, user *domain.User) error
	UpdateProfilePictureFunc func(ctx context.Context, id uuid.UUID, url string) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdateProfilePicture(ctx context.Context, id uuid.UUID, url string) error {
	if m.UpdateProfilePictureFunc != nil {
		return m.UpdateProfilePictureFunc(ctx, id, url)
	}
	return nil
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc       func(ctx context.Context, board *domain.Board) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUserIDFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Board, error)
	UpdateFunc       func(ctx context.Context, board *domain.Board) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	AddMemberFunc    func(ctx context.Context, member *domain.BoardMember) error
	FindMemberFunc   func(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error)
	RemoveMemberFunc func(ctx context.Context, boardID, userID uuid.UUID) error
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Board, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) AddMember(ctx context.Context, member *domain.BoardMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *MockBoardRepository) FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error) {
	if m.FindMemberFunc != nil {
		return m.FindMemberFunc(ctx, boardID, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, boardID, userID)
	}
	return nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc                func(ctx context.Context, task *domain.Task) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByBoardIDFunc         func(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error)
	FindByAssigneeFunc        func(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	CountByBoardAndStatusFunc func(ctx context.Context, boardID uuid.UUID, status domain.TaskStatus) (int64, error)
	UpdateFunc                func(ctx context.Context, task *domain.Task) error
	UpdatePositionsFunc       func(ctx context.Context, updates []repository.PositionUpdate) error
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	DeleteByBoardIDFunc       func(ctx context.Context, boardID uuid.UUID) error
	FindOrphanedFunc          func(ctx context.Context, limit int) ([]domain.Task, error)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	if m.FindByAssigneeFunc != nil {
		return m.FindByAssigneeFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTaskRepository) CountByBoardAndStatus(ctx context.Context, boardID uuid.UUID, status domain.TaskStatus) (int64, error) {
	if m.CountByBoardAndStatusFunc != nil {
		return m.CountByBoardAndStatusFunc(ctx, boardID, status)
	}
	return 0, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) UpdatePositions(ctx context.Context, updates []repository.PositionUpdate) error {
	if m.UpdatePositionsFunc != nil {
		return m.UpdatePositionsFunc(ctx, updates)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	if m.DeleteByBoardIDFunc != nil {
		return m.DeleteByBoardIDFunc(ctx, boardID)
	}
	return nil
}

func (m *MockTaskRepository) FindOrphaned(ctx context.Context, limit int) ([]domain.Task, error) {
	if m.FindOrphanedFunc != nil {
		return m.FindOrphanedFunc(ctx, limit)
	}
	return nil, nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	CreateFunc               func(ctx context.Context, notification *domain.Notification) error
	FindByUserIDFunc         func(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkAllReadFunc          func(ctx context.Context, userID uuid.UUID) error
	DeleteByBoardIDFunc      func(ctx context.Context, boardID uuid.UUID) error
	DeleteByUserAndBoardFunc func(ctx context.Context, userID, boardID uuid.UUID) error
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, notification)
	}
	return nil
}

func (m *MockNotificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return nil
}

func (m *MockNotificationRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	if m.DeleteByBoardIDFunc != nil {
		return m.DeleteByBoardIDFunc(ctx, boardID)
	}
	return nil
}

func (m *MockNotificationRepository) DeleteByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if m.DeleteByUserAndBoardFunc != nil {
		return m.DeleteByUserAndBoardFunc(ctx, userID, boardID)
	}
	return nil
}
