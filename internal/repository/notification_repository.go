package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error
	DeleteByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) error
}

// notificationRepositoryImpl is the GORM implementation of NotificationRepository
type notificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// Create creates a new notification
func (r *notificationRepositoryImpl) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// FindByUserID returns the user's notifications, newest first
func (r *notificationRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllRead marks every notification of the user as read
func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// DeleteByBoardID removes every notification referencing a board
func (r *notificationRepositoryImpl) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Delete(&domain.Notification{}).Error
}

// DeleteByUserAndBoard removes one user's notifications for a board
func (r *notificationRepositoryImpl) DeleteByUserAndBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		Delete(&domain.Notification{}).Error
}
