package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *domain.BoardMember) error
	FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error)
	RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// Create creates a new board
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// FindByID finds a board by its ID with members preloaded
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).
		Preload("Members").
		First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByUserID returns every board the user owns or is a member of,
// newest first.
func (r *boardRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Board, error) {
	var boards []domain.Board
	err := r.db.WithContext(ctx).
		Preload("Members").
		Joins("LEFT JOIN board_members ON board_members.board_id = boards.id AND board_members.user_id = ?", userID).
		Where("boards.owner_id = ? OR board_members.user_id = ?", userID, userID).
		Group("boards.id").
		Order("boards.created_at DESC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// Update saves the full board record
func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// Delete removes a board and its membership rows
func (r *boardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&domain.BoardMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Board{}, "id = ?", id).Error
	})
}

// AddMember adds a membership row to a board
func (r *boardRepositoryImpl) AddMember(ctx context.Context, member *domain.BoardMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// FindMember finds a membership row by board and user
func (r *boardRepositoryImpl) FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error) {
	var member domain.BoardMember
	err := r.db.WithContext(ctx).
		First(&member, "board_id = ? AND user_id = ?", boardID, userID).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember removes a membership row from a board
func (r *boardRepositoryImpl) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&domain.BoardMember{}).Error
}
