package dto

import (
	"time"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
)

// CreateBoardRequest represents the request to create a board
type CreateBoardRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// JoinBoardRequest represents the request to join a board with a role
type JoinBoardRequest struct {
	Role domain.Role `json:"role"`
}

// BoardMemberResponse represents one membership row in API responses
type BoardMemberResponse struct {
	UserID   uuid.UUID   `json:"userId"`
	Role     domain.Role `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

// BoardResponse represents a board in list responses
type BoardResponse struct {
	ID        uuid.UUID             `json:"id"`
	Title     string                `json:"title"`
	OwnerID   uuid.UUID             `json:"ownerId"`
	MyRole    domain.Role           `json:"myRole"`
	Members   []BoardMemberResponse `json:"members"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// BoardDetailResponse represents a board with its tasks
type BoardDetailResponse struct {
	BoardResponse
	Tasks []TaskResponse `json:"tasks"`
}

// ToBoardResponse converts a domain board to its API representation.
// myRole is resolved against the requesting user.
func ToBoardResponse(board *domain.Board, myRole domain.Role) BoardResponse {
	members := make([]BoardMemberResponse, 0, len(board.Members))
	for _, m := range board.Members {
		members = append(members, BoardMemberResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return BoardResponse{
		ID:        board.ID,
		Title:     board.Title,
		OwnerID:   board.OwnerID,
		MyRole:    myRole,
		Members:   members,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	}
}
