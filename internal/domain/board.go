package domain

import (
	"time"

	"github.com/google/uuid"
)

// Board represents a collaborative workspace containing tasks
type Board struct {
	BaseModel
	Title   string    `gorm:"type:varchar(255);not null" json:"title"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"ownerId"`

	Members []BoardMember `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tasks   []Task        `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// BoardMember represents a user's membership on a board with a role.
// The owner is never stored as a member; ownership is tracked on the board itself.
type BoardMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index:idx_board_members_board_id;uniqueIndex:uq_board_members_board_user" json:"boardId"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_board_members_user_id;uniqueIndex:uq_board_members_board_user" json:"userId"`
	Role     Role      `gorm:"type:varchar(50);not null;default:'viewer'" json:"role"`
	JoinedAt time.Time `gorm:"type:timestamp;not null;default:now()" json:"joinedAt"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// TableName specifies the table name for BoardMember
func (BoardMember) TableName() string {
	return "board_members"
}
