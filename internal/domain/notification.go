package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification represents an entry in a user's inbox. Entries are created
// by board-mutating actions (currently: join) and stripped when their
// board is deleted.
type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_user_id" json:"userId"`
	BoardID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_board_id" json:"boardId"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	IsRead    bool           `gorm:"not null;default:false" json:"isRead"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
