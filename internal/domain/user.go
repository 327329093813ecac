package domain

// User represents a registered user of the taskboard
type User struct {
	BaseModel
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	Email          string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string  `gorm:"column:password_hash;not null" json:"-"`
	ProfilePicture string  `gorm:"type:text;default:''" json:"profilePicture"`
	Avatar         string  `gorm:"type:varchar(8);default:'US'" json:"avatar"`
	GoogleID       *string `gorm:"uniqueIndex;column:google_id" json:"googleId,omitempty"`

	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"notifications,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
