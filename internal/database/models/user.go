package models

import (
	"github.com/google/uuid"
)

// User is an API caller. The password column only ever holds a bcrypt hash.
type User struct {
	BaseModel
	Name     string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Password string    `json:"-" gorm:"not null;size:255"`
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`
	Role     Role      `json:"role" gorm:"type:varchar(32);not null;default:'user'"`

	// Relationships
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
