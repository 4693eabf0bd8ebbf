package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name      string     `gorm:"column:name" json:"name"`
	TeamID    *uuid.UUID `gorm:"type:uuid;index;column:team_id" json:"team_id,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "app_user" }
