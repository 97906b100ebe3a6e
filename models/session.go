package models

import (
	"time"

	"github.com/google/uuid"
)

// Session — refresh-сессия. Идентификатор сессии и есть refresh-токен,
// который выдается при входе с remember_me.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	UserAgent string    `gorm:"size:200" json:"user_agent"`
	IP        string    `gorm:"size:45" json:"ip"`
	Expires   time.Time `gorm:"not null" json:"expires"`
}
