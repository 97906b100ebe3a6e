package models

import "time"

type Comment struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Text   string    `gorm:"size:500;not null" json:"text"`
	Date   time.Time `gorm:"autoCreateTime" json:"date"`
	UserID uint      `gorm:"not null" json:"user_id"`
	Author *User     `gorm:"foreignKey:UserID" json:"-"`
	PostID uint      `gorm:"not null;index" json:"post_id"`
}
