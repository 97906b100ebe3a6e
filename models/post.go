package models

import "time"

// Post принадлежит либо автору, либо сообществу — ровно одно из двух
// полей UserID/CommunityID заполнено.
type Post struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Text            string     `gorm:"size:500;not null" json:"text"`
	Hashtags        string     `gorm:"size:100;not null" json:"hashtags"` // нижний регистр, без пробелов, через запятую
	ImageURL        string     `json:"image_url"`
	PublicationDate time.Time  `gorm:"autoCreateTime;index" json:"publication_date"`
	UserID          *uint      `json:"user_id"`
	Author          *User      `gorm:"foreignKey:UserID" json:"-"`
	CommunityID     *uint      `json:"community_id"`
	Community       *Community `gorm:"foreignKey:CommunityID" json:"-"`

	LikedUsers []User    `gorm:"many2many:post_likes" json:"-"`
	Comments   []Comment `json:"-"`
}
