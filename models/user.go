package models

import "time"

// User — профиль пользователя и его связи: подписки, сообщества,
// понравившиеся посты. Дружба отдельной таблицей не хранится, друг —
// это взаимная подписка.
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Username         string     `gorm:"size:32;uniqueIndex;not null" json:"username"`
	Email            string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Firstname        string     `gorm:"size:32" json:"firstname"`
	Lastname         string     `gorm:"size:32" json:"lastname"`
	PhoneNumber      string     `gorm:"size:20" json:"phone_number"`
	DateBirth        *time.Time `json:"date_birth"`
	City             string     `gorm:"size:100" json:"city"`
	Address          string     `gorm:"size:100" json:"address"`
	Education        string     `gorm:"size:100" json:"education"`
	Career           string     `gorm:"size:100" json:"career"`
	Hobbies          string     `gorm:"size:500" json:"hobbies"`
	Skills           string     `gorm:"size:100" json:"skills"` // навыки через запятую
	AvatarURL        string     `json:"avatar_url"`
	Provider         string     `gorm:"size:32;not null;default:local" json:"provider"`
	RegisterDate     time.Time  `gorm:"autoCreateTime" json:"register_date"`
	LastSeen         time.Time  `json:"last_seen"`
	VerifiedEmail    bool       `gorm:"not null;default:false" json:"verified_email"`
	TwoFactorEnabled bool       `gorm:"not null;default:false" json:"two_factor_enabled"`

	Following   []User      `gorm:"many2many:subscriptions;joinForeignKey:UserID;joinReferences:FollowingID" json:"-"`
	Communities []Community `gorm:"many2many:community_members" json:"-"`
	LikedPosts  []Post      `gorm:"many2many:post_likes" json:"-"`
}
