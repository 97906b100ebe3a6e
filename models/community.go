package models

type Community struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	ImageURL    string `json:"image_url"`
	UserID      uint   `gorm:"not null" json:"user_id"`
	Owner       *User  `gorm:"foreignKey:UserID" json:"-"`

	Members []User `gorm:"many2many:community_members" json:"-"`
	Posts   []Post `json:"-"`
}
