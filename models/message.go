package models

import "time"

// Message — личное сообщение. Отправка разрешена только между друзьями,
// проверка выполняется на уровне сервиса.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Body        string    `gorm:"size:1000;not null" json:"body"`
	Date        time.Time `gorm:"autoCreateTime;index" json:"date"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	Sender      *User     `gorm:"foreignKey:SenderID" json:"-"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Recipient   *User     `gorm:"foreignKey:RecipientID" json:"-"`
}
