package repository

import (
	"gorm.io/gorm"

	"linkup-backend/models"
)

type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	PaginateDialog(user, friend *models.User, page, perPage int) (*models.Page[models.Message], error)
}

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// PaginateDialog возвращает переписку двух пользователей в обе стороны.
func (r *MessageRepository) PaginateDialog(user, friend *models.User, page, perPage int) (*models.Page[models.Message], error) {
	query := r.db.Model(&models.Message{}).Preload("Sender").Preload("Recipient").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			user.ID, friend.ID, friend.ID, user.ID)
	return paginateQuery[models.Message](query, page, perPage, "messages.date DESC")
}
