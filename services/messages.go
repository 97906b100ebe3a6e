package services

import (
	"strings"
	"time"

	"linkup-backend/models"
	"linkup-backend/repository"
)

type MessageService struct {
	messages repository.MessageRepositoryInterface
	users    repository.UserRepositoryInterface
}

func NewMessageService(messages repository.MessageRepositoryInterface, users repository.UserRepositoryInterface) *MessageService {
	return &MessageService{messages: messages, users: users}
}

type MessageInput struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
}

// GetDialog — переписка с другом. Чужие диалоги недоступны, переписка
// есть только между друзьями.
func (s *MessageService) GetDialog(actor *models.User, username string, page, perPage int) (*models.Page[models.MessageView], error) {
	friend, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	isFriend, err := s.users.IsFriend(actor, friend)
	if err != nil {
		return nil, err
	}
	if !isFriend {
		return nil, ErrNotFriends
	}
	result, err := s.messages.PaginateDialog(actor, friend, page, perPage)
	if err != nil {
		return nil, err
	}
	return mapPage(result, func(m *models.Message) (models.MessageView, error) { return toMessageView(m), nil })
}

func (s *MessageService) SendMessage(actor *models.User, username string, input MessageInput) (*models.MessageView, error) {
	recipient, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if recipient.ID == actor.ID {
		return nil, ErrSelfAction
	}
	isFriend, err := s.users.IsFriend(actor, recipient)
	if err != nil {
		return nil, err
	}
	if !isFriend {
		return nil, ErrNotFriends
	}
	message := &models.Message{
		Body:        strings.TrimSpace(input.Body),
		Date:        time.Now(),
		SenderID:    actor.ID,
		Sender:      actor,
		RecipientID: recipient.ID,
		Recipient:   recipient,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}
	view := toMessageView(message)
	return &view, nil
}

func toMessageView(message *models.Message) models.MessageView {
	sender, recipient := "", ""
	if message.Sender != nil {
		sender = message.Sender.Username
	}
	if message.Recipient != nil {
		recipient = message.Recipient.Username
	}
	return models.MessageView{
		ID:        message.ID,
		Body:      message.Body,
		Date:      message.Date.Format(time.RFC3339),
		Sender:    sender,
		Recipient: recipient,
	}
}
