package services

import (
	"errors"
	"testing"

	"linkup-backend/models"
)

type fakeMessageRepo struct {
	messages []models.Message
}

func (r *fakeMessageRepo) Create(message *models.Message) error {
	message.ID = uint(len(r.messages) + 1)
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) PaginateDialog(user, friend *models.User, page, perPage int) (*models.Page[models.Message], error) {
	return paginateSlice(r.messages, page, perPage), nil
}

func TestSendMessageRequiresFriendship(t *testing.T) {
	actor := models.User{ID: 1, Username: "one"}
	stranger := models.User{ID: 2, Username: "two"}
	users := newFakeUserRepo(actor, stranger)
	users.following[1] = []uint{2} // подписка без взаимности

	service := NewMessageService(&fakeMessageRepo{}, users)
	_, err := service.SendMessage(&actor, "two", MessageInput{Body: "привет"})
	if !errors.Is(err, ErrNotFriends) {
		t.Fatalf("ожидалась ErrNotFriends, получено %v", err)
	}
}

func TestSendMessageToSelf(t *testing.T) {
	actor := models.User{ID: 1, Username: "solo"}
	users := newFakeUserRepo(actor)

	service := NewMessageService(&fakeMessageRepo{}, users)
	_, err := service.SendMessage(&actor, "solo", MessageInput{Body: "эхо"})
	if !errors.Is(err, ErrSelfAction) {
		t.Fatalf("ожидалась ErrSelfAction, получено %v", err)
	}
}

func TestSendMessageBetweenFriends(t *testing.T) {
	actor := models.User{ID: 1, Username: "one"}
	friend := models.User{ID: 2, Username: "two"}
	users := newFakeUserRepo(actor, friend)
	users.following[1] = []uint{2}
	users.following[2] = []uint{1}

	repo := &fakeMessageRepo{}
	service := NewMessageService(repo, users)
	view, err := service.SendMessage(&actor, "two", MessageInput{Body: "привет"})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if view.Sender != "one" || view.Recipient != "two" {
		t.Errorf("участники диалога: %s -> %s", view.Sender, view.Recipient)
	}
	if len(repo.messages) != 1 {
		t.Errorf("сообщений сохранено %d, ожидалось 1", len(repo.messages))
	}
}
