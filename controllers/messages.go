package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"linkup-backend/controllers/authentication"
	"linkup-backend/services"
)

// MessageHandler — личные сообщения между друзьями.
type MessageHandler struct {
	service  *services.MessageService
	validate *validator.Validate
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service, validate: validator.New()}
}

func (h *MessageHandler) GetDialog(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	page, perPage := pagination(r)
	result, err := h.service.GetDialog(actor, chi.URLParam(r, "username"), page, perPage)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	var input services.MessageInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.service.SendMessage(actor, chi.URLParam(r, "username"), input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}
