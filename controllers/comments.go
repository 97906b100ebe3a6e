package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"linkup-backend/controllers/authentication"
	"linkup-backend/services"
)

// CommentHandler — комментарии к постам.
type CommentHandler struct {
	service  *services.CommentService
	validate *validator.Validate
}

func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{service: service, validate: validator.New()}
}

func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	page, perPage := pagination(r)
	result, err := h.service.GetComments(postID, page, perPage)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	postID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	var input services.CommentInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.service.AddComment(actor, postID, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	var input services.CommentInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.service.UpdateComment(actor, id, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	if err := h.service.DeleteComment(actor, id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Комментарий удален"})
}
