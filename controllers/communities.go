package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"linkup-backend/config"
	"linkup-backend/controllers/authentication"
	"linkup-backend/services"
)

// CommunityHandler — сообщества, членство и рекомендации сообществ.
type CommunityHandler struct {
	communities *services.CommunityService
	users       *services.UserService
	validate    *validator.Validate
}

func NewCommunityHandler(communities *services.CommunityService, users *services.UserService) *CommunityHandler {
	return &CommunityHandler{communities: communities, users: users, validate: validator.New()}
}

func (h *CommunityHandler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	view, err := h.communities.GetCommunity(actor, id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetCommunities: username + type=admin|member, type=recommended или
// общий список.
func (h *CommunityHandler) GetCommunities(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	page, perPage := pagination(r)
	result, err := h.communities.GetCommunities(actor, r.URL.Query().Get("username"),
		r.URL.Query().Get("type"), filters(r, "name"), page, perPage)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CommunityHandler) AddCommunity(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	var input services.CommunityInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.communities.AddCommunity(actor, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *CommunityHandler) UpdateCommunity(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	var input services.CommunityInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.communities.UpdateCommunity(actor, id, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CommunityHandler) DeleteCommunity(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	if err := h.communities.DeleteCommunity(actor, id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Сообщество удалено"})
}

func (h *CommunityHandler) JoinCommunity(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	if err := h.communities.JoinCommunity(actor, id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Вы вступили в сообщество"})
}

func (h *CommunityHandler) LeaveCommunity(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	if err := h.communities.LeaveCommunity(actor, id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Вы покинули сообщество"})
}

func (h *CommunityHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	page, perPage := pagination(r)
	result, err := h.users.GetCommunityMembers(actor, id, filters(r, "username", "firstname", "lastname"), page, perPage)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CommunityHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	file, filename, ok := uploadedFile(w, r, config.MaxUploadSize)
	if !ok {
		return
	}
	defer file.Close()
	if err := h.communities.UploadImage(actor, id, file, filename); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Изображение загружено"})
}
