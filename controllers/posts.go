package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"linkup-backend/config"
	"linkup-backend/controllers/authentication"
	"linkup-backend/services"
)

// PostHandler — посты, лайки и рекомендательная лента.
type PostHandler struct {
	service  *services.PostService
	validate *validator.Validate
}

func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{service: service, validate: validator.New()}
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	view, err := h.service.GetPost(actor, id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetPosts: author, community_id, type=liked|recommended. Без
// параметров — общая лента.
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	page, perPage := pagination(r)
	var communityID uint
	if raw := r.URL.Query().Get("community_id"); raw != "" {
		parsed, err := parseUintParam(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Некорректный community_id")
			return
		}
		communityID = parsed
	}
	result, err := h.service.GetPosts(actor, r.URL.Query().Get("author"), communityID,
		r.URL.Query().Get("type"), filters(r, "text", "hashtags"), page, perPage)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PostHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	var input services.PostInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.service.AddPost(actor, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	var input services.PostInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.service.UpdatePost(actor, id, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	if err := h.service.DeletePost(actor, id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Пост удален"})
}

func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	if err := h.service.LikePost(actor, id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Лайк поставлен"})
}

func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	if err := h.service.UnlikePost(actor, id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Лайк снят"})
}

func (h *PostHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
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
	if err := h.service.UploadImage(actor, id, file, filename); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Изображение загружено"})
}
