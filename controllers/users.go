package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"linkup-backend/config"
	"linkup-backend/controllers/authentication"
	"linkup-backend/services"
)

// UserHandler — профили, дружба и рекомендации пользователей.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service, validate: validator.New()}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	view, err := h.service.GetUser(actor, chi.URLParam(r, "username"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetUsers: без параметров — общий список; type=recommended — друзья
// по рекомендациям; vacancy_id — кандидаты на вакансию.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	page, perPage := pagination(r)
	recommended := r.URL.Query().Get("type") == "recommended"
	var vacancyID uint
	if raw := r.URL.Query().Get("vacancy_id"); raw != "" {
		parsed, err := parseUintParam(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Некорректный vacancy_id")
			return
		}
		vacancyID = parsed
	}
	result, err := h.service.GetUsers(actor, filters(r, "username", "firstname", "lastname", "city"),
		page, perPage, vacancyID, recommended)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	var input services.UserUpdateInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.service.UpdateUser(actor, chi.URLParam(r, "username"), input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	if err := h.service.DeleteUser(actor, chi.URLParam(r, "username")); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Пользователь удален"})
}

type passwordInput struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=32,excludes= "`
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	var input passwordInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	if err := h.service.UpdatePassword(actor, input.Password, input.NewPassword); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Пароль обновлен"})
}

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	file, filename, ok := uploadedFile(w, r, config.MaxUploadSize)
	if !ok {
		return
	}
	defer file.Close()
	if err := h.service.UploadAvatar(actor, file, filename); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Аватар обновлен"})
}

// GetFriends: relation=friends|followers|following.
func (h *UserHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	page, perPage := pagination(r)
	result, err := h.service.GetFriends(actor, chi.URLParam(r, "username"),
		filters(r, "username", "firstname", "lastname"), page, perPage, r.URL.Query().Get("relation"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	if err := h.service.AddFriend(actor, chi.URLParam(r, "username")); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Заявка отправлена"})
}

func (h *UserHandler) AcceptFriend(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	accepted, err := h.service.AcceptFriend(actor, chi.URLParam(r, "username"))
	if err != nil {
		handleError(w, err)
		return
	}
	if !accepted {
		writeError(w, http.StatusBadRequest, "Встречной заявки нет")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Заявка принята"})
}

func (h *UserHandler) DeleteFriend(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	if err := h.service.DeleteFriend(actor, chi.URLParam(r, "username")); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Подписка удалена"})
}

func (h *UserHandler) RequestEmailVerification(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	if err := h.service.RequestEmailVerification(actor); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Письмо отправлено"})
}

func (h *UserHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Токен не передан")
		return
	}
	if err := h.service.ConfirmEmail(token); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email подтвержден"})
}

func (h *UserHandler) SetTwoFactor(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный параметр enabled")
		return
	}
	if err := h.service.SetTwoFactor(actor, enabled); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"two_factor_enabled": enabled})
}
