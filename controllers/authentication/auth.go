package authentication

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"linkup-backend/config"
	"linkup-backend/models"
	"linkup-backend/repository"
	"linkup-backend/services"
)

type contextKey string

const userKey contextKey = "user"

// AuthHandler — регистрация, вход и обновление access-токена по
// refresh-сессии.
type AuthHandler struct {
	users    repository.UserRepositoryInterface
	sessions repository.SessionRepositoryInterface
	service  *services.UserService
	validate *validator.Validate
	cfg      *config.Config
}

func NewAuthHandler(users repository.UserRepositoryInterface, sessions repository.SessionRepositoryInterface,
	service *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		service:  service,
		validate: validator.New(),
		cfg:      cfg,
	}
}

type loginInput struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required,uuid"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный JSON")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	user, err := h.service.AddUser(input)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Ошибка регистрации")
		return
	}
	log.Printf("Зарегистрирован пользователь %s", user.Username)
	writeJSON(w, http.StatusCreated, map[string]string{"username": user.Username})
}

// Login проверяет пароль и выдаёт access-токен; с remember_me
// дополнительно создаётся refresh-сессия.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный JSON")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	user, err := h.users.GetByUsername(input.Username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Неверное имя пользователя или пароль")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Неверное имя пользователя или пароль")
		return
	}

	access, err := services.GenerateToken(user.ID, h.cfg.SecretKey, time.Duration(h.cfg.TokenLifetime)*time.Minute)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Ошибка генерации токена")
		return
	}
	response := tokenResponse{AccessToken: access}
	if input.RememberMe {
		session, err := h.sessions.Add(user.ID, r.UserAgent(), clientIP(r), h.cfg.SessionLifetime)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Ошибка создания сессии")
			return
		}
		response.RefreshToken = session.ID.String()
	}
	_ = h.users.UpdateLastSeen(user)
	writeJSON(w, http.StatusOK, response)
}

// Refresh меняет refresh-токен на новый access-токен. Просроченная
// сессия удаляется.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input refreshInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный JSON")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id, err := uuid.Parse(input.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Недействительный refresh-токен")
		return
	}
	session, err := h.sessions.GetByID(id)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Недействительный refresh-токен")
		return
	}
	if time.Now().UTC().After(session.Expires) {
		_ = h.sessions.Delete(session)
		writeError(w, http.StatusForbidden, "Сессия истекла")
		return
	}
	access, err := services.GenerateToken(session.UserID, h.cfg.SecretKey, time.Duration(h.cfg.TokenLifetime)*time.Minute)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Ошибка генерации токена")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var input refreshInput
	if err := json.NewDecoder(r.Body).Decode(&input); err == nil && input.RefreshToken != "" {
		if id, err := uuid.Parse(input.RefreshToken); err == nil {
			if session, err := h.sessions.GetByID(id); err == nil {
				_ = h.sessions.Delete(session)
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Выход выполнен"})
}

// Middleware проверяет Bearer-токен и кладёт пользователя в контекст
// запроса.
func (h *AuthHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Требуется заголовок Authorization")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := services.ParseToken(tokenString, h.cfg.SecretKey)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Недействительный или просроченный токен")
			return
		}
		user, err := h.users.GetByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				writeError(w, http.StatusUnauthorized, "Пользователь не найден")
				return
			}
			writeError(w, http.StatusInternalServerError, "Ошибка авторизации")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// UserFromContext достаёт пользователя, положенного Middleware.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Ошибка записи ответа: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
