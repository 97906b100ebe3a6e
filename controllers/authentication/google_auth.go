package authentication

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"linkup-backend/config"
	"linkup-backend/models"
	"linkup-backend/repository"
	"linkup-backend/services"
)

// GoogleAuthHandler — вход через Google OAuth. Анти-CSRF state хранится
// в cookie-сессии.
type GoogleAuthHandler struct {
	users       repository.UserRepositoryInterface
	oauthConfig *oauth2.Config
	store       *sessions.CookieStore
	cfg         *config.Config
}

func NewGoogleAuthHandler(users repository.UserRepositoryInterface, cfg *config.Config) *GoogleAuthHandler {
	store := sessions.NewCookieStore([]byte(cfg.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &GoogleAuthHandler{
		users: users,
		oauthConfig: &oauth2.Config{
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		store: store,
		cfg:   cfg,
	}
}

func (h *GoogleAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	session, _ := h.store.Get(r, "oauth-state")
	session.Values["state"] = state
	if err := session.Save(r, w); err != nil {
		log.Printf("Ошибка сохранения OAuth-сессии: %v", err)
		writeError(w, http.StatusInternalServerError, "Ошибка OAuth")
		return
	}
	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback обменивает code на токен, читает профиль Google и выдаёт
// access-токен приложения. Новому email создаётся пользователь.
func (h *GoogleAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, "oauth-state")
	saved, _ := session.Values["state"].(string)
	if saved == "" || r.FormValue("state") != saved {
		log.Println("Некорректный OAuth state")
		writeError(w, http.StatusUnauthorized, "Некорректный OAuth state")
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Printf("Ошибка обмена кода на токен: %v", err)
		writeError(w, http.StatusUnauthorized, "Ошибка OAuth")
		return
	}

	service, err := googleoauth.NewService(r.Context(),
		option.WithTokenSource(h.oauthConfig.TokenSource(r.Context(), token)))
	if err != nil {
		log.Printf("Ошибка создания сервиса Google: %v", err)
		writeError(w, http.StatusInternalServerError, "Ошибка OAuth")
		return
	}
	info, err := service.Userinfo.Get().Do()
	if err != nil {
		log.Printf("Ошибка получения профиля Google: %v", err)
		writeError(w, http.StatusInternalServerError, "Ошибка OAuth")
		return
	}

	user, err := h.users.GetByEmail(info.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Username:      "google_" + info.Id,
			Email:         info.Email,
			Firstname:     info.GivenName,
			Lastname:      info.FamilyName,
			Provider:      "google",
			VerifiedEmail: info.VerifiedEmail != nil && *info.VerifiedEmail,
		}
		if err := h.users.Create(user); err != nil {
			log.Printf("Ошибка создания пользователя Google: %v", err)
			writeError(w, http.StatusInternalServerError, "Ошибка регистрации")
			return
		}
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Ошибка авторизации")
		return
	}

	access, err := services.GenerateToken(user.ID, h.cfg.SecretKey, time.Duration(h.cfg.TokenLifetime)*time.Minute)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Ошибка генерации токена")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access})
}
