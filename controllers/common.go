package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"linkup-backend/services"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

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

// handleError переводит ошибки сервисного слоя в HTTP-статусы.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "Не найдено")
	case errors.Is(err, services.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrFileType):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrSelfAction),
		errors.Is(err, services.ErrNotFriends),
		errors.Is(err, services.ErrWrongPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, input interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный JSON")
		return false
	}
	if err := validate.Struct(input); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// pagination читает page и per_page из строки запроса.
func pagination(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// filters собирает допустимые фильтры подстрокой из строки запроса.
func filters(r *http.Request, allowed ...string) map[string]string {
	result := make(map[string]string)
	for _, key := range allowed {
		if value := r.URL.Query().Get(key); value != "" {
			result[key] = value
		}
	}
	return result
}

func parseUintParam(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// uploadedFile извлекает файл из multipart-формы с лимитом размера.
func uploadedFile(w http.ResponseWriter, r *http.Request, maxSize int64) (multipart.File, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "Файл слишком большой")
		return nil, "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Файл не передан")
		return nil, "", false
	}
	return file, header.Filename, true
}
