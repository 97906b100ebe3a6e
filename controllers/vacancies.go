package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"linkup-backend/controllers/authentication"
	"linkup-backend/services"
)

// VacancyHandler — вакансии и их подбор по навыкам.
type VacancyHandler struct {
	service  *services.VacancyService
	validate *validator.Validate
}

func NewVacancyHandler(service *services.VacancyService) *VacancyHandler {
	return &VacancyHandler{service: service, validate: validator.New()}
}

func (h *VacancyHandler) GetVacancy(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	view, err := h.service.GetVacancy(id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetVacancies: employer, type=recommended (требует заполненных
// навыков) или общий список.
func (h *VacancyHandler) GetVacancies(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	page, perPage := pagination(r)
	recommended := r.URL.Query().Get("type") == "recommended"
	if recommended && actor.Skills == "" {
		writeError(w, http.StatusBadRequest, "Для рекомендаций заполните навыки в профиле")
		return
	}
	result, err := h.service.GetVacancies(actor, filters(r, "description", "skills"), page, perPage,
		r.URL.Query().Get("employer"), recommended)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *VacancyHandler) AddVacancy(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	var input services.VacancyInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.service.AddVacancy(actor, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *VacancyHandler) UpdateVacancy(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	var input services.VacancyInput
	if !decodeAndValidate(w, r, h.validate, &input) {
		return
	}
	view, err := h.service.UpdateVacancy(actor, id, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *VacancyHandler) DeleteVacancy(w http.ResponseWriter, r *http.Request) {
	actor := authentication.UserFromContext(r.Context())
	id, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный id")
		return
	}
	if err := h.service.DeleteVacancy(actor, id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Вакансия удалена"})
}
