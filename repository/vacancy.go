package repository

import (
	"gorm.io/gorm"

	"linkup-backend/models"
)

// VacancyRepositoryInterface — доступ к вакансиям.
type VacancyRepositoryInterface interface {
	Create(vacancy *models.Vacancy) error
	Update(vacancy *models.Vacancy) error
	Delete(vacancy *models.Vacancy) error
	GetByID(id uint) (*models.Vacancy, error)
	GetVacancies() ([]models.Vacancy, error)

	Paginate(filters map[string]string, page, perPage int) (*models.Page[models.Vacancy], error)
	PaginateByEmployer(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Vacancy], error)
}

type VacancyRepository struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) *VacancyRepository {
	return &VacancyRepository{db: db}
}

func (r *VacancyRepository) Create(vacancy *models.Vacancy) error {
	return r.db.Create(vacancy).Error
}

func (r *VacancyRepository) Update(vacancy *models.Vacancy) error {
	return r.db.Save(vacancy).Error
}

func (r *VacancyRepository) Delete(vacancy *models.Vacancy) error {
	return r.db.Delete(vacancy).Error
}

func (r *VacancyRepository) GetByID(id uint) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	if err := r.db.Preload("Employer").First(&vacancy, id).Error; err != nil {
		return nil, err
	}
	return &vacancy, nil
}

func (r *VacancyRepository) GetVacancies() ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	if err := r.db.Preload("Employer").Order("id").Find(&vacancies).Error; err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (r *VacancyRepository) Paginate(filters map[string]string, page, perPage int) (*models.Page[models.Vacancy], error) {
	query := applyFilters(r.db.Model(&models.Vacancy{}).Preload("Employer"), filters)
	return paginateQuery[models.Vacancy](query, page, perPage, "vacancies.id")
}

func (r *VacancyRepository) PaginateByEmployer(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Vacancy], error) {
	query := r.db.Model(&models.Vacancy{}).Preload("Employer").Where("vacancies.user_id = ?", user.ID)
	query = applyFilters(query, filters)
	return paginateQuery[models.Vacancy](query, page, perPage, "vacancies.id")
}
