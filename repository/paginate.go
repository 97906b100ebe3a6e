package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"linkup-backend/models"
)

// applyFilters добавляет условия поиска по подстроке без учета
// регистра. Ключи фильтров — имена колонок, их задают только
// обработчики с фиксированным набором полей.
func applyFilters(query *gorm.DB, filters map[string]string) *gorm.DB {
	for field, value := range filters {
		if value == "" {
			continue
		}
		query = query.Where(fmt.Sprintf("lower(%s) LIKE ?", field), "%"+strings.ToLower(value)+"%")
	}
	return query
}

// paginateQuery выполняет подсчет и выборку страницы одним способом для
// всех репозиториев.
func paginateQuery[T any](query *gorm.DB, page, perPage int, order string) (*models.Page[T], error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	query = query.Session(&gorm.Session{})
	if order != "" {
		query = query.Order(order)
	}
	items := make([]T, 0, perPage)
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Find(&items).Error; err != nil {
		return nil, err
	}
	totalPages := 0
	if perPage > 0 {
		totalPages = (int(total) + perPage - 1) / perPage
	}
	return &models.Page[T]{
		Items: items,
		Meta: models.Meta{
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
			TotalItems: int(total),
		},
	}, nil
}
