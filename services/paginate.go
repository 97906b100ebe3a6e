package services

import "linkup-backend/models"

// paginateSlice режет отсортированный в памяти список на страницы.
// Страницы нумеруются с единицы, выход за границы дает пустую страницу
// с корректными итогами, а не ошибку.
func paginateSlice[T any](items []T, page, perPage int) *models.Page[T] {
	total := len(items)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return &models.Page[T]{
		Items: items[start:end],
		Meta: models.Meta{
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
			TotalItems: total,
		},
	}
}

// mapPage переносит метаданные страницы, подменяя элементы их
// представлениями.
func mapPage[T, V any](page *models.Page[T], convert func(*T) (V, error)) (*models.Page[V], error) {
	items := make([]V, 0, len(page.Items))
	for i := range page.Items {
		view, err := convert(&page.Items[i])
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}
	return &models.Page[V]{Items: items, Meta: page.Meta}, nil
}
