package models

// Meta — сведения о странице. Форма одинакова для обычных выборок и
// рекомендаций, клиент их не различает.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Page — постраничный конверт ответа.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}
