package models

// Vacancy — вакансия работодателя. Skills хранится строкой через
// запятую, регистр и пробелы не нормализуются.
type Vacancy struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"size:500;not null" json:"description"`
	Skills      string `gorm:"size:100" json:"skills"`
	UserID      uint   `gorm:"not null" json:"user_id"`
	Employer    *User  `gorm:"foreignKey:UserID" json:"-"`
}
