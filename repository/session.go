package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkup-backend/models"
)

type SessionRepositoryInterface interface {
	Add(userID uint, userAgent, ip string, lifetimeDays int) (*models.Session, error)
	GetByID(id uuid.UUID) (*models.Session, error)
	Delete(session *models.Session) error
}

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Add(userID uint, userAgent, ip string, lifetimeDays int) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		Expires:   time.Now().UTC().AddDate(0, 0, lifetimeDays),
	}
	if err := r.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) GetByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.Preload("User").First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Delete(session *models.Session) error {
	return r.db.Delete(session).Error
}
