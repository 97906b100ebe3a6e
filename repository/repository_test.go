package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"linkup-backend/models"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось открыть sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Post{},
		&models.Community{},
		&models.Vacancy{},
		&models.Comment{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("не удалось выполнить миграцию: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, repo *UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hash",
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("не удалось создать пользователя %s: %v", username, err)
	}
	return user
}
