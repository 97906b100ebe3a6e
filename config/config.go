package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AllowedExtensions — допустимые расширения загружаемых изображений.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// MaxUploadSize ограничивает размер загружаемого файла (5 MB).
const MaxUploadSize = 5 * 1024 * 1024

type Config struct {
	Port            string
	AppURL          string
	SecretKey       string
	TokenLifetime   int // минуты жизни access-токена
	SessionLifetime int // дни жизни refresh-сессии
	UploadFolder    string

	// Параметры отбора кандидатов для рекомендательной ленты.
	RecommendCutoff   time.Time
	RecommendMinLikes int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
}

func Load() *Config {
	_ = godotenv.Load()

	cutoff, err := time.Parse("2006-01-02", getEnv("RECOMMEND_CUTOFF_DATE", "2024-01-01"))
	if err != nil {
		log.Fatalf("Некорректная дата RECOMMEND_CUTOFF_DATE: %v", err)
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		AppURL:            getEnv("APP_URL", "http://localhost"),
		SecretKey:         getEnv("SECRET_KEY", "secret-key"),
		TokenLifetime:     getEnvInt("TOKEN_LIFETIME", 10),
		SessionLifetime:   getEnvInt("SESSION_LIFETIME", 30),
		UploadFolder:      getEnv("UPLOAD_FOLDER", "static/images"),
		RecommendCutoff:   cutoff,
		RecommendMinLikes: getEnvInt("RECOMMEND_MIN_LIKES", 0),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		MailFrom:          getEnv("MAIL_FROM", "noreply@linkup.local"),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] %s: некорректное число %q, используем %d", key, v, def)
		return def
	}
	return n
}
