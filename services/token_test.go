package services

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "test-secret", time.Minute)
	if err != nil {
		t.Fatalf("неожиданная ошибка генерации: %v", err)
	}
	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("неожиданная ошибка разбора: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, ожидалось 42", claims.UserID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "test-secret", time.Minute)
	if err != nil {
		t.Fatalf("неожиданная ошибка генерации: %v", err)
	}
	if _, err := ParseToken(token, "another-secret"); err == nil {
		t.Fatal("токен с чужим ключом должен отклоняться")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(42, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("неожиданная ошибка генерации: %v", err)
	}
	if _, err := ParseToken(token, "test-secret"); err == nil {
		t.Fatal("просроченный токен должен отклоняться")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", "test-secret"); err == nil {
		t.Fatal("мусор вместо токена должен отклоняться")
	}
}
