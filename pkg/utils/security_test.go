package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"foodgram-go/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const testConfigYAML = `app:
  name: foodgram-test

jwt:
  secret: test-secret
  expire_hours: 1
`

// TestMain 加载测试配置，Token 的签发和校验依赖 JWT 配置
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "foodgram-utils-test")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(testConfigYAML), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write test config: %v\n", err)
		os.Exit(1)
	}
	if _, err := config.Load(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load test config: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "secret-password" {
		t.Fatal("HashPassword() returned the plain password")
	}

	if !VerifyPassword("secret-password", hash) {
		t.Fatal("VerifyPassword() = false for the right password")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Fatal("VerifyPassword() = true for a wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Issuer != "foodgram-test" {
		t.Fatalf("Issuer = %q, want foodgram-test", claims.Issuer)
	}
}

func TestParseTokenInvalid(t *testing.T) {
	if _, err := ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ParseToken(garbage) error = %v, want ErrInvalidToken", err)
	}

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	// 篡改签名
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ParseToken(tampered) error = %v, want ErrInvalidToken", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	claims := Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    config.GetApp().Name,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.GetJWT().Secret))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := ParseToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("ParseToken(expired) error = %v, want ErrExpiredToken", err)
	}
}
