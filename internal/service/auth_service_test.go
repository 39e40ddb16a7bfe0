package service

import (
	"errors"
	"testing"

	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/repository"
	"foodgram-go/pkg/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db))
}

func registerRequest(email, username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     email,
		Username:  username,
		FirstName: "Ivan",
		LastName:  "Petrov",
		Password:  "secret-password",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	info, err := svc.Register(registerRequest("chef@example.com", "chef"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if info.ID == 0 {
		t.Fatal("Register() returned zero user id")
	}
	if info.Email != "chef@example.com" || info.Username != "chef" {
		t.Fatalf("Register() info = %+v", info)
	}
	if info.IsSubscribed {
		t.Fatal("Register() is_subscribed = true, want false")
	}

	data, err := svc.Login(&dto.LoginRequest{Email: "chef@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if data.TokenType != "Bearer" {
		t.Fatalf("TokenType = %q, want %q", data.TokenType, "Bearer")
	}
	if data.ExpiresIn != 3600 {
		t.Fatalf("ExpiresIn = %d, want 3600", data.ExpiresIn)
	}
	if data.User.ID != info.ID {
		t.Fatalf("login user id = %d, want %d", data.User.ID, info.ID)
	}

	claims, err := utils.ParseToken(data.Token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != info.ID {
		t.Fatalf("token user id = %d, want %d", claims.UserID, info.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register(registerRequest("chef@example.com", "chef")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register(registerRequest("chef@example.com", "another"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register(registerRequest("chef@example.com", "chef")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register(registerRequest("another@example.com", "chef"))
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Register() error = %v, want ErrUsernameTaken", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register(registerRequest("chef@example.com", "chef")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// 密码错误和邮箱不存在返回同一个错误
	_, err := svc.Login(&dto.LoginRequest{Email: "chef@example.com", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(wrong password) error = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "secret-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(unknown email) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestSetPassword(t *testing.T) {
	svc := newAuthService(t)

	info, err := svc.Register(registerRequest("chef@example.com", "chef"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	err = svc.SetPassword(info.ID, &dto.SetPasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "brand-new-password",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("SetPassword(wrong current) error = %v, want ErrWrongPassword", err)
	}

	err = svc.SetPassword(info.ID, &dto.SetPasswordRequest{
		CurrentPassword: "secret-password",
		NewPassword:     "brand-new-password",
	})
	if err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	if _, err := svc.Login(&dto.LoginRequest{Email: "chef@example.com", Password: "secret-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(old password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Email: "chef@example.com", Password: "brand-new-password"}); err != nil {
		t.Fatalf("Login(new password) error = %v", err)
	}

	if err := svc.SetPassword(9999, &dto.SetPasswordRequest{
		CurrentPassword: "secret-password",
		NewPassword:     "brand-new-password",
	}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("SetPassword(unknown user) error = %v, want ErrUserNotFound", err)
	}
}
