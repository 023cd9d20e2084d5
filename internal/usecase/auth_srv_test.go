package usecase

import (
	"context"
	"testing"

	"tour-booking/internal/dto/request"
	"tour-booking/pkg/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture()
	service := NewAuthService(f.repo, "test-secret", 24, testLogger())

	reg := &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		Role:     "GUIDE",
	}

	auth, err := service.Register(context.Background(), reg)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if auth.Token == "" {
		t.Error("empty token")
	}
	if auth.User.Role != "GUIDE" {
		t.Errorf("role = %s, want GUIDE", auth.User.Role)
	}

	claims, err := utils.ParseToken("test-secret", auth.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != auth.User.ID || claims.Role != "GUIDE" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	login, err := service.Login(context.Background(), &request.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != auth.User.ID {
		t.Errorf("login user = %s, want %s", login.User.ID, auth.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	service := NewAuthService(f.repo, "test-secret", 24, testLogger())

	reg := &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		Role:     "TOURIST",
	}
	if _, err := service.Register(context.Background(), reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := service.Register(context.Background(), reg)
	expectKind(t, err, utils.KindConflict)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	f := newFixture()
	service := NewAuthService(f.repo, "test-secret", 24, testLogger())

	reg := &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		Role:     "ADMIN",
	}

	_, err := service.Register(context.Background(), reg)
	expectKind(t, err, utils.KindValidation)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture()
	service := NewAuthService(f.repo, "test-secret", 24, testLogger())

	reg := &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		Role:     "TOURIST",
	}
	if _, err := service.Register(context.Background(), reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := service.Login(context.Background(), &request.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	expectKind(t, err, utils.KindForbidden)

	_, err = service.Login(context.Background(), &request.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	expectKind(t, err, utils.KindForbidden)
}
