package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"careconnect-backend/internal/adapters/persistence/models"
	"careconnect-backend/internal/config"
	"careconnect-backend/internal/core/domain"
	"careconnect-backend/internal/pkg/password"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func seededAuthService(t *testing.T, users ...*models.User) (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	t.Helper()
	userRepo := &fakeUserRepo{}
	for _, u := range users {
		if err := userRepo.Create(context.Background(), u); err != nil {
			t.Fatal(err)
		}
	}
	tokenRepo := &fakeRefreshTokenRepo{}
	return NewAuthService(userRepo, tokenRepo, authTestConfig()), userRepo, tokenRepo
}

func patientUser(t *testing.T, email, plaintext string) *models.User {
	t.Helper()
	hash, err := password.Hash(plaintext)
	if err != nil {
		t.Fatal(err)
	}
	return &models.User{
		Email:    email,
		Password: hash,
		Name:     "Jo Patient",
		Role:     "PATIENT",
		IsActive: true,
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc, _, tokenRepo := seededAuthService(t, patientUser(t, "jo@example.com", "Abc12345!"))

	// Stored email is lowercased at registration; login must match it
	// regardless of casing and padding.
	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "  JO@Example.Com  ",
		Password: "Abc12345!",
	})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("Login() returned empty token pair")
	}
	if result.RedirectURL != "/patient" {
		t.Errorf("RedirectURL = %q, want /patient", result.RedirectURL)
	}
	if len(tokenRepo.tokens) != 1 {
		t.Fatalf("stored refresh tokens = %d, want 1", len(tokenRepo.tokens))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := seededAuthService(t, patientUser(t, "jo@example.com", "Abc12345!"))

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "jo@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRejectsPendingInvitation(t *testing.T) {
	invite := "pending-token"
	expires := time.Now().Add(24 * time.Hour)
	doctor := patientUser(t, "doc@example.com", "Abc12345!")
	doctor.Role = "DOCTOR"
	doctor.InviteToken = &invite
	doctor.InviteExpires = &expires

	svc, _, _ := seededAuthService(t, doctor)

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "doc@example.com",
		Password: "Abc12345!",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _, tokenRepo := seededAuthService(t, patientUser(t, "jo@example.com", "Abc12345!"))

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), &LoginInput{
			Email:    "jo@example.com",
			Password: "Abc12345!",
		}); err != nil {
			t.Fatalf("Login() error: %v", err)
		}
	}

	if err := svc.LogoutAll(context.Background(), 1); err != nil {
		t.Fatalf("LogoutAll() error: %v", err)
	}

	for _, token := range tokenRepo.tokens {
		if !token.IsRevoked() {
			t.Fatalf("token %d still valid after LogoutAll", token.ID)
		}
	}
}
