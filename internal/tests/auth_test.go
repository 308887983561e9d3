package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"motorent/internal/domain"
	"motorent/internal/service"
)

// ──────────────────────────────────────────────
// AUTHENTICATION
// ──────────────────────────────────────────────

const testJWTSecret = "test-secret"

func TestRegister_HashesPasswordAndDefaultsType(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, testJWTSecret, time.Hour)

	user, err := svc.Register(context.Background(), service.RegisterRequest{
		Email:     "Budi@Example.com",
		Password:  "secret-password",
		FirstName: "Budi",
		LastName:  "Santoso",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Email != "budi@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret-password" {
		t.Error("expected password to be hashed")
	}
	if user.UserType != domain.UserTypeCustomer {
		t.Errorf("expected default user type customer, got %s", user.UserType)
	}
}

func TestRegister_DuplicateEmail_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, testJWTSecret, time.Hour)

	req := service.RegisterRequest{Email: "budi@example.com", Password: "secret-password"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestRegister_MissingCredentials_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService(NewMockUserRepository(), testJWTSecret, time.Hour)

	testCases := []struct {
		name  string
		email string
		pass  string
	}{
		{name: "missing email", email: "", pass: "secret"},
		{name: "missing password", email: "budi@example.com", pass: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(context.Background(), service.RegisterRequest{Email: tc.email, Password: tc.pass})
			if !errors.Is(err, service.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got: %v", err)
			}
		})
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, testJWTSecret, time.Hour)

	registered, err := svc.Register(context.Background(), service.RegisterRequest{
		Email:    "budi@example.com",
		Password: "secret-password",
		UserType: domain.UserTypeVendor,
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "budi@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("token verification failed: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("expected claims for user %s, got %s", registered.ID, claims.UserID)
	}
	if claims.UserType != domain.UserTypeVendor {
		t.Errorf("expected vendor user type in claims, got %s", claims.UserType)
	}
}

func TestLogin_WrongPassword_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, testJWTSecret, time.Hour)

	if _, err := svc.Register(context.Background(), service.RegisterRequest{
		Email:    "budi@example.com",
		Password: "secret-password",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "budi@example.com", "wrong-password")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogin_UnknownEmail_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService(NewMockUserRepository(), testJWTSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestVerifyToken_Malformed_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService(NewMockUserRepository(), testJWTSecret, time.Hour)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := svc.VerifyToken(tc.token); !errors.Is(err, service.ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got: %v", err)
			}
		})
	}
}

func TestVerifyToken_WrongSecret_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	issuer := service.NewAuthService(userRepo, testJWTSecret, time.Hour)
	verifier := service.NewAuthService(userRepo, "other-secret", time.Hour)

	if _, err := issuer.Register(context.Background(), service.RegisterRequest{
		Email:    "budi@example.com",
		Password: "secret-password",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, token, err := issuer.Login(context.Background(), "budi@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := verifier.VerifyToken(token); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got: %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer abc", want: "abc"},
		{name: "missing scheme", header: "abc.def.ghi", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := service.ExtractBearerToken(tc.header)
			if tc.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
