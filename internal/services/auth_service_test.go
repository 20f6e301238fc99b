package services

import (
	"testing"

	"sports-events-backend/internal/config"

	"github.com/golang-jwt/jwt/v4"
)

func newAuthService(store *memStore) *AuthService {
	return NewAuthService(store, &config.Config{JWTSecret: "test-secret"})
}

func TestRegisterUserAndAuthenticate(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)

	user, err := svc.RegisterUser("Alice@Test.com", "Alice", "sup3rsecret")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "alice@test.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.Password != "" {
		t.Error("password hash leaked in response")
	}

	resp, err := svc.Authenticate("alice@test.com", "sup3rsecret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != user.ID.String() {
		t.Errorf("user_id claim = %v, want %s", claims["user_id"], user.ID)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)

	if _, err := svc.RegisterUser("alice@test.com", "Alice", "sup3rsecret"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	_, err := svc.Authenticate("alice@test.com", "wrong")
	assertDomainErrorCode(t, err, ErrPermissionDenied)
}

func TestAuthenticate_DisabledAccount(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)

	user, err := svc.RegisterUser("alice@test.com", "Alice", "sup3rsecret")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	stored, _ := store.GetUserByID(user.ID.String())
	stored.IsActive = false
	if err := store.UpdateUser(stored); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	_, err = svc.Authenticate("alice@test.com", "sup3rsecret")
	assertDomainErrorCode(t, err, ErrPermissionDenied)
}

func TestRegisterUser_Validation(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)

	if _, err := svc.RegisterUser("", "Alice", "sup3rsecret"); GetDomainErrorCode(err) != ErrInvalidInput {
		t.Errorf("missing email: %v", err)
	}
	if _, err := svc.RegisterUser("alice@test.com", "", "sup3rsecret"); GetDomainErrorCode(err) != ErrInvalidInput {
		t.Errorf("missing display name: %v", err)
	}
	if _, err := svc.RegisterUser("alice@test.com", "Alice", "shrt"); GetDomainErrorCode(err) != ErrInvalidInput {
		t.Errorf("short password: %v", err)
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)

	if _, err := svc.RegisterUser("alice@test.com", "Alice", "sup3rsecret"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	_, err := svc.RegisterUser("ALICE@test.com", "Other Alice", "sup3rsecret")
	assertDomainErrorCode(t, err, ErrInvalidInput)
}

func TestUpdateProfile(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)

	user, err := svc.RegisterUser("alice@test.com", "Alice", "sup3rsecret")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	updated, err := svc.UpdateProfile(user.ID.String(), "Alice B.")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.DisplayName != "Alice B." {
		t.Errorf("display name = %q", updated.DisplayName)
	}

	_, err = svc.UpdateProfile(user.ID.String(), "   ")
	assertDomainErrorCode(t, err, ErrInvalidInput)
}
