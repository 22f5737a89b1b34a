package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
)

type fakeUserStore struct {
	byEmail map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]models.User{}}
}

func (f *fakeUserStore) InsertUser(_ context.Context, user models.User) (models.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return models.User{}, repo.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return user, nil
}

func newTestService(store *fakeUserStore) *Service {
	svc := NewService(store, "test-secret", 24*time.Hour, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestSignupCreatesActiveStaff(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	user, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "priya",
		Email:    "Priya@Example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	if user.Role != models.RoleStaff {
		t.Errorf("Role = %s, want staff", user.Role)
	}
	if user.Status != models.StatusActive {
		t.Errorf("Status = %s, want active", user.Status)
	}
	if user.Email != "priya@example.com" {
		t.Errorf("Email = %s, want lowercased", user.Email)
	}
	if user.Password != "" {
		t.Error("returned user still carries a password hash")
	}

	stored := store.byEmail["priya@example.com"]
	if stored.Password == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	req := models.SignupRequest{Username: "priya", Email: "priya@example.com", Password: "hunter22"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate signup error = %v, want ErrEmailTaken", err)
	}
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	_, err := svc.Signup(context.Background(), models.SignupRequest{Username: "priya"})
	if !errors.Is(err, ErrMissingFields) {
		t.Errorf("error = %v, want ErrMissingFields", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	if _, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "priya", Email: "priya@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "priya@example.com", Password: "hunter22", Role: models.RoleStaff,
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if user.Password != "" {
		t.Error("returned user still carries a password hash")
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("claims.UserID = %s, want %s", claims.UserID, user.ID.Hex())
	}
	if claims.Role != models.RoleStaff {
		t.Errorf("claims.Role = %s, want staff", claims.Role)
	}
}

func TestLoginFailures(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	if _, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "priya", Email: "priya@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	tests := []struct {
		name string
		req  models.LoginRequest
		want error
	}{
		{"unknown email", models.LoginRequest{Email: "ghost@example.com", Password: "hunter22", Role: "staff"}, ErrInvalidCredentials},
		{"wrong password", models.LoginRequest{Email: "priya@example.com", Password: "nope", Role: "staff"}, ErrInvalidCredentials},
		{"wrong role", models.LoginRequest{Email: "priya@example.com", Password: "hunter22", Role: "admin"}, ErrRoleMismatch},
		{"missing role", models.LoginRequest{Email: "priya@example.com", Password: "hunter22"}, ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	if _, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "priya", Email: "priya@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, _, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "priya@example.com", Password: "hunter22", Role: models.RoleStaff,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Jump past the 24h TTL.
	svc.now = func() time.Time { return time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC) }

	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	if _, err := svc.ParseToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token error = %v, want ErrInvalidToken", err)
	}
}
