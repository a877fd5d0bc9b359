package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.Email]; ok {
		return repositories.ErrUserEmailExists
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

const testSecret = "test-secret-key"

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testSecret)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "Dana@Example.com",
		Password:  "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.Email != "dana@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.Role != models.RoleOrganizer {
		t.Errorf("role = %q, want organizer", user.Role)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked in response")
	}
	if token == "" {
		t.Fatal("no token issued on register")
	}

	_, loginToken, err := svc.Login(ctx, LoginInput{Email: "dana@example.com", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(loginToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token user_id = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Role != models.RoleOrganizer {
		t.Errorf("token role = %q, want organizer", claims.Role)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"short password", RegisterInput{Email: "a@b.com", Password: "short"}, ErrPasswordTooShort},
		{"missing email", RegisterInput{Password: "long enough pass"}, ErrValidationFailed},
		{"bad email", RegisterInput{Email: "not-an-email", Password: "long enough pass"}, ErrValidationFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)
	ctx := context.Background()

	input := RegisterInput{Email: "dup@example.com", Password: "long enough pass"}
	if _, _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	if _, _, err := svc.Register(ctx, input); !errors.Is(err, ErrUserEmailConflict) {
		t.Errorf("error = %v, want ErrUserEmailConflict", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "long enough pass"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if _, _, err := svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "wrong password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, LoginInput{Email: "nobody@b.com", Password: "long enough pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: error = %v, want ErrInvalidCredentials", err)
	}
}
