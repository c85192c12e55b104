package services

import (
	"context"
	"errors"
	"testing"

	"culturalstay/internal/models"
	"culturalstay/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUserRepo struct {
	byEmail    *models.User
	byEmailErr error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return nil, models.ErrNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.byEmailErr != nil {
		return nil, s.byEmailErr
	}
	if s.byEmail != nil {
		return s.byEmail, nil
	}
	return nil, models.ErrNotFound
}

func (s *stubUserRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return nil
}

func TestRegister_LookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset by peer")
	svc := NewAuthService(&stubUserRepo{byEmailErr: lookupErr}, nil, nil)

	_, err := svc.Register(context.Background(), &models.User{Email: "a@b.com", Password: "secret123"})
	if !errors.Is(err, lookupErr) {
		t.Errorf("infrastructure failure on lookup: err = %v, want the lookup error back", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{byEmail: &models.User{Email: "a@b.com"}}, nil, nil)

	_, err := svc.Register(context.Background(), &models.User{Email: "a@b.com", Password: "secret123"})
	if err == nil || err.Error() != "user already exists" {
		t.Errorf("duplicate email: err = %v, want user already exists", err)
	}
}

func TestRegister_NewUser(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{}, utils.NewJWTUtil("test-secret"), nil)

	user := &models.User{Email: "a@b.com", Password: "secret123"}
	token, err := svc.Register(context.Background(), user)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Error("expected a JWT for the new user")
	}
	if user.Role != "guest" {
		t.Errorf("role = %q, want guest", user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password must be hashed before storage")
	}
}
