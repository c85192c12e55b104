package services

import (
	"context"
	"errors"
	"testing"

	"culturalstay/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubHostRepo struct {
	byUser    *models.Host
	byUserErr error
	byID      *models.Host
}

func (s *stubHostRepo) Create(ctx context.Context, host *models.Host) error {
	host.ID = primitive.NewObjectID()
	return nil
}

func (s *stubHostRepo) Update(ctx context.Context, host *models.Host) error { return nil }

func (s *stubHostRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return nil
}

func (s *stubHostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Host, error) {
	if s.byID == nil {
		return nil, models.ErrNotFound
	}
	return s.byID, nil
}

func (s *stubHostRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Host, error) {
	if s.byUserErr != nil {
		return nil, s.byUserErr
	}
	if s.byUser == nil {
		return nil, models.ErrNotFound
	}
	return s.byUser, nil
}

func (s *stubHostRepo) Search(ctx context.Context, filter bson.M, page, limit int64) ([]models.Host, int64, error) {
	return nil, 0, nil
}

func (s *stubHostRepo) PushPhotos(ctx context.Context, id primitive.ObjectID, urls []string) error {
	return nil
}

func (s *stubHostRepo) PushExperience(ctx context.Context, id primitive.ObjectID, exp models.Experience) error {
	return nil
}

func validHost() *models.Host {
	return &models.Host{
		FamilySize: 3,
		Address: models.Address{
			Street:     "12 Jalan Melur",
			City:       "George Town",
			State:      "Penang",
			Country:    "Malaysia",
			PostalCode: "10200",
		},
		IncomeVerification: models.IncomeVerification{IncomeRange: "middle"},
		Accommodation:      models.Accommodation{Type: "house", Bedrooms: 2, Bathrooms: 1},
		Pricing:            models.HostPricing{BasePrice: 45},
	}
}

func TestCreateHost_LookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset by peer")
	svc := NewHostService(&stubHostRepo{byUserErr: lookupErr}, nil, nil, nil, "", "")

	err := svc.CreateHost(context.Background(), primitive.NewObjectID(), validHost())
	if !errors.Is(err, lookupErr) {
		t.Errorf("infrastructure failure on lookup: err = %v, want the lookup error back", err)
	}
}

func TestCreateHost_Duplicate(t *testing.T) {
	svc := NewHostService(&stubHostRepo{byUser: &models.Host{}}, nil, nil, nil, "", "")

	err := svc.CreateHost(context.Background(), primitive.NewObjectID(), validHost())
	if !errors.Is(err, models.ErrDuplicateHost) {
		t.Errorf("second profile for the same user: err = %v, want ErrDuplicateHost", err)
	}
}

func TestUpdateHostStatus_ApproveRequiresVerification(t *testing.T) {
	host := validHost()
	host.Verification = models.Verification{Identity: true, Income: true, Background: false}
	svc := NewHostService(&stubHostRepo{byID: host}, nil, nil, nil, "", "")

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), models.HostApproved)
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("approving an unverified host: err = %v, want ErrValidation", err)
	}
}

func TestUpdateHostStatus_InvalidStatus(t *testing.T) {
	svc := NewHostService(&stubHostRepo{}, nil, nil, nil, "", "")

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), models.HostPending)
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("pending is not a moderation outcome: err = %v, want ErrValidation", err)
	}
}
