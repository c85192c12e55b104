package services

import (
	"context"
	"errors"
	"testing"

	"culturalstay/internal/models"
	"culturalstay/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubReviewRepo struct {
	exists  bool
	stats   *repository.ReviewStats
	created *models.Review
}

func (s *stubReviewRepo) CreateAndLink(ctx context.Context, r *models.Review) error {
	s.created = r
	return nil
}

func (s *stubReviewRepo) UpdateAndReaggregate(ctx context.Context, r *models.Review) error {
	return nil
}

func (s *stubReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return nil, models.ErrNotFound
}

func (s *stubReviewRepo) FindByReviewee(ctx context.Context, revieweeID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error) {
	return nil, 0, nil
}

func (s *stubReviewRepo) FindByReviewer(ctx context.Context, reviewerID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error) {
	return nil, 0, nil
}

func (s *stubReviewRepo) ExistsFor(ctx context.Context, bookingID, reviewerID primitive.ObjectID, t models.ReviewType) (bool, error) {
	return s.exists, nil
}

func (s *stubReviewRepo) Stats(ctx context.Context, revieweeID primitive.ObjectID) (*repository.ReviewStats, error) {
	return s.stats, nil
}

func (s *stubReviewRepo) SetResponse(ctx context.Context, id primitive.ObjectID, resp models.ReviewResponse) error {
	return nil
}

func (s *stubReviewRepo) UpdateHelpful(ctx context.Context, id primitive.ObjectID, helpful models.Helpful) error {
	return nil
}

func completedBookingFor(guest primitive.ObjectID) *models.Booking {
	return &models.Booking{
		ID:     primitive.NewObjectID(),
		Guest:  guest,
		Host:   primitive.NewObjectID(),
		Status: models.BookingCompleted,
	}
}

func createInput(booking *models.Booking) *CreateReviewInput {
	return &CreateReviewInput{
		Booking:  booking.ID,
		Reviewee: primitive.NewObjectID(),
		Type:     models.GuestToHost,
		Ratings:  models.ReviewRatings{Overall: 5},
		Comment:  "A wonderful stay with a very welcoming family",
	}
}

func TestCreateReview_Duplicate(t *testing.T) {
	guest := primitive.NewObjectID()
	booking := completedBookingFor(guest)

	svc := NewReviewService(&stubReviewRepo{exists: true}, &stubBookingRepo{booking: booking}, nil, nil)

	_, err := svc.CreateReview(context.Background(), guest, createInput(booking))
	if !errors.Is(err, models.ErrDuplicateReview) {
		t.Errorf("second review for the same booking/reviewer/type: err = %v, want ErrDuplicateReview", err)
	}
}

func TestCreateReview_BookingNotCompleted(t *testing.T) {
	guest := primitive.NewObjectID()
	booking := completedBookingFor(guest)
	booking.Status = models.BookingConfirmed

	svc := NewReviewService(&stubReviewRepo{}, &stubBookingRepo{booking: booking}, nil, nil)

	_, err := svc.CreateReview(context.Background(), guest, createInput(booking))
	if !errors.Is(err, models.ErrNotCompleted) {
		t.Errorf("review on a confirmed booking: err = %v, want ErrNotCompleted", err)
	}
}

func TestCreateReview_WrongParty(t *testing.T) {
	booking := completedBookingFor(primitive.NewObjectID())

	svc := NewReviewService(&stubReviewRepo{}, &stubBookingRepo{booking: booking}, nil, nil)

	_, err := svc.CreateReview(context.Background(), primitive.NewObjectID(), createInput(booking))
	if !errors.Is(err, models.ErrNotAuthorized) {
		t.Errorf("guest-to-host review by a stranger: err = %v, want ErrNotAuthorized", err)
	}
}

func TestGetHostReviews_StatsBreakdown(t *testing.T) {
	stats := &repository.ReviewStats{
		AverageRating: 4.5,
		TotalReviews:  2,
		RatingBreakdown: []repository.RatingSnapshot{
			{Rating: 5, Cooking: 5},
			{Rating: 4, Cleanliness: 4},
		},
	}
	svc := NewReviewService(&stubReviewRepo{stats: stats}, nil, nil, nil)

	result, err := svc.GetHostReviews(context.Background(), primitive.NewObjectID(), 1, 10)
	if err != nil {
		t.Fatalf("GetHostReviews: %v", err)
	}
	if len(result.Stats.RatingBreakdown) != 2 {
		t.Errorf("breakdown entries = %d, want 2", len(result.Stats.RatingBreakdown))
	}
	if result.Stats.RatingBreakdown[0].Rating != 5 {
		t.Errorf("first breakdown rating = %d, want 5", result.Stats.RatingBreakdown[0].Rating)
	}
}

func TestToggleHelpful_AddRemove(t *testing.T) {
	user := primitive.NewObjectID()
	other := primitive.NewObjectID()

	h := models.Helpful{Count: 1, Users: []primitive.ObjectID{other}}

	h, added := ToggleHelpful(h, user)
	if !added {
		t.Fatal("first toggle must add the mark")
	}
	if h.Count != 2 || len(h.Users) != 2 {
		t.Errorf("after add: count=%d users=%d, want 2/2", h.Count, len(h.Users))
	}
	if r := (models.Review{Helpful: h}); !r.MarkedHelpfulBy(user) {
		t.Error("user must be in the helpful set after adding")
	}

	h, added = ToggleHelpful(h, user)
	if added {
		t.Fatal("second toggle must remove the mark")
	}
	if h.Count != 1 || len(h.Users) != 1 {
		t.Errorf("after remove: count=%d users=%d, want 1/1", h.Count, len(h.Users))
	}
	r := models.Review{Helpful: h}
	if r.MarkedHelpfulBy(user) {
		t.Error("user must leave the helpful set after removal")
	}
	if !r.MarkedHelpfulBy(other) {
		t.Error("other user's mark must survive the toggle")
	}
}

func TestToggleHelpful_CountFloor(t *testing.T) {
	user := primitive.NewObjectID()

	// Рассинхронизированный счётчик не должен уйти в минус
	h := models.Helpful{Count: 0, Users: []primitive.ObjectID{user}}

	h, added := ToggleHelpful(h, user)
	if added {
		t.Fatal("toggle for a present user must remove")
	}
	if h.Count != 0 {
		t.Errorf("count = %d, want 0", h.Count)
	}
	if len(h.Users) != 0 {
		t.Errorf("users left = %d, want 0", len(h.Users))
	}
}

func TestToggleHelpful_CopyOnWrite(t *testing.T) {
	user := primitive.NewObjectID()
	orig := models.Helpful{Count: 0}

	got, _ := ToggleHelpful(orig, user)
	if len(orig.Users) != 0 {
		t.Error("input value must not be mutated")
	}
	if len(got.Users) != 1 || got.Users[0] != user {
		t.Errorf("result users = %v, want [%s]", got.Users, user.Hex())
	}
}
