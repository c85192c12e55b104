package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"culturalstay/internal/models"
	"culturalstay/internal/repository"
	"culturalstay/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateReviewInput struct {
	Booking    primitive.ObjectID   `json:"booking" validate:"required"`
	Reviewee   primitive.ObjectID   `json:"reviewee" validate:"required"`
	Type       models.ReviewType    `json:"type" validate:"required,oneof=guest-to-host host-to-guest"`
	Ratings    models.ReviewRatings `json:"ratings"`
	Comment    string               `json:"comment" validate:"required,min=10,max=1000"`
	Highlights []string             `json:"highlights"`
	Photos     []string             `json:"photos"`
}

type UpdateReviewInput struct {
	Ratings    *models.ReviewRatings `json:"ratings"`
	Comment    string                `json:"comment" validate:"omitempty,min=10,max=1000"`
	Highlights []string              `json:"highlights"`
}

type HostReviewsResult struct {
	Reviews    []models.Review         `json:"reviews"`
	Stats      *repository.ReviewStats `json:"stats"`
	Pagination models.Pagination       `json:"pagination"`
}

type UserReviewsResult struct {
	Reviews    []models.Review   `json:"reviews"`
	Pagination models.Pagination `json:"pagination"`
}

type ReviewService struct {
	repo        repository.ReviewRepository
	bookingRepo repository.BookingRepository
	hostRepo    repository.HostRepository
	notifier    *NotificationService
}

func NewReviewService(repo repository.ReviewRepository, bookingRepo repository.BookingRepository, hostRepo repository.HostRepository, notifier *NotificationService) *ReviewService {
	return &ReviewService{
		repo:        repo,
		bookingRepo: bookingRepo,
		hostRepo:    hostRepo,
		notifier:    notifier,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, callerID primitive.ObjectID, in *CreateReviewInput) (*models.Review, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(&in.Ratings); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, in.Booking)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingCompleted {
		return nil, models.ErrNotCompleted
	}

	if err := s.authorizeDirection(ctx, booking, callerID, in.Type); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsFor(ctx, in.Booking, callerID, in.Type)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateReview
	}

	review := &models.Review{
		Booking:    in.Booking,
		Reviewer:   callerID,
		Reviewee:   in.Reviewee,
		Type:       in.Type,
		Ratings:    in.Ratings,
		Comment:    in.Comment,
		Highlights: in.Highlights,
		Photos:     in.Photos,
		Verified:   true,
		Language:   "en",
	}

	// вставка, ссылка в брони и пересчёт рейтингов — одна транзакция
	if err := s.repo.CreateAndLink(ctx, review); err != nil {
		return nil, err
	}

	if err := s.notifier.ReviewReceived(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, id, callerID primitive.ObjectID, in *UpdateReviewInput) (*models.Review, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Reviewer != callerID {
		return nil, models.ErrNotAuthorized
	}
	if !review.Editable(time.Now()) {
		return nil, models.ErrReviewLocked
	}

	if in.Ratings != nil {
		if err := utils.ValidateStruct(in.Ratings); err != nil {
			return nil, err
		}
		review.Ratings = *in.Ratings
	}
	if in.Comment != "" {
		review.Comment = in.Comment
	}
	if in.Highlights != nil {
		review.Highlights = in.Highlights
	}

	if err := s.repo.UpdateAndReaggregate(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) GetHostReviews(ctx context.Context, hostUserID primitive.ObjectID, page, limit int64) (*HostReviewsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	reviews, total, err := s.repo.FindByReviewee(ctx, hostUserID, page, limit)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx, hostUserID)
	if err != nil {
		return nil, err
	}

	return &HostReviewsResult{
		Reviews:    reviews,
		Stats:      stats,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

func (s *ReviewService) GetUserReviews(ctx context.Context, userID primitive.ObjectID, page, limit int64) (*UserReviewsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	reviews, total, err := s.repo.FindByReviewer(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &UserReviewsResult{
		Reviews:    reviews,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

func (s *ReviewService) AddResponse(ctx context.Context, id, callerID primitive.ObjectID, comment string) (*models.ReviewResponse, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Reviewee != callerID {
		return nil, models.ErrNotAuthorized
	}
	if review.HasResponse() {
		return nil, models.ErrResponseExists
	}

	now := time.Now()
	resp := models.ReviewResponse{
		Comment: comment,
		Date:    &now,
		Author:  callerID,
	}
	if err := s.repo.SetResponse(ctx, id, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MarkHelpful переключает отметку "полезно": повторный вызов снимает её.
func (s *ReviewService) MarkHelpful(ctx context.Context, id, callerID primitive.ObjectID) (*models.Helpful, bool, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	helpful, added := ToggleHelpful(review.Helpful, callerID)
	if err := s.repo.UpdateHelpful(ctx, id, helpful); err != nil {
		return nil, false, err
	}
	return &helpful, added, nil
}

// ToggleHelpful добавляет либо убирает пользователя из множества; счётчик
// зеркалит множество и не уходит ниже нуля.
func ToggleHelpful(h models.Helpful, userID primitive.ObjectID) (models.Helpful, bool) {
	for i, id := range h.Users {
		if id == userID {
			h.Users = append(append([]primitive.ObjectID{}, h.Users[:i]...), h.Users[i+1:]...)
			h.Count--
			if h.Count < 0 {
				h.Count = 0
			}
			return h, false
		}
	}
	h.Users = append(append([]primitive.ObjectID{}, h.Users...), userID)
	h.Count++
	return h, true
}

func (s *ReviewService) authorizeDirection(ctx context.Context, booking *models.Booking, callerID primitive.ObjectID, t models.ReviewType) error {
	switch t {
	case models.GuestToHost:
		if booking.Guest == callerID {
			return nil
		}
	case models.HostToGuest:
		hostProfile, err := s.hostRepo.GetByUserID(ctx, callerID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		if hostProfile != nil && booking.Host == hostProfile.ID {
			return nil
		}
	default:
		return fmt.Errorf("%w: invalid review type", models.ErrValidation)
	}
	return models.ErrNotAuthorized
}
