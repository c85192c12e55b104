package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"culturalstay/internal/models"
	"culturalstay/internal/repository"
	"culturalstay/internal/utils"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateBookingInput struct {
	Host            primitive.ObjectID     `json:"host" validate:"required"`
	Experience      models.ExperienceType  `json:"experience" validate:"required,oneof=cooking homestay cultural-tour language-exchange craft-workshop"`
	CheckIn         time.Time              `json:"checkIn" validate:"required"`
	CheckOut        time.Time              `json:"checkOut" validate:"required"`
	Guests          models.GuestCount      `json:"guests"`
	Pricing         models.BookingPricing  `json:"pricing"`
	Payment         models.Payment         `json:"payment"`
	SpecialRequests models.SpecialRequests `json:"specialRequests"`
	GuestDetails    models.GuestDetails    `json:"guestDetails"`
}

type BookingService struct {
	repo     repository.BookingRepository
	hostRepo repository.HostRepository
	userRepo repository.UserRepository
	notifier *NotificationService
	redis    *redis.Client
}

func NewBookingService(repo repository.BookingRepository, hostRepo repository.HostRepository, userRepo repository.UserRepository, notifier *NotificationService, rdb *redis.Client) *BookingService {
	return &BookingService{
		repo:     repo,
		hostRepo: hostRepo,
		userRepo: userRepo,
		notifier: notifier,
		redis:    rdb,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, guestID primitive.ObjectID, in *CreateBookingInput) (*models.Booking, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	now := time.Now()
	if !in.CheckIn.After(now) {
		return nil, fmt.Errorf("%w: check-in date must be in the future", models.ErrValidation)
	}
	if !in.CheckOut.After(in.CheckIn) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", models.ErrValidation)
	}

	host, err := s.hostRepo.GetByID(ctx, in.Host)
	if err != nil {
		return nil, err
	}
	if host.Status != models.HostApproved {
		return nil, models.ErrHostUnavailable
	}

	booking := &models.Booking{
		Guest:           guestID,
		Host:            in.Host,
		Experience:      in.Experience,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Guests:          in.Guests,
		Pricing:         in.Pricing,
		Payment:         in.Payment,
		SpecialRequests: in.SpecialRequests,
		GuestDetails:    in.GuestDetails,
	}

	// проверка пересечений и вставка — одна транзакция внутри репозитория
	if err := s.repo.CreateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateFor(ctx, booking)

	guest, err := s.userRepo.GetByID(ctx, guestID)
	if err != nil {
		return nil, err
	}
	hostUser, err := s.userRepo.GetByID(ctx, host.User)
	if err != nil {
		return nil, err
	}
	// доставка синхронная: бронь уже записана, но сбой письма виден клиенту
	if err := s.notifier.BookingCreated(ctx, booking, host, guest, hostUser); err != nil {
		return nil, err
	}

	return booking, nil
}

type BookingListQuery struct {
	Status string
	Type   string // upcoming, past, active
}

// ListBookings: гость видит свои брони, хост — брони своего профиля.
// Неотфильтрованный список кэшируется на пользователя.
func (s *BookingService) ListBookings(ctx context.Context, callerID primitive.ObjectID, q BookingListQuery) ([]models.Booking, error) {
	cacheKey := fmt.Sprintf("bookings_by_user:%s", callerID.Hex())
	if q.Status == "" && q.Type == "" {
		val, err := utils.GetFromCache(ctx, s.redis, cacheKey)
		if err == nil {
			var cached []models.Booking
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		}
	}

	filter := bson.M{}

	hostProfile, err := s.hostRepo.GetByUserID(ctx, callerID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if hostProfile != nil {
		filter["host"] = hostProfile.ID
	} else {
		filter["guest"] = callerID
	}

	if q.Status != "" {
		filter["status"] = q.Status
	}

	bookings, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	bookings = filterByType(bookings, q.Type, time.Now())

	if q.Status == "" && q.Type == "" {
		data, _ := json.Marshal(bookings)
		_ = utils.SetToCache(ctx, s.redis, cacheKey, string(data), utils.RedisCacheDuration)
	}
	return bookings, nil
}

// filterByType оставляет брони, попадающие в окно типа относительно now.
func filterByType(bookings []models.Booking, t string, now time.Time) []models.Booking {
	if t == "" {
		return bookings
	}
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		var keep bool
		switch t {
		case "upcoming":
			keep = b.IsUpcoming(now)
		case "past":
			keep = b.IsPast(now)
		case "active":
			keep = b.IsActive(now)
		}
		if keep {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookingService) GetBooking(ctx context.Context, id, callerID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParty(ctx, booking, callerID); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateStatus: допускаются confirmed|cancelled|completed, перехода-граф
// намеренно не проверяется — так ведёт себя продукт.
func (s *BookingService) UpdateStatus(ctx context.Context, id, callerID primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	switch status {
	case models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
	default:
		return nil, fmt.Errorf("%w: invalid status", models.ErrValidation)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParty(ctx, booking, callerID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.Status = status
	s.invalidateFor(ctx, booking)

	recipient, role, err := s.counterpart(ctx, booking, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.BookingStatusChanged(ctx, recipient, role, status); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id, callerID primitive.ObjectID, reason string) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParty(ctx, booking, callerID); err != nil {
		return nil, err
	}

	if !booking.CanCancel(time.Now()) {
		return nil, models.ErrCancelWindow
	}

	cancelledBy := "guest"
	if booking.Guest != callerID {
		cancelledBy = "host"
	}
	now := time.Now()
	cancellation := models.Cancellation{
		Cancelled:        true,
		CancelledBy:      cancelledBy,
		CancellationDate: &now,
		Reason:           reason,
	}

	if err := s.repo.Cancel(ctx, id, cancellation); err != nil {
		return nil, err
	}
	booking.Status = models.BookingCancelled
	booking.Cancellation = cancellation
	s.invalidateFor(ctx, booking)

	guest, err := s.userRepo.GetByID(ctx, booking.Guest)
	if err != nil {
		return nil, err
	}
	host, err := s.hostRepo.GetByID(ctx, booking.Host)
	if err != nil {
		return nil, err
	}
	hostUser, err := s.userRepo.GetByID(ctx, host.User)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.BookingCancelled(ctx, booking, host, guest, hostUser); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *BookingService) AddMessage(ctx context.Context, id, callerID primitive.ObjectID, text string) ([]models.Message, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParty(ctx, booking, callerID); err != nil {
		return nil, err
	}

	updated, err := s.repo.AppendMessage(ctx, id, callerID, text)
	if err != nil {
		return nil, err
	}

	recipient, role, err := s.counterpart(ctx, booking, callerID)
	if err != nil {
		return nil, err
	}
	sender, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.MessageReceived(ctx, recipient, role, sender); err != nil {
		return nil, err
	}
	return updated.Communication, nil
}

// counterpart — вторая сторона брони относительно вызывающего.
func (s *BookingService) counterpart(ctx context.Context, booking *models.Booking, callerID primitive.ObjectID) (*models.User, string, error) {
	if booking.Guest == callerID {
		host, err := s.hostRepo.GetByID(ctx, booking.Host)
		if err != nil {
			return nil, "", err
		}
		hostUser, err := s.userRepo.GetByID(ctx, host.User)
		if err != nil {
			return nil, "", err
		}
		return hostUser, "host", nil
	}
	guest, err := s.userRepo.GetByID(ctx, booking.Guest)
	if err != nil {
		return nil, "", err
	}
	return guest, "guest", nil
}

func (s *BookingService) authorizeParty(ctx context.Context, booking *models.Booking, callerID primitive.ObjectID) error {
	var hostProfileID *primitive.ObjectID
	if hostProfile, err := s.hostRepo.GetByUserID(ctx, callerID); err == nil {
		hostProfileID = &hostProfile.ID
	}
	if !booking.IsParty(callerID, hostProfileID) {
		return models.ErrNotAuthorized
	}
	return nil
}

func (s *BookingService) invalidateFor(ctx context.Context, booking *models.Booking) {
	hostUserID := primitive.NilObjectID
	if host, err := s.hostRepo.GetByID(ctx, booking.Host); err == nil {
		hostUserID = host.User
	}
	if err := utils.DeleteFromCache(ctx, s.redis, bookingCacheKeys(booking, hostUserID)...); err != nil {
		log.Printf("Failed to invalidate cache: %v", err)
	}
}

// bookingCacheKeys — всё, что протухает при изменении брони: списки обеих
// сторон и кэш профиля хоста.
func bookingCacheKeys(b *models.Booking, hostUserID primitive.ObjectID) []string {
	return []string{
		fmt.Sprintf("bookings_by_user:%s", b.Guest.Hex()),
		fmt.Sprintf("bookings_by_user:%s", hostUserID.Hex()),
		fmt.Sprintf("host:%s", b.Host.Hex()),
	}
}
